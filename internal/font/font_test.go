package font

import (
	"strings"
	"testing"
)

func TestBuiltinMini(t *testing.T) {
	f, ok := Builtin().Lookup("mini")
	if !ok {
		t.Fatal("mini font not registered")
	}
	if f.Height != 3 {
		t.Fatalf("height = %d", f.Height)
	}
	g := f.Glyph("H")
	want := []string{"   ", "|_|", "| |"}
	for i, row := range g {
		if got := strings.Join(row, ""); got != want[i] {
			t.Errorf("row %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestGlyphFallbacks(t *testing.T) {
	f, _ := Builtin().Lookup("mini")
	if got, want := f.Glyph("h"), f.Glyph("H"); strings.Join(got[1], "") != strings.Join(want[1], "") {
		t.Error("lowercase should fall back to uppercase")
	}
	if got, want := f.Glyph("~"), f.Glyph("?"); strings.Join(got[2], "") != strings.Join(want[2], "") {
		t.Error("unknown cluster should fall back to ?")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no name", "height = 1\n[glyphs]\n", "name is required"},
		{"bad height", "name = \"x\"\nheight = 0\n", "must be positive"},
		{"row count", "name = \"x\"\nheight = 2\n[glyphs]\n\"A\" = ['a']\n", "has 1 rows"},
		{"ragged", "name = \"x\"\nheight = 2\n[glyphs]\n\"A\" = ['a', 'bb']\n", "wide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	f, err := Parse([]byte("name = \"tiny\"\nheight = 1\n[glyphs]\n\"A\" = ['a']\n"))
	if err != nil {
		t.Fatal(err)
	}
	r.Register(f)
	if _, ok := r.Lookup("tiny"); !ok {
		t.Fatal("expected tiny")
	}
	if _, ok := r.Lookup("mini"); ok {
		t.Fatal("fresh registry should not hold builtins")
	}
	var nilReg *Registry
	if _, ok := nilReg.Lookup("tiny"); ok {
		t.Fatal("nil registry lookup should miss")
	}
}
