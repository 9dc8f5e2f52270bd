package layout

import (
	"reflect"
	"testing"
)

func TestParseMarkup(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		plain string
		urls  []string
	}{
		{"plain", "hello", "hello", nil},
		{"bold", "a **b** c", "a b c", nil},
		{"nested styles", "**//x//**", "x", nil},
		{"link", "go [home](https://h) now", "go home now", []string{"https://h"}},
		{"double bracket link", "[[GO]](http://x)", "[GO]", []string{"http://x"}},
		{"two links", "[a](1) [b](2)", "a b", []string{"1", "2"}},
		{"unbalanced bold", "**oops", "**oops", nil},
		{"unterminated link", "[x](y", "[x](y", nil},
		{"empty label", "[](y)", "[](y)", nil},
		{"empty url", "[x]( )", "[x]( )", nil},
		{"bracket without paren", "[x] y", "[x] y", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, urls := ParseMarkup(tt.in)
			if got := Plain(runs); got != tt.plain {
				t.Errorf("plain = %q, want %q", got, tt.plain)
			}
			if !reflect.DeepEqual(urls, tt.urls) {
				t.Errorf("urls = %v, want %v", urls, tt.urls)
			}
		})
	}
}

func TestParseMarkupStyles(t *testing.T) {
	runs, _ := ParseMarkup("**//&&x&&//**y")
	if len(runs) != 2 {
		t.Fatalf("runs = %+v", runs)
	}
	if runs[0].Style != StyleBold|StyleItalic|StyleRed {
		t.Errorf("x style = %b", runs[0].Style)
	}
	if runs[1].Style != 0 {
		t.Errorf("y style = %b", runs[1].Style)
	}
}

func TestParseMarkupLinkIDs(t *testing.T) {
	runs, urls := ParseMarkup("[ab](u1)-[**c**](u2)")
	want := []int{1, 1, 0, 2}
	if len(runs) != len(want) {
		t.Fatalf("runs = %+v", runs)
	}
	for i, r := range runs {
		if r.Link != want[i] {
			t.Errorf("run %d (%q) link = %d, want %d", i, r.Char, r.Link, want[i])
		}
	}
	if runs[3].Style != StyleBold {
		t.Errorf("styled link label lost its style")
	}
	if len(urls) != 2 || urls[1] != "u2" {
		t.Errorf("urls = %v", urls)
	}
}

func TestParseMarkupNoNestedLinks(t *testing.T) {
	runs, urls := ParseMarkup("[a [b](x) c](y)")
	if len(urls) != 1 {
		t.Fatalf("urls = %v", urls)
	}
	for _, r := range runs {
		if r.Link > 1 {
			t.Fatalf("nested link id %d", r.Link)
		}
	}
}

func TestParseMarkupClusters(t *testing.T) {
	runs, _ := ParseMarkup("e\u0301\U0001F1EB\U0001F1F7")
	if len(runs) != 2 {
		t.Fatalf("clusters = %d (%+v)", len(runs), runs)
	}
}
