package content

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed demo/*.toml
var demoFS embed.FS

// Demo returns the built-in page called name.
func Demo(name string) (*Document, bool) {
	data, err := demoFS.ReadFile(path.Join("demo", name+".toml"))
	if err != nil {
		return nil, false
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// DemoPages lists the built-in page names.
func DemoPages() []string {
	entries, _ := demoFS.ReadDir("demo")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}
