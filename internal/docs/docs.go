// Package docs holds the help topics printed by `roster docs`.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Topics lists every topic without its body, sorted by name.
func Topics() []Topic {
	paths, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []Topic{}
	}
	out := make([]Topic, 0, len(paths))
	for _, p := range paths {
		t, ok := load(p)
		if !ok {
			continue
		}
		t.Body = ""
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get looks a topic up by name, case-insensitively.
func Get(name string) (Topic, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return Topic{}, false
	}
	return load(path.Join("content", name+".md"))
}

// load reads a topic file; its title is the first "# " heading.
func load(p string) (Topic, bool) {
	b, err := contentFS.ReadFile(p)
	if err != nil {
		return Topic{}, false
	}
	body := string(b)
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	title := name
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			break
		}
	}
	return Topic{Name: name, Title: title, Body: body}, true
}
