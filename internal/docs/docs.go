// Package docs holds the topics shown by 'contty docs'.
package docs

import (
	"fmt"

	"github.com/sahilm/fuzzy"
)

// Topic is one documentation article.
type Topic struct {
	Name    string // argument to 'contty docs'
	Title   string
	Summary string // shown in the topic listing
	Content string // plain text
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get looks up a topic by name. An unknown name yields an error that
// suggests the closest topic, if any.
func Get(name string) (Topic, error) {
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
		names = append(names, t.Name)
	}
	if m := fuzzy.Find(name, names); len(m) > 0 {
		return Topic{}, fmt.Errorf("unknown topic %q (did you mean %q?)", name, m[0].Str)
	}
	return Topic{}, fmt.Errorf("unknown topic %q, run 'contty docs' to list available topics", name)
}
