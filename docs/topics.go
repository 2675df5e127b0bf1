// Package docs embeds the documentation topics printed by `cgt topic`.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Topic returns the markdown content of a documentation topic. The topic
// "readme" lists all the others, and "*" returns all of them.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := List()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the content of several topics separated by a blank line.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// List returns the sorted names of all topics except the readme.
func List() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	slices.Sort(topics)
	return topics, nil
}
