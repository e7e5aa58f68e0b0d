package layout

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a record:
//
//	type: news.Article
//	slug: breaking
//	type_object:
//	  type: news.Section
//	  slug: world
//	fields:
//	  title: Launch day
//
// Templates, when given, replace resolution entirely and may contain the
// {view} placeholder; Type is then optional.
type Document struct {
	Type       string         `yaml:"type"`
	Slug       string         `yaml:"slug,omitempty"`
	FullSlug   string         `yaml:"full_slug,omitempty"`
	Templates  []string       `yaml:"templates,omitempty"`
	TypeObject *Document      `yaml:"type_object,omitempty"`
	Fields     map[string]any `yaml:"fields,omitempty"`
}

// DecodeDocument reads a single YAML document from r.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("layout: decode document: %w", err)
	}
	return doc, nil
}
