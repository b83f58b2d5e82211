// Package api defines the serializable description of an item tree: the
// nested record consumed and produced by the tree codec, plus JSON and YAML
// encodings of it.
package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// Description keys.
const (
	KeyName      = "name"
	KeyItems     = "items"
	KeyURLPrefix = "url_prefix"
)

// Description is the nested record form of a node. It is a plain mapping
// rather than a struct because the codec's structural dispatch depends on
// key presence: an "items" key that is present but empty means something
// different from an absent one, a distinction struct omitempty tags erase.
type Description map[string]any

// Name returns the "name" value if present and a string.
func (d Description) Name() (string, bool) {
	name, ok := d[KeyName].(string)
	return name, ok
}

// URLPrefix returns the "url_prefix" value if present and a string.
func (d Description) URLPrefix() (string, bool) {
	prefix, ok := d[KeyURLPrefix].(string)
	return prefix, ok
}

// Items returns the child descriptions under "items". ok is true when the
// key is present with a sequence value, even an empty one; an absent key or
// an explicit null both report false. An "items" value that is not a
// sequence, or a sequence entry that is not a mapping, is an error rather
// than being silently dropped.
func (d Description) Items() ([]Description, bool, error) {
	raw, present := d[KeyItems]
	if !present || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("items must be a sequence, got %T", raw)
	}
	items := make([]Description, 0, len(list))
	for i, entry := range list {
		switch m := entry.(type) {
		case map[string]any:
			items = append(items, Description(m))
		case Description:
			items = append(items, m)
		default:
			return nil, false, fmt.Errorf("items[%d] is not a mapping, got %T", i, entry)
		}
	}
	return items, true, nil
}

// Has reports whether the key is present, regardless of its value.
func (d Description) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// DecodeJSON parses a JSON description.
func DecodeJSON(data []byte) (Description, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse description: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("description must be a JSON object, got %T", v)
	}
	return Description(m), nil
}

// EncodeJSON renders a description as indented JSON with sorted keys.
func EncodeJSON(d Description) []byte {
	return []byte(oj.JSON(map[string]any(d), &ojg.Options{Sort: true, Indent: 2}))
}

// DecodeYAML parses a YAML description.
func DecodeYAML(data []byte) (Description, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse description: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("description must be a YAML mapping, got %T", v)
	}
	return Description(m), nil
}

// EncodeYAML renders a description as YAML.
func EncodeYAML(d Description) ([]byte, error) {
	return yaml.Marshal(map[string]any(d))
}

// DecodeFile reads a description from a .json, .yaml or .yml file.
func DecodeFile(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	switch filepath.Ext(path) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported description format %q", filepath.Ext(path))
	}
}
