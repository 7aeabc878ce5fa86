// Package app defines the Marathon application definition document and the
// normalization rules used to compare definitions.
package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"

	"github.com/mitchellh/copystructure"
)

// Definition is a Marathon application definition.
//
// A Definition is an open document: the API adds fields between releases
// and the normalizer must pass unknown fields through. Values are therefore
// kept in their generic JSON form, and are always one of:
//
//   - nil
//   - bool
//   - [json.Number]
//   - string
//   - []any
//   - map[string]any
type Definition map[string]any

// ID returns the application id ("/" followed by a path), or an empty
// string if the definition has no string id.
func (d Definition) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	if d == nil {
		return nil
	}
	return copystructure.Must(copystructure.Copy(d)).(Definition)
}

// Decode reads a single definition from r. Numbers are decoded as
// [json.Number] so that they are written back unchanged.
func Decode(r io.Reader) (Definition, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}
	if def == nil {
		return nil, errors.New("application definition must be a JSON object")
	}
	return def, nil
}

// Encode returns the indented JSON representation of the definition,
// terminated by a newline.
func Encode(def Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(def); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IDs returns the ids of the given set in lexical order.
func IDs(defs map[string]Definition) []string {
	return slices.Sorted(maps.Keys(defs))
}
