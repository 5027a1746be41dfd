package prefs

import (
	"encoding/json"
	"io"

	"github.com/jonwraymond/utilkit/yamlext"
)

// Codec serializes the preferences document.
type Codec interface {
	Encode(w io.Writer, doc map[string]map[string]any) error
	Decode(r io.Reader) (any, error)
}

// JSONCodec stores preferences as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(w io.Writer, doc map[string]map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (JSONCodec) Decode(r io.Reader) (any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLCodec stores preferences as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Encode(w io.Writer, doc map[string]map[string]any) error {
	return yamlext.Dump(w, doc)
}

func (YAMLCodec) Decode(r io.Reader) (any, error) {
	return yamlext.Load(r)
}
