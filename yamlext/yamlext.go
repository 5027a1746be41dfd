// Package yamlext wraps gopkg.in/yaml.v3 with string, stream, and file
// helpers so callers do not manage encoders and file handles themselves.
package yamlext

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Dumps encodes v as a YAML document.
func Dumps(v any) (string, error) {
	var buf bytes.Buffer
	if err := Dump(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Dump encodes v as a YAML document to w.
func Dump(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(DefaultIndent)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// DumpFile encodes v to the file at path, replacing it.
func DumpFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Dump(f, v)
}

// Loads decodes the first document in s. Mappings decode to
// map[string]any and sequences to []any. An empty input yields nil.
func Loads(s string) (any, error) {
	return Load(strings.NewReader(s))
}

// Load decodes the first document read from r.
func Load(r io.Reader) (any, error) {
	var v any
	if err := LoadInto(r, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadFile decodes the first document in the file at path.
func LoadFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadInto decodes the first document read from r into out.
// An empty input leaves out untouched.
func LoadInto(r io.Reader, out any) error {
	err := yaml.NewDecoder(r).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
