package osutils

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// CRCFromFilename returns the CRC-32 (IEEE) of the file's contents, the
// same checksum zip archives record.
func CRCFromFilename(name string) (uint32, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("crc %s: %w", name, err)
	}
	return h.Sum32(), nil
}

// Fingerprint returns the xxhash64 of the file's contents.
func Fingerprint(name string) (uint64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0, fmt.Errorf("fingerprint %s: %w", name, err)
	}
	return d.Sum64(), nil
}

// FingerprintTree fingerprints every regular file under root, keyed by
// slash-separated path relative to root.
func FingerprintTree(root string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for name, err := range IterFiles(root, "*") {
		if err != nil {
			return nil, err
		}
		sum, err := Fingerprint(name)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return nil, err
		}
		out[filepath.ToSlash(rel)] = sum
	}
	return out, nil
}

// IterFiles yields the files under root whose base name matches pattern,
// in lexical walk order. An empty pattern matches everything. Walk errors
// are yielded with an empty name; iteration continues unless the consumer
// stops.
func IterFiles(root, pattern string) iter.Seq2[string, error] {
	if pattern == "" {
		pattern = "*"
	}
	return func(yield func(string, error) bool) {
		stopped := errors.New("stopped")
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield("", err) {
					return stopped
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			ok, err := filepath.Match(pattern, d.Name())
			if err != nil {
				yield("", err)
				return stopped
			}
			if ok && !yield(path, nil) {
				return stopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, stopped) {
			yield("", err)
		}
	}
}

// ListDirEx returns the paths of the direct children of dir whose names
// match pattern, sorted by name.
func ListDirEx(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// MakeDirs creates path and any missing parents. An existing directory
// is not an error. It returns path for chaining.
func MakeDirs(path string, perm fs.FileMode) (string, error) {
	if err := os.MkdirAll(path, perm); err != nil {
		return "", err
	}
	return path, nil
}

// MkTemp creates an empty temporary file, closes it, and returns its
// absolute name. dir and pattern follow os.CreateTemp.
func MkTemp(dir, pattern string) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}
	return filepath.Abs(name)
}
