package ziputil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zip"

	"github.com/jonwraymond/utilkit/osutils"
)

// ErrFileComparison is matched by every *FileComparisonError.
var ErrFileComparison = errors.New("ziputil: archives differ")

// FileComparisonError describes the first difference between two archives.
type FileComparisonError struct {
	Msg string
}

func (e *FileComparisonError) Error() string { return e.Msg }

// Is reports whether target is ErrFileComparison.
func (e *FileComparisonError) Is(target error) bool { return target == ErrFileComparison }

// Filter selects files by absolute path.
type Filter func(path string) bool

// All accepts every path.
func All(string) bool { return true }

// None rejects every path.
func None(string) bool { return false }

type options struct {
	include Filter
	exclude Filter
	subdir  string
}

// Option configures which files are written and where they land.
type Option func(*options)

// WithInclude writes only files f accepts.
func WithInclude(f Filter) Option {
	return func(o *options) { o.include = f }
}

// WithExclude skips files f accepts. Exclusion wins over inclusion.
func WithExclude(f Filter) Option {
	return func(o *options) { o.exclude = f }
}

// WithSubdir nests archive names under dir. Zipping spam/eggs/ham.txt
// rooted at spam with subdir foo yields foo/eggs/ham.txt.
func WithSubdir(dir string) Option {
	return func(o *options) { o.subdir = filepath.ToSlash(dir) }
}

func buildOptions(opts []Option) options {
	o := options{include: All, exclude: None}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WriteFiles adds paths to zw. Archive names are relative to root; with an
// empty root each file is stored under its base name and the subdir
// option does not apply.
func WriteFiles(zw *zip.Writer, paths []string, root string, opts ...Option) error {
	o := buildOptions(opts)
	for _, p := range paths {
		if !o.include(p) || o.exclude(p) {
			continue
		}
		name := filepath.Base(p)
		if root != "" {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			name = filepath.ToSlash(rel)
			if o.subdir != "" {
				name = path.Join(o.subdir, name)
			}
		}
		if err := addFile(zw, p, name); err != nil {
			return err
		}
	}
	return nil
}

// WriteDir adds every file under root to zw.
func WriteDir(zw *zip.Writer, root string, opts ...Option) error {
	var paths []string
	for p, err := range osutils.IterFiles(root, "*") {
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}
	return WriteFiles(zw, paths, root, opts...)
}

// ZipDir writes every file under root into a new deflated archive at out,
// creating out's parent directories as needed.
func ZipDir(root, out string, opts ...Option) (err error) {
	if _, err := osutils.MakeDirs(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	if err := WriteDir(zw, root, opts...); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("zip %s: %w", src, err)
	}
	return nil
}

// IsInsideZipFile walks up from p to its nearest existing ancestor and
// reports whether that ancestor is a zip archive.
func IsInsideZipFile(p string) bool {
	dir, file := filepath.Split(filepath.Clean(p))
	for dir != "" && file != "" {
		dir = filepath.Clean(dir)
		if _, err := os.Stat(dir); err == nil {
			return isZip(dir)
		}
		dir, file = filepath.Split(dir)
	}
	return false
}

func isZip(name string) bool {
	r, err := zip.OpenReader(name)
	if err != nil {
		return false
	}
	_ = r.Close()
	return true
}

// CompareZipFiles returns nil when a and b hold the same member names
// with the same CRCs, and a *FileComparisonError otherwise.
func CompareZipFiles(a, b string) error {
	ra, err := zip.OpenReader(a)
	if err != nil {
		return err
	}
	defer ra.Close()
	rb, err := zip.OpenReader(b)
	if err != nil {
		return err
	}
	defer rb.Close()

	ca, cb := crcs(&ra.Reader), crcs(&rb.Reader)
	na, nb := sortedNames(ca), sortedNames(cb)
	if !slices.Equal(na, nb) {
		return &FileComparisonError{Msg: fmt.Sprintf("file lists differ: %q, %q", na, nb)}
	}
	for _, name := range na {
		if ca[name] != cb[name] {
			return &FileComparisonError{Msg: fmt.Sprintf("%s: CRCs different (%d, %d)", name, ca[name], cb[name])}
		}
	}
	return nil
}

func crcs(r *zip.Reader) map[string]uint32 {
	out := make(map[string]uint32, len(r.File))
	for _, f := range r.File {
		out[f.Name] = f.CRC32
	}
	return out
}

func sortedNames(m map[string]uint32) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
