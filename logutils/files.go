package logutils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jonwraymond/utilkit/observe"
)

// DefaultLayout is the time layout used for timestamped names.
const DefaultLayout = "2006-01-02-15-04-05"

// KeepLogs is how many older logs TimestampedLogFilename leaves in place.
const KeepLogs = 15

// ErrInvalidMaxFiles indicates a negative file count for RemoveOldFiles.
var ErrInvalidMaxFiles = errors.New("logutils: maxFiles must be >= 0")

var getpid = os.Getpid

// Timestamp formats t with layout, or DefaultLayout when layout is empty.
func Timestamp(layout string, t time.Time) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Format(layout)
}

type stampOptions struct {
	layout string
	sep    string
}

// StampOption customizes TimestampedFilename.
type StampOption func(*stampOptions)

// WithLayout sets the time layout.
func WithLayout(layout string) StampOption {
	return func(o *stampOptions) { o.layout = layout }
}

// WithSep sets the separator placed between the name and the timestamp.
func WithSep(sep string) StampOption {
	return func(o *stampOptions) { o.sep = sep }
}

// TimestampedFilename inserts a timestamp before the extension:
// blah.log becomes blah_2010-09-08-07-06-05.log.
func TimestampedFilename(name string, t time.Time, opts ...StampOption) string {
	o := stampOptions{layout: DefaultLayout, sep: "_"}
	for _, opt := range opts {
		opt(&o)
	}
	ext := filepath.Ext(name)
	head := strings.TrimSuffix(name, ext)
	return head + o.sep + Timestamp(o.layout, t) + ext
}

// TimestampedLogFilename returns folder/<basename>_<timestamp>_pid<pid><ext>
// and prunes all but the newest KeepLogs older logs for basename.
// An empty basename uses the folder's base name; an empty ext uses ".log".
// Pruning is best-effort.
func TimestampedLogFilename(ctx context.Context, folder, basename, ext string, t time.Time, opts ...Option) string {
	if basename == "" {
		basename = filepath.Base(folder)
	}
	if ext == "" {
		ext = ".log"
	}
	name := fmt.Sprintf("%s_%s_pid%d%s", basename, Timestamp("", t), getpid(), ext)
	_ = RemoveOldFiles(ctx, folder, "*"+basename+"_*"+ext, KeepLogs, opts...)
	return filepath.Join(folder, name)
}

type options struct {
	logger observe.Logger
}

// Option configures RemoveOldFiles.
type Option func(*options)

// WithLogger reports removals and failures to l.
func WithLogger(l observe.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type candidate struct {
	path    string
	modTime time.Time
	size    int64
}

// RemoveOldFiles deletes the oldest files in root whose names match pattern
// so that at most maxFiles remain. Zero removes every match. Files that
// cannot be removed are skipped and still count as removed.
func RemoveOldFiles(ctx context.Context, root, pattern string, maxFiles int, opts ...Option) error {
	if maxFiles < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxFiles, maxFiles)
	}
	if pattern == "" {
		pattern = "*"
	}
	o := options{logger: observe.NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With(observe.OpMeta{Component: "logutils", Name: "remove_old_files"})

	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	var files []candidate
	for _, e := range entries {
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{filepath.Join(root, e.Name()), info.ModTime(), info.Size()})
	}
	if len(files) <= maxFiles {
		return nil
	}

	slices.SortStableFunc(files, func(a, b candidate) int { return b.modTime.Compare(a.modTime) })
	for _, f := range files[maxFiles:] {
		if err := os.Remove(f.path); err != nil {
			log.Warn(ctx, "could not remove old file", observe.F("path", f.path), observe.F("error", err))
			continue
		}
		log.Debug(ctx, "removed old file", observe.F("path", f.path), observe.F("size", humanize.Bytes(uint64(f.size))))
	}
	return nil
}
