package prefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonwraymond/utilkit/observe"
	"github.com/jonwraymond/utilkit/osutils"
)

var (
	// ErrCorrupt wraps decode failures reported to OnLoadError.
	ErrCorrupt = errors.New("prefs: corrupt preferences file")

	// ErrNotMapping indicates a file that decodes to something other than
	// a mapping of mappings.
	ErrNotMapping = errors.New("prefs: preferences file is not a mapping of mappings")
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Store holds preferences in memory and mirrors them to a file.
// A Store is safe for concurrent use.
type Store struct {
	filename    string
	codec       Codec
	logger      observe.Logger
	onLoadError func(error)
	debounce    time.Duration

	mu    sync.RWMutex
	prefs map[string]map[string]any
}

// Option configures a Store.
type Option func(*Store)

// WithCodec selects the file format. The default is JSONCodec.
func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

// WithLogger sets the logger used for load failures and reloads.
func WithLogger(l observe.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// OnLoadError replaces the default load error report, which logs at
// error level.
func OnLoadError(fn func(error)) Option {
	return func(s *Store) { s.onLoadError = fn }
}

// WithDebounce sets the settle time for Watch.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// New opens the store at filename after expanding environment variables
// in it, creating parent directories and loading existing contents.
func New(filename string, opts ...Option) (*Store, error) {
	expanded, err := osutils.ExpandEnvStrict(filename)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}

	s := &Store{
		filename: abs,
		codec:    JSONCodec{},
		logger:   observe.NopLogger(),
		debounce: DefaultDebounce,
		prefs:    map[string]map[string]any{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(observe.OpMeta{Component: "prefs", Name: "store"})
	if s.onLoadError == nil {
		s.onLoadError = func(err error) {
			s.logger.Error(context.Background(), "load failed", observe.F("file", s.filename), observe.F("error", err))
		}
	}

	if _, err := osutils.MakeDirs(filepath.Dir(abs), 0o755); err != nil {
		return nil, err
	}
	s.Load()
	return s, nil
}

// Filename returns the absolute path of the backing file.
func (s *Store) Filename() string { return s.filename }

// Get returns the value of region.variable, or def when it is unset.
func (s *Store) Get(region, variable string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.prefs[region][variable]; ok {
		return v
	}
	return def
}

// GetAs returns region.variable as a T, or def when it is unset or holds
// another type.
func GetAs[T any](s *Store, region, variable string, def T) T {
	if v, ok := s.Get(region, variable, def).(T); ok {
		return v
	}
	return def
}

// Set stores value under region.variable and saves.
func (s *Store) Set(region, variable string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(region, variable, value)
	return s.saveLocked()
}

// SetDefault stores def under region.variable when it is unset and
// returns the value now in effect.
func (s *Store) SetDefault(region, variable string, def any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.prefs[region][variable]; ok {
		return v, nil
	}
	s.setLocked(region, variable, def)
	return def, s.saveLocked()
}

func (s *Store) setLocked(region, variable string, value any) {
	r, ok := s.prefs[region]
	if !ok {
		r = map[string]any{}
		s.prefs[region] = r
	}
	r[variable] = value
}

// Save writes the preferences to the backing file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, s.prefs); err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	return os.WriteFile(s.filename, buf.Bytes(), 0o644)
}

// Load replaces the in-memory preferences with the file's contents.
// A missing file leaves them unchanged. A file that cannot be read or
// decoded resets them to empty and is reported to OnLoadError.
func (s *Store) Load() {
	doc, err := s.read()

	s.mu.Lock()
	switch {
	case err == nil && doc != nil:
		s.prefs = doc
	case err != nil:
		s.prefs = map[string]map[string]any{}
	}
	s.mu.Unlock()

	if err != nil {
		s.onLoadError(err)
	}
}

func (s *Store) read() (map[string]map[string]any, error) {
	f, err := os.Open(s.filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := s.codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return toDocument(raw)
}

func toDocument(raw any) (map[string]map[string]any, error) {
	if raw == nil {
		return map[string]map[string]any{}, nil
	}
	top, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}
	doc := make(map[string]map[string]any, len(top))
	for region, v := range top {
		vars, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: region %q is %T", ErrNotMapping, region, v)
		}
		doc[region] = vars
	}
	return doc, nil
}
