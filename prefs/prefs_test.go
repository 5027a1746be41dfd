package prefs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/utilkit/observe"
)

type errRecorder struct {
	errs []error
}

func (r *errRecorder) record(err error) { r.errs = append(r.errs, err) }

func TestNew_MakesDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := New(filepath.Join(dir, "prefs.json"))
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNew_ExpandsEnv(t *testing.T) {
	t.Setenv("UTILKIT_PREFS_DIR", t.TempDir())

	s, err := New("${UTILKIT_PREFS_DIR}/prefs.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("UTILKIT_PREFS_DIR"), "prefs.json"), s.Filename())

	_, err = New("${UTILKIT_PREFS_UNSET}/prefs.json")
	assert.Error(t, err)
}

func TestStore_GetSetDefault(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Get("a", "b", 3))

	v, err := s.SetDefault("a", "b", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 4, s.Get("a", "b", 5))

	v, err = s.SetDefault("a", "b", 6)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	for name, codec := range map[string]Codec{"json": JSONCodec{}, "yaml": YAMLCodec{}} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs."+name)

			s, err := New(path, WithCodec(codec))
			require.NoError(t, err)
			require.NoError(t, s.Set("window", "title", "utilkit"))
			require.NoError(t, s.Set("window", "maximized", true))

			reopened, err := New(path, WithCodec(codec))
			require.NoError(t, err)
			assert.Equal(t, "utilkit", GetAs(reopened, "window", "title", ""))
			assert.True(t, GetAs(reopened, "window", "maximized", false))
			assert.Equal(t, "fallback", GetAs(reopened, "window", "maximized", "fallback"))
		})
	}
}

func TestStore_CorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("yhgh5454][][.^^%()B"), 0o644))

	rec := &errRecorder{}
	s, err := New(path, OnLoadError(rec.record))
	require.NoError(t, err)

	v, err := s.SetDefault("test", "test", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 7, s.Get("test", "test", 0))

	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], ErrCorrupt)
}

func TestStore_InvalidData(t *testing.T) {
	tests := map[string]string{
		"scalar":         `"abcd"`,
		"list":           `[1, 2]`,
		"non-map region": `{"region": 5}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			rec := &errRecorder{}
			s, err := New(path, OnLoadError(rec.record))
			require.NoError(t, err)

			assert.Equal(t, 0, s.Get("region", "x", 0))
			require.Len(t, rec.errs, 1)
			assert.ErrorIs(t, rec.errs[0], ErrNotMapping)
		})
	}
}

func TestStore_DefaultLoadErrorLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	var buf bytes.Buffer
	_, err := New(path, WithLogger(observe.NewLoggerWithWriter("info", &buf)))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"msg":"load failed"`)
	assert.Contains(t, buf.String(), `"op.id":"prefs.store"`)
}

func TestStore_EmptyFileIsEmptyPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rec := &errRecorder{}
	s, err := New(path, WithCodec(YAMLCodec{}), OnLoadError(rec.record))
	require.NoError(t, err)
	assert.Empty(t, rec.errs)
	assert.Nil(t, s.Get("a", "b", nil))
}

func TestStore_YAMLIsNotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	s, err := New(path, WithCodec(YAMLCodec{}))
	require.NoError(t, err)
	require.NoError(t, s.Set("hi", "there", "you"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi:\n  there: you\n", string(raw))
	assert.False(t, strings.HasPrefix(string(raw), "{"))
}

func TestStore_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	reloaded, err := s.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"ui": {"theme": "dark"}}`), 0o644))

	assert.Eventually(t, func() bool {
		select {
		case <-reloaded:
		default:
		}
		return s.Get("ui", "theme", "") == "dark"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-reloaded
		return !ok
	}, 5*time.Second, 10*time.Millisecond)
}
