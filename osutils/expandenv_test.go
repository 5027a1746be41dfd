package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("UTILKIT_HOME", "/home/u")
	t.Setenv("UTILKIT_EMPTY", "")

	tests := []struct {
		in   string
		want string
	}{
		{"${UTILKIT_HOME}/prefs.json", "/home/u/prefs.json"},
		{"$UTILKIT_HOME/prefs.json", "/home/u/prefs.json"},
		{"a${UTILKIT_EMPTY}b", "ab"},
		{"$$${UTILKIT_HOME}", "$/home/u"},
		{"no refs", "no refs"},
	}
	for _, tc := range tests {
		got, err := ExpandEnvStrict(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestExpandEnvStrict_MissingVars(t *testing.T) {
	t.Setenv("PRESENT", "ok")

	_, err := ExpandEnvStrict("a=${PRESENT} b=${MISSING_B} c=$MISSING_A d=${MISSING_B}")
	require.ErrorIs(t, err, ErrMissingEnv)
	assert.Contains(t, err.Error(), "MISSING_A, MISSING_B")
}
