package osutils

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// ErrMissingEnv indicates a referenced environment variable is unset.
var ErrMissingEnv = errors.New("osutils: missing required environment variables")

// ExpandEnvStrict expands $VAR and ${VAR} references in s.
//
// Every referenced variable must be set, possibly to the empty string.
// $$ emits a literal $.
func ExpandEnvStrict(s string) (string, error) {
	var missing []string
	out := os.Expand(s, func(key string) string {
		if key == "$" {
			return "$"
		}
		v, ok := os.LookupEnv(key)
		if !ok && !slices.Contains(missing, key) {
			missing = append(missing, key)
		}
		return v
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return out, nil
}
