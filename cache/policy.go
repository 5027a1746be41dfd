package cache

import "fmt"

// Config configures a memoizer.
type Config struct {
	// MaxSize bounds the number of stored entries.
	// Unbounded never evicts; zero disables storage but still counts misses.
	MaxSize int

	// Typed keeps arguments of different types in separate entries
	// even when they compare equal (3 and 3.0).
	Typed bool
}

// DefaultConfig returns a bounded LRU configuration holding 128 entries.
func DefaultConfig() Config {
	return Config{MaxSize: 128}
}

// UnboundedConfig returns a configuration that never evicts.
func UnboundedConfig() Config {
	return Config{MaxSize: Unbounded}
}

// NoCacheConfig returns a configuration that never stores results.
func NoCacheConfig() Config {
	return Config{MaxSize: 0}
}

// ShouldCache returns true if results are stored at all.
func (c Config) ShouldCache() bool {
	return c.MaxSize != 0
}

// Bounded returns true if the configuration evicts entries.
func (c Config) Bounded() bool {
	return c.MaxSize > 0
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxSize < Unbounded {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxSize, c.MaxSize)
	}
	return nil
}
