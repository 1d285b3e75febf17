package shortener

const (
	DefaultHashLength  = 5
	DefaultMaxAttempts = 3
)

// Config controls hash generation.
type Config struct {
	// HashLength is the length of the first candidate.
	HashLength int
	// MaxAttempts is how many candidates are tried at one length before growing it.
	MaxAttempts int
	// MaxHashLength aborts generation with ErrExhausted once the length would
	// exceed it. Zero means unbounded.
	MaxHashLength int
	// MaxTotalAttempts aborts generation with ErrExhausted after this many
	// candidates. Zero means unbounded.
	MaxTotalAttempts int
}

// DefaultConfig returns the documented defaults: length 5, three attempts per length, no guards.
func DefaultConfig() Config {
	return Config{
		HashLength:  DefaultHashLength,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// normalized replaces non-positive required values with defaults.
func (c Config) normalized() Config {
	if c.HashLength < 1 {
		c.HashLength = DefaultHashLength
	}

	if c.MaxAttempts < 1 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	if c.MaxHashLength < 0 {
		c.MaxHashLength = 0
	}

	if c.MaxTotalAttempts < 0 {
		c.MaxTotalAttempts = 0
	}

	return c
}
