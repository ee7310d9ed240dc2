package placement

// Config holds placement test generation settings.
type Config struct {
	Questions   int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for the placement test.
func DefaultConfig() Config {
	return Config{
		Questions:   5,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
