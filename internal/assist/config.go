package assist

// Config holds generation settings for the assist requests.
type Config struct {
	// Temperature for explain and prerequisites requests.
	Temperature float64

	// TranslateMaxTokens caps each translated string. Translation works one
	// question field at a time, so this stays small.
	TranslateMaxTokens int
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		Temperature:        0.7,
		TranslateMaxTokens: 1000,
	}
}
