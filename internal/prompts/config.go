package prompts

// Config controls the behavior of the Service.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorTopics caps how many already-used topics go into the prompt.
	MaxPriorTopics int

	// MaxPromptLen is the longest prompt accepted, in bytes.
	MaxPromptLen int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      400,
		Temperature:    0.8,
		MaxPriorTopics: 10,
		MaxPromptLen:   600,
	}
}
