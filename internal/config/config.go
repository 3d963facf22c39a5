package config

import (
	"os"
	"strconv"
	"time"
)

// Default values for the analysis pipeline. The accept/reject policy and the
// agent bands are deliberately named configuration, not inline literals, so
// they stay auditable and testable independently of parsing.
const (
	// DefaultModelName is the Gemini model used for AI-generated insights.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultAITimeout bounds a single generation call. A timeout downgrades
	// that call to the rule-based strategy; it never fails the request.
	DefaultAITimeout = 30 * time.Second

	// DefaultMinCandidateRows floors the financial-likelihood score: a
	// document with fewer candidate rows scores zero regardless of ratio,
	// so one coincidental numeric line cannot pass validation.
	DefaultMinCandidateRows = 3

	// DefaultScoreThreshold is the minimum share of candidate rows that
	// must pair a parseable date with a signed amount.
	DefaultScoreThreshold = 0.5

	// DefaultOverageMargin is how far a category's share of income may
	// exceed its 50/30/20 bucket allotment before the Budget Advisor
	// flags it.
	DefaultOverageMargin = 0.02
)

// Config is the process-wide configuration, resolved once at startup and
// read-only afterwards. The Gemini credential toggles AI-generation
// availability; its absence never prevents a complete run.
type Config struct {
	GeminiAPIKey string
	ModelName    string
	AITimeout    time.Duration

	LogLevel string

	MinCandidateRows int
	ScoreThreshold   float64
	OverageMargin    float64
}

// New loads configuration from environment variables, falling back to the
// defaults above.
func New() *Config {
	return &Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		ModelName:        getEnv("COACH_MODEL", DefaultModelName),
		AITimeout:        getDuration("COACH_AI_TIMEOUT", DefaultAITimeout),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MinCandidateRows: getInt("COACH_MIN_CANDIDATE_ROWS", DefaultMinCandidateRows),
		ScoreThreshold:   getFloat("COACH_SCORE_THRESHOLD", DefaultScoreThreshold),
		OverageMargin:    getFloat("COACH_OVERAGE_MARGIN", DefaultOverageMargin),
	}
}

// AIEnabled reports whether an external-generation credential is configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
