// Package envconfig reads llamago's ambient environment-variable
// settings: the log verbosity and the default generation budget, the
// same "Var lookup + typed getter" texture the teacher's envconfig
// package uses for its (much larger) server configuration surface.
//
// The teacher's version also exposes OLLAMA_HOST/OLLAMA_MODELS/
// OLLAMA_KEEP_ALIVE/GPU-visibility variables for its HTTP model-registry
// server and multi-backend scheduler; none of that applies here (no
// server, no GPU, single CPU-only run to completion), so only the
// settings this CLI actually reads are kept.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable's value, trimmed of surrounding
// whitespace and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the configured slog level.
// Configurable via LLAMAGO_DEBUG: unset/false = INFO, true/1 = DEBUG.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("LLAMAGO_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		}
	}
	return level
}

// DefaultMaxTokens returns the default generation budget (spec §6: 256)
// unless overridden via LLAMAGO_MAX_TOKENS.
func DefaultMaxTokens() uint {
	return Uint("LLAMAGO_MAX_TOKENS", 256)()
}
