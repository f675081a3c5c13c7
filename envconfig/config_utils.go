package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Bool returns a function reading a boolean environment variable, false
// if unset or unparseable.
func Bool(k string) func() bool {
	return func() bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err == nil {
				return b
			}
		}
		return false
	}
}

// Uint returns a function reading a uint environment variable, falling
// back to defaultValue if unset or unparseable.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one environment variable for the CLI's usage text.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every llamago environment variable with its current
// value and description, for the CLI's env-var usage appendix.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"LLAMAGO_DEBUG":      {"LLAMAGO_DEBUG", LogLevel(), "Show additional debug information (e.g. LLAMAGO_DEBUG=1)"},
		"LLAMAGO_MAX_TOKENS": {"LLAMAGO_MAX_TOKENS", DefaultMaxTokens(), "Default generation budget when -n is not passed (default 256)"},
	}
}

// Values returns every llamago environment variable's current value as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
