package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration that supports YAML parsing of values like
// "15m" or "1h30m", or integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		var ns int64
		if err := unmarshal(&ns); err != nil {
			return fmt.Errorf("duration must be a string (e.g., '15m') or integer (nanoseconds)")
		}
		*d = Duration(ns)
		return nil
	}

	parsed, errParse := time.ParseDuration(s)
	if errParse != nil {
		return fmt.Errorf("invalid duration %q: %w", s, errParse)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
