package pipeline

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid pipeline configuration supplied by the
// caller. It is fatal to the single invocation and leaves no partial
// result; a corrected query on the same collection works normally.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pipeline config: %s: %s", e.Field, e.Reason)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
