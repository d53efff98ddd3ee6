package config

import (
	"errors"
	"fmt"
)

// ValidationError reports a config value that can't be simulated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
