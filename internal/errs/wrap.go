// Package errs chains sentinel errors over their causes, so call sites can
// match the sentinel with errors.Is while the log line keeps the cause.
package errs

import "fmt"

// Wrap layers ext under base. A nil ext returns base alone.
func Wrap(base, ext error) error {
	if ext == nil {
		return base
	}

	return fmt.Errorf("%w: %w", base, ext)
}

// Wrapf annotates base with a plain detail string.
func Wrapf(base error, str string) error {
	return fmt.Errorf("%w: %s", base, str)
}
