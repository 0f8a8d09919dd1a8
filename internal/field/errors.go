package field

import (
	"errors"
	"fmt"
)

// Configuration errors. User input never produces an error; these mean the
// field was wired incorrectly.
var (
	ErrUnsupportedToken      = errors.New("unsupported format token")
	ErrFormatExpansion       = errors.New("format expansion does not converge")
	ErrInvalidStep           = errors.New("invalid step")
	ErrControlledModeChanged = errors.New("field changed between controlled and uncontrolled")
)

type tokenError struct {
	token  string
	format string
}

func (e tokenError) Error() string {
	return fmt.Sprintf("%s: %q in format %q", ErrUnsupportedToken, e.token, e.format)
}

func (e tokenError) Unwrap() error { return ErrUnsupportedToken }

func errUnsupportedToken(token, format string) error {
	return tokenError{token: token, format: format}
}
