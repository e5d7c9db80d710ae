package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned by queries the host OS cannot answer.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrUnparsableOutput marks command output that did not have the expected shape.
	ErrUnparsableOutput = errors.New("unparsable output")
)

// ParseError describes which command produced unexpected output and why.
type ParseError struct {
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrUnparsableOutput, e.Source, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrUnparsableOutput
}

func parseErrorf(source, format string, args ...any) error {
	return &ParseError{Source: source, Reason: fmt.Sprintf(format, args...)}
}
