package javadoc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedComment indicates a doc comment opener with no closer.
	ErrUnterminatedComment = errors.New("unterminated doc comment")
	// ErrMalformedComment indicates text passed to [ParseComment] that is not
	// delimited by "/**" and "*/".
	ErrMalformedComment = errors.New("malformed doc comment")
)

// ParseError describes a failure at a position in source text.
type ParseError struct {
	Err error
	// Offset is the byte offset of the failure.
	Offset int
	// Line is the 1-based line of the failure.
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (offset %d): %v", e.Line, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// lineAt returns the 1-based line number of byte offset off in src. CRLF,
// CR and LF each end a line.
func lineAt(src string, off int) int {
	line := 1

	for i := 0; i < off && i < len(src); i++ {
		switch src[i] {
		case '\n':
			line++
		case '\r':
			if i+1 >= len(src) || src[i+1] != '\n' {
				line++
			}
		}
	}

	return line
}
