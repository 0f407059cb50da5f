package meow

import (
	"errors"
	"fmt"
)

// Errors are split in two: FormatError means the encoded data is bad and IOError means
// the underlying io.Reader or io.Writer is. Both wrap a cause and can be inspected with
//
//	var ferr *meow.FormatError
//	var ioerr *meow.IOError
//	if errors.As(err, &ferr) {
//		// bad input at ferr.Offset
//	} else if errors.As(err, &ioerr) {
//		// stop using the stream
//	}
//
// FormatError always wraps one of the sentinels below.
var (
	// ErrInvalidLetter is returned when a character is not a case of the letter expected at its token position.
	ErrInvalidLetter = errors.New("invalid letter")

	// ErrTruncated is returned when the input ends inside a token or between the two tokens of a byte.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidLength is returned when a single token is longer than TokenLen.
	ErrInvalidLength = errors.New("invalid token length")

	// ErrInvalidArgument is returned before any io when a stream is nil.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FormatError describes malformed encoded input.
type FormatError struct {
	Offset int64 // offset of the offending character, line breaks included
	Char   byte  // the offending character; zero for truncation
	Err    error
}

// Error implements error.
func (e *FormatError) Error() string {
	if e.Err == ErrTruncated {
		return fmt.Sprintf("meow: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("meow: %v %q at offset %d", e.Err, e.Char, e.Offset)
}

// Unwrap implements errors's Unwrap()
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IOError is returned when the underlying stream fails.
type IOError struct {
	Op  string // "read" or "write"
	Err error
}

// Error implements error.
func (e *IOError) Error() string {
	return "meow: " + e.Op + ": " + e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e *IOError) Unwrap() error {
	return e.Err
}
