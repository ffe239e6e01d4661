package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput means no file, or a file without even a header row.
	ErrEmptyInput = errors.New("empty input")
	// ErrMissingColumns is matched by every *SchemaError.
	ErrMissingColumns = errors.New("required columns missing")
)

type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumns }

// ParseError is a cell that does not parse as its column type. Line is 1-based
// and counts the header.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
