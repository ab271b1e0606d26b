package caddyfile

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMarker is returned for a line that carries the marker
	// prefix but is not a valid start marker.
	ErrMalformedMarker = errors.New("line declares a block marker but is not a valid start marker")
	// ErrInvalidConfig is returned when the JSON payload of an automatic
	// start marker is absent, malformed or incomplete.
	ErrInvalidConfig = errors.New("invalid automatic block config")
	// ErrUnterminated is returned when input ends inside a block.
	ErrUnterminated = errors.New("unterminated block")
	// ErrMissingParam is returned by Build for an automatic block config
	// lacking a required parameter.
	ErrMissingParam = errors.New("missing automatic block parameter")
)

// ParseError locates a parse failure.
type ParseError struct {
	Line   int // 1-based
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParamError names the parameter an automatic block config is missing.
// Index is the block's position in Document.Automatic, or -1 when the
// config was checked on its own.
type ParamError struct {
	Index int
	Key   string
}

func (e *ParamError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v %q", ErrMissingParam, e.Key)
	}
	return fmt.Sprintf("automatic block %d: %v %q", e.Index+1, ErrMissingParam, e.Key)
}

func (e *ParamError) Unwrap() error { return ErrMissingParam }
