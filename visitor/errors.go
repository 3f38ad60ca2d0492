package visitor

import (
	"errors"
)

var (
	// ErrInvalidPredicate reports a predicate that can never be rendered
	// correctly, such as a comparison against nil.
	ErrInvalidPredicate = errors.New("invalid predicate")
	// ErrInvalidPagination reports a negative row count or offset.
	ErrInvalidPagination = errors.New("invalid pagination")
	// ErrUnsupportedDialectOperation reports a construct the bound dialect
	// cannot express.
	ErrUnsupportedDialectOperation = errors.New("unsupported dialect operation")
)

// RenderError carries the failing clause alongside one of the sentinel kinds.
type RenderError struct {
	Kind   error
	Clause string
	Msg    string
}

func (e *RenderError) Error() string {
	s := "render"
	if e.Clause != "" {
		s += " " + e.Clause
	}
	s += ": " + e.Kind.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *RenderError) Unwrap() error {
	return e.Kind
}

func (e *RenderError) Is(target error) bool {
	return target == e.Kind
}

// IsInvalidPredicate reports whether err is, or wraps, ErrInvalidPredicate.
func IsInvalidPredicate(err error) bool {
	return errors.Is(err, ErrInvalidPredicate)
}

func IsInvalidPagination(err error) bool {
	return errors.Is(err, ErrInvalidPagination)
}

func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedDialectOperation)
}
