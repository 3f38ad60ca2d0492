package query

import (
	"errors"
)

var (
	ErrNoJoin        = errors.New("query: On called without a preceding join")
	ErrCrossJoinOn   = errors.New("query: CROSS JOIN does not take an ON condition")
	ErrInvalidColumn = errors.New("query: unsupported column type")
)

// BaseBuilder accumulates misuse so fluent chains never have to stop for an
// error check. The first recorded error is returned from Build.
type BaseBuilder struct {
	errors []error
}

func NewBaseBuilder() *BaseBuilder {
	return &BaseBuilder{}
}

// AddError adds an error to the builder
func (bb *BaseBuilder) AddError(err error) {
	if err != nil {
		bb.errors = append(bb.errors, err)
	}
}

// HasErrors returns true if there are any errors
func (bb *BaseBuilder) HasErrors() bool {
	return len(bb.errors) > 0
}

// GetErrors returns all accumulated errors
func (bb *BaseBuilder) GetErrors() []error {
	return bb.errors
}

// GetFirstError returns the first error or nil
func (bb *BaseBuilder) GetFirstError() error {
	if len(bb.errors) > 0 {
		return bb.errors[0]
	}
	return nil
}
