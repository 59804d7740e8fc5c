package filter

import (
	"errors"
	"fmt"
)

var (
	ErrNoLoader      = errors.New("filter: no shader loader")
	ErrDuplicateName = errors.New("filter: duplicate filter name")
)

// ShaderError reports a shader definition that could not be loaded or compiled.
type ShaderError struct {
	Def string
	Err error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("filter: shader %s: %v", e.Def, e.Err)
}

func (e *ShaderError) Unwrap() error { return e.Err }
