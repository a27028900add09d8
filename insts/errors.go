package insts

import "errors"

var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrUndefinedVariable    = errors.New("undefined variable")
	ErrMethodNotFound       = errors.New("method not found")
	ErrDuplicateField       = errors.New("duplicate field")
	ErrStackUnderflow       = errors.New("stack underflow")
	ErrNotImplemented       = errors.New("not implemented")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrInvalidArgument      = errors.New("invalid argument")
)
