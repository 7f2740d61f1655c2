package interp

import "errors"

var (
	ErrRangeTooShort     = errors.New("interpolation range needs at least two values")
	ErrRangeMismatch     = errors.New("interpolation range and output differ in length")
	ErrRangeNotMonotonic = errors.New("interpolation range must be strictly increasing")
	ErrOutputType        = errors.New("interpolation output must be numbers or strings")
	ErrTemplateMismatch  = errors.New("interpolation output strings differ in shape")
	ErrExpression        = errors.New("invalid interpolation expression")
)
