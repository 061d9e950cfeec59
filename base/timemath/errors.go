package timemath

import (
	"errors"
)

var (
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrNonMonotonicSource = errors.New("non-monotonic clock source reading")
	ErrInvalidArgument    = errors.New("invalid argument")
)
