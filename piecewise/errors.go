package piecewise

import "errors"

var (
	ErrBadFormat = errors.New("bad format")
	ErrNoPoints  = errors.New("no points")
)
