package mz

import "github.com/pkg/errors"

var (
	ErrMalformedHeader = errors.New("malformed MZ header")
	ErrInvalidGeometry = errors.New("invalid load module geometry")
)
