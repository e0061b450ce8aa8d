package fobz

import "errors"

var (
	ErrFormat               = errors.New("fobz: invalid or missing metadata entry")
	ErrValidation           = errors.New("fobz: validation failed")
	ErrLimitExceeded        = errors.New("fobz: limit exceeded")
	ErrUnsupportedExtension = errors.New("fobz: unsupported file extension")
)
