package kprotocol

import "errors"

var (
	errInvalidStringLength    = errors.New("kprotocol: string too long to encode")
	errInvalidByteSliceLength = errors.New("kprotocol: byte slice too long to encode")
	errInvalidArrayLength     = errors.New("kprotocol: array too long to encode")
	errInvalidPatchToken      = errors.New("kprotocol: invalid back-patch token")
)
