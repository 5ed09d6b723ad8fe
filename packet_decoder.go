package kprotocol

// packetDecoder is the read side of the wire buffer. Once any read fails the
// decoder is "stuck": err() returns the sticky failure and every further
// read returns it too.
type packetDecoder interface {
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getInt64() (int64, error)
	getBool() (bool, error)

	// getString returns a borrowed-view string; -1 length decodes to "".
	getString() (string, error)
	getNullableString() (*string, error)

	getBytes() ([]byte, error)
	getNullableBytes() ([]byte, error)

	// getArrayLength reads an i32 count and validates it against the
	// remaining buffer length so a corrupt count can't cause a caller to
	// allocate an unbounded slice.
	getArrayLength() (int, error)

	remaining() int
	err() error
}
