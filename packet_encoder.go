package kprotocol

// packetEncoder is the typed append/patch wire buffer for request bodies.
// Every count-writer returns an opaque token; the token stays valid across
// further appends and is resolved later with updateArrayCount (or
// fillLength for a reserveLength token), so nested
// array cardinalities can be fixed up after iteration.
type packetEncoder interface {
	putInt8(in int8)
	putInt16(in int16)
	putInt32(in int32)
	putInt64(in int64)
	putBool(in bool)

	// putString writes an i16-length-prefixed UTF-8 string;
	// putNullableString writes a -1 length for a nil string.
	putString(in string) error
	putNullableString(in *string) error

	// putBytes writes an i32-length-prefixed byte slice; -1 length encodes
	// a null slice.
	putBytes(in []byte) error
	putNullableBytes(in []byte) error

	// putArrayLength writes an i32 element count for a flat array whose
	// cardinality is known up front.
	putArrayLength(in int) error

	// putArrayCount reserves space for a count that will be back-patched
	// once the caller has finished iterating; it returns the patch token.
	putArrayCount() int

	// updateArrayCount resolves a token returned by putArrayCount.
	updateArrayCount(token int, count int32) error

	// reserveLength reserves an i32 length placeholder (e.g. for a nested
	// bytes field whose size isn't known until its contents are written)
	// and returns the patch token.
	reserveLength() int
	fillLength(token int) error

	// spliceSubBuffer appends a length-prefixed bytes field whose payload
	// is the already-encoded contents of sub.
	spliceSubBuffer(sub packetEncoder) error

	// putRawBytes appends in verbatim, with no length prefix of its own;
	// used by the message-set codec to write a record body into a region
	// already framed by a reserveLength/fillLength pair.
	putRawBytes(in []byte)

	bytes() []byte
}
