package kprotocol

import "encoding/binary"

// realEncoder is the concrete packetEncoder. buf grows by append; patch
// tokens are plain byte offsets and stay valid across growth because Go's
// append never invalidates indices already written into the backing array
// the encoder itself holds (only slices taken *before* a later growth and
// kept by the caller would be stale, which is why tokens are offsets, not
// sub-slices).
type realEncoder struct {
	buf []byte
}

// newRealEncoder preallocates capacityHint bytes. The hint is advisory;
// growth beyond it is a normal append.
func newRealEncoder(capacityHint int) *realEncoder {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &realEncoder{buf: make([]byte, 0, capacityHint)}
}

func (e *realEncoder) putInt8(in int8) {
	e.buf = append(e.buf, byte(in))
}

func (e *realEncoder) putInt16(in int16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(in))
	e.buf = append(e.buf, tmp[:]...)
}

func (e *realEncoder) putInt32(in int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(in))
	e.buf = append(e.buf, tmp[:]...)
}

func (e *realEncoder) putInt64(in int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(in))
	e.buf = append(e.buf, tmp[:]...)
}

func (e *realEncoder) putBool(in bool) {
	if in {
		e.putInt8(1)
	} else {
		e.putInt8(0)
	}
}

func (e *realEncoder) putString(in string) error {
	if len(in) > maxStringLength {
		return errInvalidStringLength
	}
	e.putInt16(int16(len(in)))
	e.buf = append(e.buf, in...)
	return nil
}

func (e *realEncoder) putNullableString(in *string) error {
	if in == nil {
		e.putInt16(-1)
		return nil
	}
	return e.putString(*in)
}

func (e *realEncoder) putBytes(in []byte) error {
	if in == nil {
		e.putInt32(-1)
		return nil
	}
	if len(in) > maxByteSliceLength {
		return errInvalidByteSliceLength
	}
	e.putInt32(int32(len(in)))
	e.buf = append(e.buf, in...)
	return nil
}

func (e *realEncoder) putNullableBytes(in []byte) error {
	return e.putBytes(in)
}

func (e *realEncoder) putArrayLength(in int) error {
	if in > maxArrayLength {
		return errInvalidArrayLength
	}
	e.putInt32(int32(in))
	return nil
}

func (e *realEncoder) putArrayCount() int {
	token := len(e.buf)
	e.putInt32(0)
	return token
}

func (e *realEncoder) updateArrayCount(token int, count int32) error {
	return e.updateInt32At(token, count)
}

func (e *realEncoder) reserveLength() int {
	token := len(e.buf)
	e.putInt32(0)
	return token
}

func (e *realEncoder) fillLength(token int) error {
	return e.updateInt32At(token, int32(len(e.buf)-token-4))
}

// updateInt32At is the back-patch primitive: it patches a 4-byte field at
// a previously-issued token without disturbing anything written after it.
func (e *realEncoder) updateInt32At(token int, value int32) error {
	if token < 0 || token+4 > len(e.buf) {
		return errInvalidPatchToken
	}
	binary.BigEndian.PutUint32(e.buf[token:token+4], uint32(value))
	return nil
}

func (e *realEncoder) spliceSubBuffer(sub packetEncoder) error {
	payload := sub.bytes()
	return e.putBytes(payload)
}

func (e *realEncoder) putRawBytes(in []byte) {
	e.buf = append(e.buf, in...)
}

func (e *realEncoder) bytes() []byte {
	return e.buf
}

const (
	maxStringLength    = 1 << 15
	maxByteSliceLength = 1 << 30
	maxArrayLength     = 1 << 27
)
