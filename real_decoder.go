package kprotocol

import (
	"encoding/binary"
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// realDecoder is the concrete packetDecoder. Once stickyErr is set every
// subsequent read short-circuits and returns it.
type realDecoder struct {
	buf       []byte
	off       int
	stickyErr error
	logger    Logger
	channel   string
}

func newRealDecoder(buf []byte) *realDecoder {
	return &realDecoder{buf: buf}
}

// withDiagnostics attaches a logger/channel so a decode failure dumps the
// surrounding bytes at debug level.
func (d *realDecoder) withDiagnostics(logger Logger, channel string) *realDecoder {
	d.logger = orNop(logger)
	d.channel = channel
	return d
}

func (d *realDecoder) fail(err error) error {
	if d.stickyErr == nil {
		d.stickyErr = err
		if d.logger != nil {
			lo := d.off - 16
			if lo < 0 {
				lo = 0
			}
			hi := d.off + 16
			if hi > len(d.buf) {
				hi = len(d.buf)
			}
			d.logger.Debugf(d.channel, "decode failed at offset %d: %v\n%s",
				d.off, err, spew.Sdump(d.buf[lo:hi]))
		}
	}
	return d.stickyErr
}

func (d *realDecoder) err() error { return d.stickyErr }

func (d *realDecoder) remaining() int {
	if d.stickyErr != nil {
		return 0
	}
	return len(d.buf) - d.off
}

func (d *realDecoder) require(n int) bool {
	if d.stickyErr != nil {
		return false
	}
	if d.off+n > len(d.buf) {
		d.fail(fmt.Errorf("kprotocol: short read: need %d bytes, have %d", n, len(d.buf)-d.off))
		return false
	}
	return true
}

func (d *realDecoder) getInt8() (int8, error) {
	if !d.require(1) {
		return 0, d.stickyErr
	}
	v := int8(d.buf[d.off])
	d.off++
	return v, nil
}

func (d *realDecoder) getInt16() (int16, error) {
	if !d.require(2) {
		return 0, d.stickyErr
	}
	v := int16(binary.BigEndian.Uint16(d.buf[d.off:]))
	d.off += 2
	return v, nil
}

func (d *realDecoder) getInt32() (int32, error) {
	if !d.require(4) {
		return 0, d.stickyErr
	}
	v := int32(binary.BigEndian.Uint32(d.buf[d.off:]))
	d.off += 4
	return v, nil
}

func (d *realDecoder) getInt64() (int64, error) {
	if !d.require(8) {
		return 0, d.stickyErr
	}
	v := int64(binary.BigEndian.Uint64(d.buf[d.off:]))
	d.off += 8
	return v, nil
}

func (d *realDecoder) getBool() (bool, error) {
	v, err := d.getInt8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (d *realDecoder) getString() (string, error) {
	n, err := d.getInt16()
	if err != nil {
		return "", err
	}
	if n == -1 {
		return "", nil
	}
	if n < -1 {
		return "", d.fail(fmt.Errorf("kprotocol: invalid negative string length %d", n))
	}
	if !d.require(int(n)) {
		return "", d.stickyErr
	}
	s := string(d.buf[d.off : d.off+int(n)])
	d.off += int(n)
	return s, nil
}

func (d *realDecoder) getNullableString() (*string, error) {
	n, err := d.getInt16()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < -1 {
		return nil, d.fail(fmt.Errorf("kprotocol: invalid negative string length %d", n))
	}
	if !d.require(int(n)) {
		return nil, d.stickyErr
	}
	s := string(d.buf[d.off : d.off+int(n)])
	d.off += int(n)
	return &s, nil
}

func (d *realDecoder) getBytes() ([]byte, error) {
	n, err := d.getInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < -1 {
		return nil, d.fail(fmt.Errorf("kprotocol: invalid negative bytes length %d", n))
	}
	if !d.require(int(n)) {
		return nil, d.stickyErr
	}
	b := d.buf[d.off : d.off+int(n)]
	d.off += int(n)
	return b, nil
}

func (d *realDecoder) getNullableBytes() ([]byte, error) {
	return d.getBytes()
}

func (d *realDecoder) getArrayLength() (int, error) {
	n, err := d.getInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nil
	}
	if int(n) > d.remaining() && d.remaining() >= 0 {
		return 0, d.fail(fmt.Errorf("kprotocol: array length %d exceeds remaining buffer", n))
	}
	return int(n), nil
}
