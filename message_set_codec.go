package kprotocol

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	snappy "github.com/eapache/go-xerial-snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DefaultMessageSetCodec is the concrete MessageSetCodec this layer ships:
// classic Kafka message-set framing (magic byte 0 for Produce v0-1, 1 for
// v2's log-append-time field), with compression delegated to the real
// backend for each CompressionCodec. The per-message
// CRC/attributes/timestamp layout lives behind the MessageSetCodec seam
// instead of inside the Produce request builder.
type DefaultMessageSetCodec struct{}

const (
	msgMagicV0 = 0
	msgMagicV1 = 1

	compressionCodecMask = 0x07
)

func magicForVersion(version int16) int8 {
	if version >= 2 {
		return msgMagicV1
	}
	return msgMagicV0
}

// Encode writes msgs as one or more classic Kafka messages into pe; when
// codec is not CompressionNone, the whole inner message set is compressed
// and wrapped in a single outer message whose Value is the compressed
// bytes, matching Kafka's wrapper-message compression scheme.
func (DefaultMessageSetCodec) Encode(pe packetEncoder, msgs []*ProducerMessage, codec CompressionCodec, version int16) error {
	magic := magicForVersion(version)

	if codec == CompressionNone {
		for i, m := range msgs {
			if err := encodeOneMessage(pe, magic, codec, int64(i), m); err != nil {
				return err
			}
		}
		return nil
	}

	inner := newRealEncoder(256)
	for i, m := range msgs {
		if err := encodeOneMessage(inner, magic, CompressionNone, int64(i), m); err != nil {
			return err
		}
	}

	compressed, err := compressBytes(codec, inner.bytes())
	if err != nil {
		return err
	}

	wrapper := &ProducerMessage{Value: compressed}
	return encodeOneMessage(pe, magic, codec, 0, wrapper)
}

// encodeOneMessage writes one [offset int64][messageSize int32][crc int32
// attributes...] record, back-patching the CRC once the message body is
// known.
func encodeOneMessage(pe packetEncoder, magic int8, codec CompressionCodec, offset int64, m *ProducerMessage) error {
	pe.putInt64(offset)

	sizeToken := pe.reserveLength()

	crcToken := pe.reserveLength() // 4-byte placeholder, patched with the CRC below
	body := newRealEncoder(64)
	body.putInt8(magic)
	body.putInt8(int8(codec) & compressionCodecMask)
	if magic >= msgMagicV1 {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		body.putInt64(ts.UnixMilli())
	}
	if err := body.putBytes(m.Key); err != nil {
		return err
	}
	if err := body.putBytes(m.Value); err != nil {
		return err
	}

	crc := crc32.ChecksumIEEE(body.bytes())
	if err := pe.updateArrayCount(crcToken, int32(crc)); err != nil {
		return err
	}
	pe.putRawBytes(body.bytes())

	return pe.fillLength(sizeToken)
}

// Decode reads a flat message set (already split from its enclosing
// length-prefixed field by the caller) and expands any wrapper-compressed
// messages transparently, matching Kafka's "decompress on read" contract.
func (DefaultMessageSetCodec) Decode(pd packetDecoder, version int16) ([]*FetchedMessage, error) {
	var out []*FetchedMessage
	for pd.remaining() > 0 {
		offset, err := pd.getInt64()
		if err != nil {
			return out, nil // trailing partial message, tolerated
		}
		size, err := pd.getInt32()
		if err != nil {
			return out, nil
		}
		if pd.remaining() < int(size) {
			return out, nil
		}

		// CRC is validated by the transport's framing layer before the body
		// reaches this codec.
		if _, err := pd.getInt32(); err != nil {
			return nil, err
		}
		magic, err := pd.getInt8()
		if err != nil {
			return nil, err
		}
		attrs, err := pd.getInt8()
		if err != nil {
			return nil, err
		}
		var ts int64
		if magic >= msgMagicV1 {
			if ts, err = pd.getInt64(); err != nil {
				return nil, err
			}
		}
		key, err := pd.getBytes()
		if err != nil {
			return nil, err
		}
		value, err := pd.getBytes()
		if err != nil {
			return nil, err
		}

		codec := CompressionCodec(attrs & compressionCodecMask)
		if codec == CompressionNone {
			out = append(out, &FetchedMessage{Key: key, Value: value, Offset: offset, Timestamp: msTime(ts)})
			continue
		}

		raw, err := decompressBytes(codec, value)
		if err != nil {
			return nil, err
		}
		inner := newRealDecoder(raw)
		nested, err := (DefaultMessageSetCodec{}).Decode(inner, version)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// msTime converts a millisecond epoch timestamp to time.Time, leaving the
// zero value for messages encoded under magic v0 (no timestamp field).
func msTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func compressBytes(codec CompressionCodec, data []byte) ([]byte, error) {
	switch codec {
	case CompressionGZIP:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionSnappy:
		return snappy.Encode(data), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("kprotocol: unsupported compression codec %d", codec)
	}
}

func decompressBytes(codec CompressionCodec, data []byte) ([]byte, error) {
	switch codec {
	case CompressionGZIP:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionSnappy:
		return snappy.Decode(data)
	case CompressionLZ4:
		r := lz4.NewReader(bytes.NewReader(data))
		return io.ReadAll(r)
	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("kprotocol: unsupported compression codec %d", codec)
	}
}
