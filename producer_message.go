package kprotocol

import "time"

// CompressionCodec selects the message-set compression backend; encoding
// itself is delegated to a MessageSetCodec.
type CompressionCodec int8

const (
	CompressionNone CompressionCodec = iota
	CompressionGZIP
	CompressionSnappy
	CompressionLZ4
	CompressionZSTD
)

// ProducerMessage is the caller-owned unit of work a Produce request batches
// up. ProtocolBody encoding never touches Value/Key directly; it hands the
// whole slice to the MessageSetCodec.
type ProducerMessage struct {
	Topic     string
	Partition int32
	Key       []byte
	Value     []byte
	Timestamp time.Time

	// ExpiresAt is the message's own delivery deadline (message timeout,
	// tracked from enqueue). The Produce builder bases the request deadline
	// on the first message's remaining time; zero means no message timeout.
	ExpiresAt time.Time

	// Offset and Timestamp are stamped back by the Produce handler on
	// success: either on every message when ProduceOffsetReport is
	// set, or only on the batch's last message otherwise.
	Offset int64

	// retries counts attempts already spent; Transport errors increment it,
	// Refresh-only/queue-timeout errors do not.
	retries int

	// flags records why the message is back on the queue, so the handler
	// can tell a Transport-retried message from a fresh one.
	flags produceMsgFlags
}

type produceMsgFlags int

const (
	msgFlagNone             produceMsgFlags = 0
	msgFlagRetriedTransport produceMsgFlags = 1 << iota
)

// FetchedMessage is the read side of MessageSetCodec.Decode; out of scope
// for this layer beyond the shape the interface needs to hand back.
type FetchedMessage struct {
	Key       []byte
	Value     []byte
	Offset    int64
	Timestamp time.Time
}

// MessageSetCodec is the external collaborator that
// owns message-set framing and compression. Produce/Fetch bodies are built
// and parsed through it rather than this package reimplementing RecordBatch
// encoding.
type MessageSetCodec interface {
	Encode(pe packetEncoder, msgs []*ProducerMessage, codec CompressionCodec, version int16) error
	Decode(pd packetDecoder, version int16) ([]*FetchedMessage, error)
}
