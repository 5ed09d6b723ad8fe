package kprotocol

import "time"

// RequestFlags are per-request behavior bits.
type RequestFlags int

const (
	// FlagBlocking marks a request whose caller is waiting synchronously
	// (JoinGroup, SyncGroup): the absolute deadline gets the +3s grace rule.
	FlagBlocking RequestFlags = 1 << iota
	// FlagNoResponse marks an acks=0 Produce: the broker never replies, and
	// HandleProduceResponse reports success for it without parsing or
	// stamping anything.
	FlagNoResponse
	// FlagFlash marks a high-priority request (Metadata, ApiVersion,
	// SaslHandshake). This package only sets the bit; DefaultTransport does
	// not read it.
	FlagFlash
)

// HandlerFunc is the per-API response handler invoked on the broker thread
// once a response (or local failure) for a RequestRecord arrives. body is
// nil when err is a local failure that never produced a wire response.
type HandlerFunc func(ctx *DispatchContext, req *RequestRecord, err KError, body []byte)

// RequestRecord is the in-flight request object: built by a caller
// thread, exclusively owned by the broker thread while in flight, and
// returned to the dispatcher on response. A Retry re-enqueues the same
// identity as a fresh request rather than re-entering the original
// handler.
type RequestRecord struct {
	ApiKey     int16
	ApiVersion int16
	Features   FeatureFlags
	Body       []byte
	Reply      ReplyQueueHandle
	Handler    HandlerFunc
	Cookie     interface{}
	Retries    int
	Flags      RequestFlags
	Deadline   time.Time
	MsgQueue   *ProduceQueue // only set for Produce requests

	// reason is retained for debug trace lines ("OffsetRequest failed: …").
	reason string

	// onReply, if set, fires exactly once, through Complete, when the
	// record reaches a terminal outcome; a scheduled retry leaves it
	// pending. Used by the coalescing guard to decrement its counter.
	onReply func()
}

func (r *RequestRecord) isBlocking() bool { return r.Flags&FlagBlocking != 0 }
func (r *RequestRecord) isNoResponse() bool { return r.Flags&FlagNoResponse != 0 }
func (r *RequestRecord) isFlash() bool { return r.Flags&FlagFlash != 0 }

// HasRetriesLeft reports whether the retry driver may still schedule
// another attempt for this record.
func (r *RequestRecord) HasRetriesLeft() bool {
	return r != nil && r.Retries > 0
}

// Complete runs the record's onReply hook (if any) exactly once; it fires
// when the record reaches a terminal outcome — success, a terminal error,
// deadline expiry, or Destroy. A scheduled retry leaves the hook pending so
// it fires on the retry's own response instead.
func (r *RequestRecord) Complete() {
	if r.onReply != nil {
		hook := r.onReply
		r.onReply = nil
		hook()
	}
}

// FeatureFlags is the bitmask of optional wire features a negotiated
// ApiVersion demands, e.g. FeatureOffsetTime for Offset v1's timestamp+offset
// reply shape.
type FeatureFlags int

const (
	FeatureOffsetTime FeatureFlags = 1 << iota
	FeatureThrottleTime
	FeatureLogAppendTime
	FeatureTaggedFields
)
