package kprotocol

import "time"

// produceCookie is what buildProduceRequest stashes on RequestRecord.Cookie
// so HandleProduceResponse can stamp/requeue the original messages without
// re-parsing its own request body back off the wire.
type produceCookie struct {
	Topic      string
	Partition  int32
	Messages   []*ProducerMessage
	Codec      CompressionCodec
	UserCookie interface{}
}

// HandleProduceResponse is the Produce-specialized dispatcher: on a
// retryable failure the batch is prepended back onto MsgQueue, with the
// per-message retry count incremented only when the attempt may have
// reached the broker (a queue timeout never left the client, so it costs
// nothing against the budget); on a terminal failure the messages are
// handed back for delivery-report purposes, with timeout codes translated
// to ErrMsgTimedOut; on success, offsets/timestamps are stamped either on
// every message or only the last one depending on cfg.ProduceOffsetReport.
//
// It returns the (possibly translated) terminal messages plus the overall
// error; a nil slice with inProgress true means a retry was scheduled and
// the caller must not report anything yet.
func HandleProduceResponse(dc *DispatchContext, cfg *Config, req *RequestRecord, apiErr KError, body []byte) ([]*ProducerMessage, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		// Teardown: the batch is freed silently, with no delivery report,
		// requeue, or refresh.
		return nil, ErrDestroy, false
	}
	if req == nil {
		return nil, apiErr, false
	}
	if req.isNoResponse() {
		// acks=0: the broker never replies, so success is reported without
		// parsing, without stamping offsets and without returning the
		// messages.
		return nil, ErrNoError, false
	}

	cookie, _ := req.Cookie.(produceCookie)

	// The generic Dispatch flow would re-enqueue the record without the
	// Produce-specific bookkeeping (counter bumps, queue prepend), so parse
	// and classify inline instead.
	var resp *ProduceResponse
	err := apiErr
	if err == ErrNoError && body != nil {
		resp, err = parseProduceResponse(body, req.ApiVersion, dc.Logger)
	}
	if resp != nil && err == ErrNoError {
		err = resp.worstPartitionError()
	}

	actions := ClassifyWithLog(dc.Logger, dc.Channel, "Produce", err, nil, true)

	if actions&ActionRefresh != 0 && dc.Refresher != nil {
		dc.Refresher.RefreshTopics("produce failed: "+err.Error(), []string{cookie.Topic})
	}

	if actions&ActionRetry != 0 && req.MsgQueue != nil && MaybeRetry(dc.Transport, req, actions) {
		// The attempt counts against each message's retry budget only if it
		// may have reached the broker: a queue timeout means the request was
		// never sent, so the messages go back on the queue unscathed.
		if err != ErrTimedOutQueue {
			for _, m := range cookie.Messages {
				m.retries++
				m.flags |= msgFlagRetriedTransport
			}
		}
		req.MsgQueue.Prepend(cookie.Messages)
		return nil, ErrInProgress, true
	}

	if err != ErrNoError {
		for _, m := range cookie.Messages {
			m.Offset = -1
		}
		final := err
		switch err {
		case ErrTimedOut, ErrTimedOutQueue, ErrRequestTimedOut:
			final = ErrMsgTimedOut
		}
		return cookie.Messages, final, false
	}

	stampSuccessfulBatch(cookie.Messages, resp, cfg.ProduceOffsetReport)
	return cookie.Messages, ErrNoError, false
}

// stampSuccessfulBatch writes broker-assigned offsets back to the batch: the
// broker returns one base offset (and, on v2, one log-append timestamp) for
// the whole batch; per-message offsets are base+index. ProduceOffsetReport
// selects whether every message gets its own stamp or only the last one in
// the batch does.
func stampSuccessfulBatch(msgs []*ProducerMessage, resp *ProduceResponse, reportAll bool) {
	if resp == nil || len(msgs) == 0 {
		return
	}
	var base int64 = -1
	var ts int64
	for _, t := range resp.Topics {
		for _, p := range t.Partitions {
			base = p.Offset
			ts = p.Timestamp
		}
	}
	if base < 0 {
		return
	}

	stamp := func(m *ProducerMessage, offset int64) {
		m.Offset = offset
		if ts > 0 {
			m.Timestamp = time.UnixMilli(ts)
		}
	}

	if reportAll {
		for i, m := range msgs {
			stamp(m, base+int64(i))
		}
		return
	}
	last := msgs[len(msgs)-1]
	stamp(last, base+int64(len(msgs)-1))
}
