package kprotocol

import "time"

// ProduceRequest is built via the external MessageSetCodec: this
// layer owns the topic/partition framing and RequiredAcks/Timeout fields,
// never the record-batch bytes themselves. One RequestRecord carries exactly
// one partition's batch, matching the per-partition transmit queue
// ProduceQueue models.
type ProduceRequest struct {
	Version      int16
	RequiredAcks int16
	Timeout      int32
	Topic        string
	Partition    int32
	Messages     []*ProducerMessage
	Codec        CompressionCodec
	codec        MessageSetCodec
}

func (r *ProduceRequest) key() int16 { return ApiKeyProduce }
func (r *ProduceRequest) version() int16 { return r.Version }
func (r *ProduceRequest) setVersion(v int16) { r.Version = v }
func (r *ProduceRequest) headerVersion() int16 { return 0 }
func (r *ProduceRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 2 }

func (r *ProduceRequest) encode(pe packetEncoder) error {
	pe.putInt16(r.RequiredAcks)
	pe.putInt32(r.Timeout)

	if err := pe.putArrayLength(1); err != nil {
		return err
	}
	if err := pe.putString(r.Topic); err != nil {
		return err
	}
	if err := pe.putArrayLength(1); err != nil {
		return err
	}
	pe.putInt32(r.Partition)
	sub := newRealEncoder(256)
	if err := r.codec.Encode(sub, r.Messages, r.Codec, r.Version); err != nil {
		return err
	}
	return pe.spliceSubBuffer(sub)
}

func (r *ProduceRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	acks, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.RequiredAcks = acks
	if r.Timeout, err = pd.getInt32(); err != nil {
		return err
	}

	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		for j := 0; j < partCnt; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			if _, err := pd.getBytes(); err != nil {
				return err
			}
			r.Topic = topic
			r.Partition = partition
		}
	}
	return nil
}

// produceDeadline bases the request deadline on the first message's
// remaining delivery timeout, floored at 100ms so a nearly-expired batch
// still gets one real attempt. Batches without message timeouts fall back
// to the socket-timeout ceiling.
func produceDeadline(cfg *Config, msgs []*ProducerMessage) time.Time {
	if len(msgs) == 0 || msgs[0].ExpiresAt.IsZero() {
		return deadlineFromSocketTimeout(cfg)
	}
	remaining := time.Until(msgs[0].ExpiresAt)
	if remaining < 100*time.Millisecond {
		remaining = 100 * time.Millisecond
	}
	return time.Now().Add(remaining)
}

// buildProduceRequest assembles a Produce request: RequiredAcks==0
// sets FlagNoResponse so the dispatcher never waits on a reply, and the
// built record carries queue as its MsgQueue for the handler's retry-prepend
// bookkeeping.
func buildProduceRequest(n *Negotiator, cfg *Config, codec MessageSetCodec, topic string, partition int32, msgs []*ProducerMessage, compression CompressionCodec, timeout int32, queue *ProduceQueue, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyProduce)
	version, features, ok := n.Negotiate(ApiKeyProduce, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyProduce)
	}

	req := &ProduceRequest{
		Version:      version,
		RequiredAcks: cfg.RequiredAcks,
		Timeout:      timeout,
		Topic:        topic,
		Partition:    partition,
		Messages:     msgs,
		Codec:        compression,
		codec:        codec,
	}

	capHint := 32
	for _, m := range msgs {
		capHint += len(m.Key) + len(m.Value) + 32
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, err
	}

	rec := &RequestRecord{
		ApiKey:     ApiKeyProduce,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie: produceCookie{
			Topic:      topic,
			Partition:  partition,
			Messages:   msgs,
			Codec:      compression,
			UserCookie: cookie,
		},
		Retries:  3,
		Deadline: produceDeadline(cfg, msgs),
		MsgQueue: queue,
	}
	if cfg.RequiredAcks == 0 {
		rec.Flags |= FlagNoResponse
	}
	return rec, nil
}
