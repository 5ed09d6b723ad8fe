package kprotocol

import "sort"

// OffsetFetchRequest is the request body: group-id, topic-grouped partition
// ids. Partitions whose in-memory offset is already valid (neither the
// "invalid" nor "stored" sentinel, i.e. the caller already knows it) are
// skipped; if every partition is skipped, no request is sent at all — the
// caller dispatches a synthetic success reply locally instead.
type OffsetFetchRequest struct {
	Version    int16
	Group      string
	partitions map[string][]int32
}

func (r *OffsetFetchRequest) key() int16 { return ApiKeyOffsetFetch }
func (r *OffsetFetchRequest) version() int16 { return r.Version }
func (r *OffsetFetchRequest) setVersion(v int16) { r.Version = v }
func (r *OffsetFetchRequest) headerVersion() int16 { return 0 }
func (r *OffsetFetchRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 1 }

// AddPartition registers a partition to fetch the committed offset for.
func (r *OffsetFetchRequest) AddPartition(topic string, partition int32) {
	if r.partitions == nil {
		r.partitions = make(map[string][]int32)
	}
	r.partitions[topic] = append(r.partitions[topic], partition)
}

func (r *OffsetFetchRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.Group); err != nil {
		return err
	}
	topics := sortedTopicKeys(r.partitions)
	if err := pe.putArrayLength(len(topics)); err != nil {
		return err
	}
	for _, topic := range topics {
		if err := pe.putString(topic); err != nil {
			return err
		}
		parts := r.partitions[topic]
		if err := pe.putArrayLength(len(parts)); err != nil {
			return err
		}
		for _, p := range parts {
			pe.putInt32(p)
		}
	}
	return nil
}

func (r *OffsetFetchRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.Group, err = pd.getString(); err != nil {
		return err
	}
	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.partitions = make(map[string][]int32, topicCnt)
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		parts := make([]int32, partCnt)
		for j := 0; j < partCnt; j++ {
			if parts[j], err = pd.getInt32(); err != nil {
				return err
			}
		}
		r.partitions[topic] = parts
	}
	return nil
}

// RequestedPartitionCommitted is the caller's view of a (topic,partition)'s
// current in-memory offset, used to decide whether it must be asked for.
type RequestedPartitionCommitted struct {
	Topic     string
	Partition int32
	Current   int64
}

// buildOffsetFetchRequest implements the skip logic and empty-request
// short-circuit. It returns (nil request, synthetic blocks, nil error) when
// nothing needs to be fetched; the caller (dispatcher glue) then posts the
// synthetic success reply itself instead of calling transport.Send.
func buildOffsetFetchRequest(n *Negotiator, cfg *Config, group string, wanted []RequestedPartitionCommitted, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, map[string]map[int32]*OffsetResponseBlock, error) {
	req := &OffsetFetchRequest{Group: group}
	synthetic := make(map[string]map[int32]*OffsetResponseBlock)

	for _, w := range wanted {
		if w.Current != OffsetInvalid && w.Current != OffsetStored {
			// Already known; skip asking the broker, but still surface it
			// in the synthetic reply so callers see every partition they
			// asked about.
			if synthetic[w.Topic] == nil {
				synthetic[w.Topic] = make(map[int32]*OffsetResponseBlock)
			}
			synthetic[w.Topic][w.Partition] = &OffsetResponseBlock{Err: ErrNoError, Offsets: []int64{w.Current}}
			continue
		}
		req.AddPartition(w.Topic, w.Partition)
	}

	if req.partitions == nil {
		return nil, synthetic, nil
	}

	pref := cfg.preference(ApiKeyOffsetFetch)
	version, features, ok := n.Negotiate(ApiKeyOffsetFetch, pref.Min, pref.Max)
	if !ok {
		return nil, nil, errUnsupportedFeature(ApiKeyOffsetFetch)
	}
	req.Version = version

	capHint := 2 + len(group) + 4
	for topic, parts := range req.partitions {
		capHint += 2 + len(topic) + 4 + len(parts)*4
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyOffsetFetch,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Retries:    3,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, synthetic, nil
}

func sortedTopicKeys(m map[string][]int32) []string {
	topics := make([]string, 0, len(m))
	for t := range m {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}
