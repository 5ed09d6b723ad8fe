package kprotocol

import "sort"

// OffsetCommitRequestBlock is one partition's commit: offset, an optional
// v1 commit timestamp, and metadata. Partitions with a negative offset are
// skipped by the builder.
type OffsetCommitRequestBlock struct {
	Offset    int64
	Timestamp int64 // v1 only
	Metadata  string
}

// OffsetCommitRequest is the request body: group-id; v>=1 adds generation
// and member id; v2 adds retention (always -1, the broker default);
// per-partition metadata substitutes "" for nil so old brokers/clients
// aren't handed a null string.
type OffsetCommitRequest struct {
	Version       int16
	Group         string
	GenerationID  int32  // v1+
	MemberID      string // v1+
	RetentionTime int64  // v2+, always -1 (broker default)

	blocks map[string]map[int32]*OffsetCommitRequestBlock
}

func (r *OffsetCommitRequest) key() int16 { return ApiKeyOffsetCommit }
func (r *OffsetCommitRequest) version() int16 { return r.Version }
func (r *OffsetCommitRequest) setVersion(v int16) { r.Version = v }
func (r *OffsetCommitRequest) headerVersion() int16 { return 0 }
func (r *OffsetCommitRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 2 }

// AddBlock registers a commit for (topic, partition). Negative offsets are
// dropped at build time, not here, so callers can inspect what was asked.
func (r *OffsetCommitRequest) AddBlock(topic string, partition int32, offset int64, timestamp int64, metadata string) {
	if r.blocks == nil {
		r.blocks = make(map[string]map[int32]*OffsetCommitRequestBlock)
	}
	if r.blocks[topic] == nil {
		r.blocks[topic] = make(map[int32]*OffsetCommitRequestBlock)
	}
	r.blocks[topic][partition] = &OffsetCommitRequestBlock{Offset: offset, Timestamp: timestamp, Metadata: metadata}
}

func (r *OffsetCommitRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.Group); err != nil {
		return err
	}
	if r.Version >= 1 {
		pe.putInt32(r.GenerationID)
		if err := pe.putString(r.MemberID); err != nil {
			return err
		}
	}
	if r.Version >= 2 {
		pe.putInt64(r.RetentionTime)
	}

	topics := make([]string, 0, len(r.blocks))
	for t := range r.blocks {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	if err := pe.putArrayLength(len(topics)); err != nil {
		return err
	}
	for _, topic := range topics {
		if err := pe.putString(topic); err != nil {
			return err
		}
		parts := r.blocks[topic]
		partKeys := make([]int32, 0, len(parts))
		for p := range parts {
			partKeys = append(partKeys, p)
		}
		sort.Slice(partKeys, func(i, j int) bool { return partKeys[i] < partKeys[j] })

		if err := pe.putArrayLength(len(partKeys)); err != nil {
			return err
		}
		for _, p := range partKeys {
			b := parts[p]
			pe.putInt32(p)
			pe.putInt64(b.Offset)
			if r.Version == 1 {
				pe.putInt64(b.Timestamp)
			}
			if err := pe.putString(b.Metadata); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *OffsetCommitRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.Group, err = pd.getString(); err != nil {
		return err
	}
	if version >= 1 {
		if r.GenerationID, err = pd.getInt32(); err != nil {
			return err
		}
		if r.MemberID, err = pd.getString(); err != nil {
			return err
		}
	}
	if version >= 2 {
		if r.RetentionTime, err = pd.getInt64(); err != nil {
			return err
		}
	}

	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.blocks = make(map[string]map[int32]*OffsetCommitRequestBlock, topicCnt)
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		parts := make(map[int32]*OffsetCommitRequestBlock, partCnt)
		for j := 0; j < partCnt; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			b := &OffsetCommitRequestBlock{}
			if b.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if version == 1 {
				if b.Timestamp, err = pd.getInt64(); err != nil {
					return err
				}
			}
			if b.Metadata, err = pd.getString(); err != nil {
				return err
			}
			parts[partition] = b
		}
		r.blocks[topic] = parts
	}
	return nil
}

// buildOffsetCommitRequest implements the negative-offset skip and the
// empty-request short-circuit: if nothing remains after skipping, it
// returns (nil, nil) and the caller returns "not sent" without invoking the
// handler.
func buildOffsetCommitRequest(n *Negotiator, cfg *Config, group string, generationID int32, memberID string, wanted []struct {
	Topic     string
	Partition int32
	Offset    int64
	Metadata  string
}, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyOffsetCommit)
	version, features, ok := n.Negotiate(ApiKeyOffsetCommit, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyOffsetCommit)
	}

	req := &OffsetCommitRequest{Version: version, Group: group, GenerationID: generationID, MemberID: memberID, RetentionTime: -1}
	for _, w := range wanted {
		if w.Offset < 0 {
			continue
		}
		// v1's per-partition commit timestamp is always -1 (broker default),
		// matching the retention-time handling above.
		req.AddBlock(w.Topic, w.Partition, w.Offset, -1, w.Metadata)
	}
	if req.blocks == nil {
		return nil, nil
	}

	capHint := 2 + len(group) + 16
	for topic, parts := range req.blocks {
		capHint += 2 + len(topic) + 4 + len(parts)*24
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyOffsetCommit,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Retries:    3,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
