package kprotocol

import "sort"

// OffsetRequestBlock is one partition's query within ListOffsets: the
// timestamp to search from (or a sentinel like -1/-2 for latest/earliest)
// and, for v0 only, how many offsets to return.
type OffsetRequestBlock struct {
	Time       int64
	MaxOffsets int32 // v0 only
}

// OffsetRequest is the ListOffsets request body: ReplicaId=-1, topics
// grouped via a single pass over a topic-sorted partition list, back-
// patching TopicArrayCnt/PartitionArrayCnt. v1 drops MaxNumOffsets (the
// client reads a single Timestamp+Offset pair back instead).
type OffsetRequest struct {
	Version   int16
	ReplicaID int32
	blocks    map[string]map[int32]*OffsetRequestBlock
}

func (r *OffsetRequest) key() int16 { return ApiKeyOffset }
func (r *OffsetRequest) version() int16 { return r.Version }
func (r *OffsetRequest) setVersion(v int16) { r.Version = v }
func (r *OffsetRequest) headerVersion() int16 { return 0 }
func (r *OffsetRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 1 }

// AddBlock registers a (topic, partition) query, overwriting any prior entry
// for the same pair.
func (r *OffsetRequest) AddBlock(topic string, partition int32, timestamp int64, maxOffsets int32) {
	if r.blocks == nil {
		r.blocks = make(map[string]map[int32]*OffsetRequestBlock)
	}
	if r.blocks[topic] == nil {
		r.blocks[topic] = make(map[int32]*OffsetRequestBlock)
	}
	r.blocks[topic][partition] = &OffsetRequestBlock{Time: timestamp, MaxOffsets: maxOffsets}
}

func (r *OffsetRequest) encode(pe packetEncoder) error {
	pe.putInt32(-1) // ReplicaId, always -1 from a client

	topics := sortedTopics(r.blocks)
	topicCnt := pe.putArrayCount()
	for _, topic := range topics {
		if err := pe.putString(topic); err != nil {
			return err
		}
		partitions := sortedPartitions(r.blocks[topic])
		partCnt := pe.putArrayCount()
		for _, p := range partitions {
			b := r.blocks[topic][p]
			pe.putInt32(p)
			pe.putInt64(b.Time)
			if r.Version == 0 {
				pe.putInt32(b.MaxOffsets)
			}
		}
		if err := pe.updateArrayCount(partCnt, int32(len(partitions))); err != nil {
			return err
		}
	}
	return pe.updateArrayCount(topicCnt, int32(len(topics)))
}

func (r *OffsetRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	var err error
	if r.ReplicaID, err = pd.getInt32(); err != nil {
		return err
	}

	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.blocks = make(map[string]map[int32]*OffsetRequestBlock, topicCnt)
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.blocks[topic] = make(map[int32]*OffsetRequestBlock, partCnt)
		for j := 0; j < partCnt; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			b := &OffsetRequestBlock{}
			if b.Time, err = pd.getInt64(); err != nil {
				return err
			}
			if version == 0 {
				if b.MaxOffsets, err = pd.getInt32(); err != nil {
					return err
				}
			}
			r.blocks[topic][partition] = b
		}
	}
	return nil
}

// sortedTopics/sortedPartitions give the "single pass over a topic-sorted
// partition list" deterministic iteration order the encoder needs, so repeated
// encodes of the same blocks produce identical bytes.
func sortedTopics(blocks map[string]map[int32]*OffsetRequestBlock) []string {
	topics := make([]string, 0, len(blocks))
	for t := range blocks {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

func sortedPartitions(blocks map[int32]*OffsetRequestBlock) []int32 {
	parts := make([]int32, 0, len(blocks))
	for p := range blocks {
		parts = append(parts, p)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })
	return parts
}

// buildOffsetRequest assembles a ListOffsets request record.
func buildOffsetRequest(n *Negotiator, cfg *Config, blocks map[string]map[int32]*OffsetRequestBlock, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyOffset)
	version, features, ok := n.Negotiate(ApiKeyOffset, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyOffset)
	}

	req := &OffsetRequest{Version: version, blocks: blocks}
	capHint := 4 + 4
	for topic, parts := range blocks {
		capHint += 2 + len(topic) + 4 + len(parts)*20
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyOffset,
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
