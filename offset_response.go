package kprotocol

// OffsetResponseBlock is one partition's result in a ListOffsets reply.
// Offsets holds every value returned (v0 can return several per the
// MaxNumOffsets request field); v1 always returns exactly one.
type OffsetResponseBlock struct {
	Err       KError
	Timestamp int64 // v1 only; -1 if unknown
	Offsets   []int64
}

// OffsetResponse groups result blocks by topic then partition, tolerating
// broker reordering relative to the request and partitions the caller never
// asked about.
type OffsetResponse struct {
	Version int16
	Blocks  map[string]map[int32]*OffsetResponseBlock
}

func (r *OffsetResponse) key() int16 { return ApiKeyOffset }
func (r *OffsetResponse) version() int16 { return r.Version }
func (r *OffsetResponse) setVersion(v int16) { r.Version = v }
func (r *OffsetResponse) headerVersion() int16 { return 0 }

// GetBlock returns the parsed block for (topic, partition), or nil if the
// broker didn't include it.
func (r *OffsetResponse) GetBlock(topic string, partition int32) *OffsetResponseBlock {
	if r.Blocks == nil {
		return nil
	}
	if p, ok := r.Blocks[topic]; ok {
		return p[partition]
	}
	return nil
}

func (r *OffsetResponse) encode(pe packetEncoder) error {
	topicCnt := pe.putArrayCount()
	n := 0
	for topic, parts := range r.Blocks {
		if err := pe.putString(topic); err != nil {
			return err
		}
		partCnt := pe.putArrayCount()
		for partition, b := range parts {
			pe.putInt32(partition)
			pe.putInt16(int16(b.Err))
			if r.Version >= 1 {
				pe.putInt64(b.Timestamp)
				offset := int64(-1)
				if len(b.Offsets) > 0 {
					offset = b.Offsets[0]
				}
				pe.putInt64(offset)
			} else {
				if err := pe.putArrayLength(len(b.Offsets)); err != nil {
					return err
				}
				for _, off := range b.Offsets {
					pe.putInt64(off)
				}
			}
		}
		if err := pe.updateArrayCount(partCnt, int32(len(parts))); err != nil {
			return err
		}
		n++
	}
	return pe.updateArrayCount(topicCnt, int32(n))
}

func (r *OffsetResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Blocks = make(map[string]map[int32]*OffsetResponseBlock, topicCnt)
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		parts := make(map[int32]*OffsetResponseBlock, partCnt)
		for j := 0; j < partCnt; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			errCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			b := &OffsetResponseBlock{Err: KError(errCode)}
			if version >= 1 {
				if b.Timestamp, err = pd.getInt64(); err != nil {
					return err
				}
				offset, err := pd.getInt64()
				if err != nil {
					return err
				}
				b.Offsets = []int64{offset}
			} else {
				offCnt, err := pd.getArrayLength()
				if err != nil {
					return err
				}
				b.Offsets = make([]int64, offCnt)
				for k := 0; k < offCnt; k++ {
					if b.Offsets[k], err = pd.getInt64(); err != nil {
						return err
					}
				}
			}
			parts[partition] = b
		}
		r.Blocks[topic] = parts
	}
	return nil
}

func parseOffsetResponse(body []byte, version int16, logger Logger) (*OffsetResponse, KError) {
	resp := &OffsetResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugTopic); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}
