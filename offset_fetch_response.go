package kprotocol

// OffsetFetchResponse groups per-partition committed-offset results by
// topic, tolerating broker reordering and unrequested partitions.
// Metadata mirrors the empty-string substitution OffsetCommit performs on
// the way out, so round-tripping an empty string back never surfaces as a
// null.
type OffsetFetchResponse struct {
	Version int16
	Blocks  map[string]map[int32]*OffsetFetchResponseBlock
}

type OffsetFetchResponseBlock struct {
	Offset   int64
	Metadata string
	Err      KError
}

func (r *OffsetFetchResponse) key() int16 { return ApiKeyOffsetFetch }
func (r *OffsetFetchResponse) version() int16 { return r.Version }
func (r *OffsetFetchResponse) setVersion(v int16) { r.Version = v }
func (r *OffsetFetchResponse) headerVersion() int16 { return 0 }

func (r *OffsetFetchResponse) GetBlock(topic string, partition int32) *OffsetFetchResponseBlock {
	if r.Blocks == nil {
		return nil
	}
	if p, ok := r.Blocks[topic]; ok {
		return p[partition]
	}
	return nil
}

func (r *OffsetFetchResponse) encode(pe packetEncoder) error {
	topicCnt := pe.putArrayCount()
	n := 0
	for topic, parts := range r.Blocks {
		if err := pe.putString(topic); err != nil {
			return err
		}
		partCnt := pe.putArrayCount()
		for partition, b := range parts {
			pe.putInt32(partition)
			pe.putInt64(b.Offset)
			if err := pe.putString(b.Metadata); err != nil {
				return err
			}
			pe.putInt16(int16(b.Err))
		}
		if err := pe.updateArrayCount(partCnt, int32(len(parts))); err != nil {
			return err
		}
		n++
	}
	return pe.updateArrayCount(topicCnt, int32(n))
}

func (r *OffsetFetchResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Blocks = make(map[string]map[int32]*OffsetFetchResponseBlock, topicCnt)
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		parts := make(map[int32]*OffsetFetchResponseBlock, partCnt)
		for j := 0; j < partCnt; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			b := &OffsetFetchResponseBlock{}
			if b.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if b.Metadata, err = pd.getString(); err != nil {
				return err
			}
			errCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			b.Err = KError(errCode)
			parts[partition] = b
		}
		r.Blocks[topic] = parts
	}
	return nil
}

func parseOffsetFetchResponse(body []byte, version int16, logger Logger) (*OffsetFetchResponse, KError) {
	resp := &OffsetFetchResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// HandleOffsetFetchResponse dispatches OffsetFetch replies:
// on top of the general shape, when updateToppar is set it writes the
// parsed offset into each partition's committed-offset slot under that
// partition's lock before delivery.
func HandleOffsetFetchResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte, registry TopicPartitionRegistry, updateToppar bool) (*OffsetFetchResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseOffsetFetchResponse(b, version, dc.Logger)
	}

	refresh := func(dc *DispatchContext, actions Action, err KError) {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, err, "OffsetFetchRequest failed: "+err.Error())
	}

	result, err, inProgress := Dispatch(dc, "OffsetFetch", req, apiErr, body, parse, offsetFetchOverrides, refresh)
	if inProgress {
		return nil, ErrInProgress, true
	}

	resp, _ := result.(*OffsetFetchResponse)
	if resp != nil && updateToppar && registry != nil {
		for topic, parts := range resp.Blocks {
			for partition, b := range parts {
				if b.Err != ErrNoError {
					continue
				}
				if tp := registry.Lookup(topic, partition); tp != nil {
					tp.SetCommittedOffset(b.Offset)
				}
			}
		}
	}

	return resp, err, false
}

// DeliverSyntheticOffsetFetch builds the locally-dispatched success reply
// for the empty-request short-circuit: no bytes were
// sent, so the caller's already-known offsets are echoed back unchanged.
func DeliverSyntheticOffsetFetch(synthetic map[string]map[int32]*OffsetResponseBlock) *OffsetFetchResponse {
	resp := &OffsetFetchResponse{Blocks: make(map[string]map[int32]*OffsetFetchResponseBlock, len(synthetic))}
	for topic, parts := range synthetic {
		out := make(map[int32]*OffsetFetchResponseBlock, len(parts))
		for partition, b := range parts {
			offset := OffsetInvalid
			if len(b.Offsets) > 0 {
				offset = b.Offsets[0]
			}
			out[partition] = &OffsetFetchResponseBlock{Offset: offset, Err: ErrNoError}
		}
		resp.Blocks[topic] = out
	}
	return resp
}

var offsetFetchOverrides = []ActionOverride{
	{Err: ErrNotCoordinatorForGroup, Action: ActionRefresh | ActionSpecial | ActionRetry},
	{Err: ErrGroupCoordinatorNotAvailable, Action: ActionRefresh | ActionRetry},
	{Err: ErrGroupLoadInProgress, Action: ActionRetry},
}
