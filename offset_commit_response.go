package kprotocol

// OffsetCommitResponse carries a per-partition error code for each commit
// attempted.
type OffsetCommitResponse struct {
	Version int16
	Errors  map[string]map[int32]KError
}

func (r *OffsetCommitResponse) key() int16 { return ApiKeyOffsetCommit }
func (r *OffsetCommitResponse) version() int16 { return r.Version }
func (r *OffsetCommitResponse) setVersion(v int16) { r.Version = v }
func (r *OffsetCommitResponse) headerVersion() int16 { return 0 }

func (r *OffsetCommitResponse) encode(pe packetEncoder) error {
	topicCnt := pe.putArrayCount()
	n := 0
	for topic, parts := range r.Errors {
		if err := pe.putString(topic); err != nil {
			return err
		}
		partCnt := pe.putArrayCount()
		for partition, code := range parts {
			pe.putInt32(partition)
			pe.putInt16(int16(code))
		}
		if err := pe.updateArrayCount(partCnt, int32(len(parts))); err != nil {
			return err
		}
		n++
	}
	return pe.updateArrayCount(topicCnt, int32(n))
}

func (r *OffsetCommitResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Errors = make(map[string]map[int32]KError, topicCnt)
	for i := 0; i < topicCnt; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		parts := make(map[int32]KError, partCnt)
		for j := 0; j < partCnt; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			code, err := pd.getInt16()
			if err != nil {
				return err
			}
			parts[partition] = KError(code)
		}
		r.Errors[topic] = parts
	}
	return nil
}

func parseOffsetCommitResponse(body []byte, version int16, logger Logger) (*OffsetCommitResponse, KError) {
	resp := &OffsetCommitResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// offsetCommitOverrides: UNKNOWN_MEMBER_ID
// is Refresh|Retry (re-query, no Special); NOT_COORDINATOR_FOR_GROUP is
// Refresh|Special|Retry (coordinator marked dead).
var offsetCommitOverrides = []ActionOverride{
	{Err: ErrUnknownMemberID, Action: ActionRefresh | ActionRetry},
	{Err: ErrNotCoordinatorForGroup, Action: ActionRefresh | ActionSpecial | ActionRetry},
	{Err: ErrGroupCoordinatorNotAvailable, Action: ActionRefresh | ActionRetry},
	{Err: ErrIllegalGeneration, Action: ActionPermanent},
	{Err: ErrRebalanceInProgress, Action: ActionRetry},
}

// HandleOffsetCommitResponse dispatches OffsetCommit replies,
// using the worst per-partition action across the whole response the same
// way Offset's handler does: an all-partition UNKNOWN_MEMBER_ID re-queries
// the coordinator, NOT_COORDINATOR_FOR_GROUP marks it dead first. When the
// top-level result is success but a partition failed, the returned error is
// a failing partition's code; which one is not defined when partitions fail
// with different codes.
func HandleOffsetCommitResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*OffsetCommitResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseOffsetCommitResponse(b, version, dc.Logger)
	}

	refresh := func(dc *DispatchContext, actions Action, err KError) {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, err, "OffsetCommitRequest failed: "+err.Error())
	}

	result, err, inProgress := dispatchWithWorstBlockAction(dc, "OffsetCommit", req, apiErr, body, parse, offsetCommitOverrides, refresh, func(r interface{}) []KError {
		resp, ok := r.(*OffsetCommitResponse)
		if !ok || resp == nil {
			return nil
		}
		var codes []KError
		for _, parts := range resp.Errors {
			for _, code := range parts {
				if code != ErrNoError {
					codes = append(codes, code)
				}
			}
		}
		return codes
	})
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*OffsetCommitResponse)
	if err == ErrNoError && resp != nil {
		for _, parts := range resp.Errors {
			for _, code := range parts {
				if code != ErrNoError && err == ErrNoError {
					err = code
				}
			}
		}
	}
	return resp, err, false
}
