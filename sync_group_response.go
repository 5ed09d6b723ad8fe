package kprotocol

// SyncGroupResponse carries the caller's own computed assignment, spliced
// out of the MemberAssignment bytes the same way the request spliced them
// in.
type SyncGroupResponse struct {
	Version    int16
	Err        KError
	Assignment MemberAssignment
}

func (r *SyncGroupResponse) key() int16 { return ApiKeySyncGroup }
func (r *SyncGroupResponse) version() int16 { return r.Version }
func (r *SyncGroupResponse) setVersion(v int16) { r.Version = v }
func (r *SyncGroupResponse) headerVersion() int16 { return 0 }

func (r *SyncGroupResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	payload, err := encodeMemberState(r.Assignment)
	if err != nil {
		return err
	}
	return pe.putBytes(payload)
}

func (r *SyncGroupResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)

	raw, err := pd.getBytes()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	r.Assignment, err = decodeMemberState(raw)
	return err
}

func parseSyncGroupResponse(body []byte, version int16, logger Logger) (*SyncGroupResponse, KError) {
	resp := &SyncGroupResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

var syncGroupOverrides = []ActionOverride{
	{Err: ErrNotCoordinatorForGroup, Action: ActionRefresh | ActionSpecial},
	{Err: ErrGroupCoordinatorNotAvailable, Action: ActionRefresh},
	{Err: ErrRebalanceInProgress, Action: ActionRefresh},
	{Err: ErrUnknownMemberID, Action: ActionRefresh},
	{Err: ErrIllegalGeneration, Action: ActionRefresh},
}

// HandleSyncGroupResponse dispatches SyncGroup replies and enforces
// the obsolescence invariant: when the cgrp's join-state is no longer
// WaitSync, the response is discarded without parsing the body or touching
// group state at all.
func HandleSyncGroupResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*SyncGroupResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}
	if dc.Coordinator != nil && dc.Coordinator.JoinState() != JoinStateWaitSync {
		return nil, ErrNoError, false
	}

	var result *SyncGroupResponse
	err := apiErr

	if err == ErrNoError && body != nil {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		var decodeErr KError
		result, decodeErr = parseSyncGroupResponse(body, version, dc.Logger)
		if decodeErr != ErrNoError {
			err = decodeErr
		}
	}

	actions := ClassifyWithLog(dc.Logger, dc.Channel, "SyncGroup", err, syncGroupOverrides, req != nil)
	if actions&ActionRefresh != 0 {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, err, "SyncGroupRequest failed: "+err.Error())
	}

	return result, err, false
}
