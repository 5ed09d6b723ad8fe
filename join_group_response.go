package kprotocol

// JoinGroupMember is one group member's subscription metadata, present only
// in the reply delivered to the member elected leader.
type JoinGroupMember struct {
	MemberID string
	Metadata []byte
}

// JoinGroupResponse is the read side of JoinGroupRequest.
type JoinGroupResponse struct {
	Version       int16
	Err           KError
	GenerationID  int32
	GroupProtocol string
	LeaderID      string
	MemberID      string
	Members       []JoinGroupMember
}

func (r *JoinGroupResponse) key() int16 { return ApiKeyJoinGroup }
func (r *JoinGroupResponse) version() int16 { return r.Version }
func (r *JoinGroupResponse) setVersion(v int16) { r.Version = v }
func (r *JoinGroupResponse) headerVersion() int16 { return 0 }

// IsLeader reports whether this client was elected the group leader for
// this generation (responsible for computing and sending SyncGroup's
// assignment).
func (r *JoinGroupResponse) IsLeader() bool {
	return r.LeaderID == r.MemberID
}

func (r *JoinGroupResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	pe.putInt32(r.GenerationID)
	if err := pe.putString(r.GroupProtocol); err != nil {
		return err
	}
	if err := pe.putString(r.LeaderID); err != nil {
		return err
	}
	if err := pe.putString(r.MemberID); err != nil {
		return err
	}
	if err := pe.putArrayLength(len(r.Members)); err != nil {
		return err
	}
	for _, m := range r.Members {
		if err := pe.putString(m.MemberID); err != nil {
			return err
		}
		if err := pe.putBytes(m.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func (r *JoinGroupResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)

	if r.GenerationID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.GroupProtocol, err = pd.getString(); err != nil {
		return err
	}
	if r.LeaderID, err = pd.getString(); err != nil {
		return err
	}
	if r.MemberID, err = pd.getString(); err != nil {
		return err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Members = make([]JoinGroupMember, n)
	for i := 0; i < n; i++ {
		if r.Members[i].MemberID, err = pd.getString(); err != nil {
			return err
		}
		if r.Members[i].Metadata, err = pd.getBytes(); err != nil {
			return err
		}
	}
	return nil
}

func parseJoinGroupResponse(body []byte, version int16, logger Logger) (*JoinGroupResponse, KError) {
	resp := &JoinGroupResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

var joinGroupOverrides = []ActionOverride{
	{Err: ErrNotCoordinatorForGroup, Action: ActionRefresh | ActionSpecial},
	{Err: ErrGroupCoordinatorNotAvailable, Action: ActionRefresh},
	{Err: ErrUnknownMemberID, Action: ActionRefresh},
	{Err: ErrInconsistentGroupProtocol, Action: ActionPermanent},
	{Err: ErrInvalidSessionTimeout, Action: ActionPermanent},
}

// HandleJoinGroupResponse dispatches JoinGroup replies. JoinGroup never
// retries through the generic retry driver (a rebalance supersedes rather
// than resubmits), so it reports the classified actions to the caller
// instead of invoking MaybeRetry itself.
func HandleJoinGroupResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*JoinGroupResponse, KError, Action) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, 0
	}

	var result *JoinGroupResponse
	err := apiErr

	if err == ErrNoError && body != nil {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		var decodeErr KError
		result, decodeErr = parseJoinGroupResponse(body, version, dc.Logger)
		if decodeErr != ErrNoError {
			err = decodeErr
		}
	}

	actions := ClassifyWithLog(dc.Logger, dc.Channel, "JoinGroup", err, joinGroupOverrides, req != nil)
	if actions&ActionRefresh != 0 {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, err, "JoinGroupRequest failed: "+err.Error())
	}

	return result, err, actions
}
