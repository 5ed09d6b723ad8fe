package kprotocol

// HeartbeatResponse is a bare top-level error code.
type HeartbeatResponse struct {
	Version int16
	Err     KError
}

func (r *HeartbeatResponse) key() int16 { return ApiKeyHeartbeat }
func (r *HeartbeatResponse) version() int16 { return r.Version }
func (r *HeartbeatResponse) setVersion(v int16) { r.Version = v }
func (r *HeartbeatResponse) headerVersion() int16 { return 0 }

func (r *HeartbeatResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	return nil
}

func (r *HeartbeatResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)
	return nil
}

func parseHeartbeatResponse(body []byte, version int16, logger Logger) (*HeartbeatResponse, KError) {
	resp := &HeartbeatResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

var heartbeatOverrides = []ActionOverride{
	{Err: ErrNotCoordinatorForGroup, Action: ActionRefresh | ActionSpecial},
	{Err: ErrGroupCoordinatorNotAvailable, Action: ActionRefresh},
	{Err: ErrRebalanceInProgress, Action: ActionRefresh},
	{Err: ErrUnknownMemberID, Action: ActionRefresh},
	{Err: ErrIllegalGeneration, Action: ActionRefresh},
}

// HandleHeartbeatResponse dispatches Heartbeat replies: no retry driver
// involvement (a missed heartbeat just means the next tick tries again),
// but Refresh still drives coordinator rediscovery.
func HandleHeartbeatResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*HeartbeatResponse, KError) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy
	}

	var result *HeartbeatResponse
	err := apiErr

	if err == ErrNoError && body != nil {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		var decodeErr KError
		result, decodeErr = parseHeartbeatResponse(body, version, dc.Logger)
		if decodeErr != ErrNoError {
			err = decodeErr
		} else if result.Err != ErrNoError {
			err = result.Err
		}
	}

	actions := ClassifyWithLog(dc.Logger, dc.Channel, "Heartbeat", err, heartbeatOverrides, req != nil)
	if actions&ActionRefresh != 0 {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, err, "HeartbeatRequest failed: "+err.Error())
	}

	return result, err
}
