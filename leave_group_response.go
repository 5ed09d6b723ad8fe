package kprotocol

type LeaveGroupResponse struct {
	Version int16
	Err     KError
}

func (r *LeaveGroupResponse) key() int16 { return ApiKeyLeaveGroup }
func (r *LeaveGroupResponse) version() int16 { return r.Version }
func (r *LeaveGroupResponse) setVersion(v int16) { r.Version = v }
func (r *LeaveGroupResponse) headerVersion() int16 { return 0 }

func (r *LeaveGroupResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	return nil
}

func (r *LeaveGroupResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)
	return nil
}

func parseLeaveGroupResponse(body []byte, version int16, logger Logger) (*LeaveGroupResponse, KError) {
	resp := &LeaveGroupResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// HandleLeaveGroupResponse dispatches LeaveGroup replies: the caller is
// departing voluntarily, so only the top-level error is surfaced — no
// Refresh/Retry side effects make sense for a request whose purpose is to
// leave.
func HandleLeaveGroupResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*LeaveGroupResponse, KError) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy
	}

	if apiErr != ErrNoError || body == nil {
		return nil, apiErr
	}
	version := int16(0)
	if req != nil {
		version = req.ApiVersion
	}
	resp, decodeErr := parseLeaveGroupResponse(body, version, dc.Logger)
	if decodeErr != ErrNoError {
		return nil, decodeErr
	}
	return resp, ErrNoError
}
