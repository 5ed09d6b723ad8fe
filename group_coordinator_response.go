package kprotocol

// GroupCoordinatorResponse is the read side of GroupCoordinatorRequest: a
// top-level error plus the coordinator broker's id/host/port.
type GroupCoordinatorResponse struct {
	Version         int16
	Err             KError
	CoordinatorID   int32
	CoordinatorHost string
	CoordinatorPort int32
}

func (r *GroupCoordinatorResponse) setVersion(v int16) { r.Version = v }
func (r *GroupCoordinatorResponse) version() int16 { return r.Version }
func (r *GroupCoordinatorResponse) key() int16 { return ApiKeyGroupCoordinator }
func (r *GroupCoordinatorResponse) headerVersion() int16 { return 0 }

func (r *GroupCoordinatorResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	pe.putInt32(r.CoordinatorID)
	if err := pe.putString(r.CoordinatorHost); err != nil {
		return err
	}
	pe.putInt32(r.CoordinatorPort)
	return nil
}

func (r *GroupCoordinatorResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)

	if r.CoordinatorID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.CoordinatorHost, err = pd.getString(); err != nil {
		return err
	}
	r.CoordinatorPort, err = pd.getInt32()
	return err
}

// parseGroupCoordinatorResponse adapts decodeResponseBody to the ParseFunc
// shape Dispatch expects.
func parseGroupCoordinatorResponse(body []byte, version int16, logger Logger) (*GroupCoordinatorResponse, KError) {
	resp := &GroupCoordinatorResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// groupCoordinatorOverrides: the coordinator lookup itself retries while the
// group is loading or the coordinator isn't up yet; there is no coordinator
// to mark dead at this point, so no Special bit anywhere.
var groupCoordinatorOverrides = []ActionOverride{
	{Err: ErrGroupCoordinatorNotAvailable, Action: ActionRetry},
	{Err: ErrGroupLoadInProgress, Action: ActionRetry},
}

// HandleGroupCoordinatorResponse dispatches GroupCoordinator replies. A
// top-level broker error folds into the returned error so the caller sees
// one code, whether the lookup failed locally or was refused by the broker.
func HandleGroupCoordinatorResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*GroupCoordinatorResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		resp, err := parseGroupCoordinatorResponse(b, version, dc.Logger)
		if err != ErrNoError {
			return resp, err
		}
		if resp.Err != ErrNoError {
			return resp, resp.Err
		}
		return resp, ErrNoError
	}

	result, err, inProgress := Dispatch(dc, "GroupCoordinator", req, apiErr, body, parse, groupCoordinatorOverrides, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*GroupCoordinatorResponse)
	return resp, err, false
}
