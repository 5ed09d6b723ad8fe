package kprotocol

type EndTxnResponse struct {
	Version      int16
	ThrottleTime int32
	Err          KError
}

func (r *EndTxnResponse) key() int16 { return ApiKeyEndTxn }
func (r *EndTxnResponse) version() int16 { return r.Version }
func (r *EndTxnResponse) setVersion(v int16) { r.Version = v }
func (r *EndTxnResponse) headerVersion() int16 { return 0 }

func (r *EndTxnResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTime)
	pe.putInt16(int16(r.Err))
	return nil
}

func (r *EndTxnResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	tt, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = tt
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)
	return nil
}

func parseEndTxnResponse(body []byte, version int16, logger Logger) (*EndTxnResponse, KError) {
	resp := &EndTxnResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugMsg); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// endTxnOverrides: NotCoordinator maps to Refresh+Special (the coordinator
// is marked dead, which triggers its rediscovery),
// CoordinatorLoadInProgress to a plain Retry.
var endTxnOverrides = []ActionOverride{
	{Err: ErrNotCoordinator, Action: ActionRefresh | ActionSpecial},
	{Err: ErrCoordinatorLoadInProgress, Action: ActionRetry},
}

func HandleEndTxnResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*EndTxnResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		resp, err := parseEndTxnResponse(b, version, dc.Logger)
		if err != ErrNoError {
			return resp, err
		}
		if resp.Err != ErrNoError {
			return resp, resp.Err
		}
		return resp, ErrNoError
	}
	result, err, inProgress := Dispatch(dc, "EndTxn", req, apiErr, body, parse, endTxnOverrides, func(dc *DispatchContext, actions Action, e KError) {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, e, "end txn: "+e.Error())
	})
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*EndTxnResponse)
	return resp, err, false
}
