package kprotocol

type InitProducerIDResponse struct {
	Version       int16
	ThrottleTime  int32
	Err           KError
	ProducerID    int64
	ProducerEpoch int16
}

func (r *InitProducerIDResponse) key() int16 { return ApiKeyInitProducerID }
func (r *InitProducerIDResponse) version() int16 { return r.Version }
func (r *InitProducerIDResponse) setVersion(v int16) { r.Version = v }
func (r *InitProducerIDResponse) headerVersion() int16 { return 0 }

func (r *InitProducerIDResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTime)
	pe.putInt16(int16(r.Err))
	pe.putInt64(r.ProducerID)
	pe.putInt16(r.ProducerEpoch)
	return nil
}

func (r *InitProducerIDResponse) decode(pd packetDecoder, version int16) error {
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
	if r.ProducerID, err = pd.getInt64(); err != nil {
		return err
	}
	if r.ProducerEpoch, err = pd.getInt16(); err != nil {
		return err
	}
	return nil
}

func parseInitProducerIDResponse(body []byte, version int16, logger Logger) (*InitProducerIDResponse, KError) {
	resp := &InitProducerIDResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugMsg); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// initProducerIDOverrides classifies InvalidProducerEpoch as
// Permanent|Inform (fencing by a newer producer instance is never
// retryable), CoordinatorLoadInProgress as a plain Retry, and
// CoordinatorNotAvailable as Refresh, which re-queries the coordinator.
var initProducerIDOverrides = []ActionOverride{
	{Err: ErrInvalidProducerEpoch, Action: ActionPermanent | ActionInform},
	{Err: ErrCoordinatorLoadInProgress, Action: ActionRetry},
	{Err: ErrCoordinatorNotAvailable, Action: ActionRefresh},
}

func HandleInitProducerIDResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*InitProducerIDResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		resp, err := parseInitProducerIDResponse(b, version, dc.Logger)
		if err != ErrNoError {
			return resp, err
		}
		if resp.Err != ErrNoError {
			return resp, resp.Err
		}
		return resp, ErrNoError
	}
	result, err, inProgress := Dispatch(dc, "InitProducerId", req, apiErr, body, parse, initProducerIDOverrides, func(dc *DispatchContext, actions Action, e KError) {
		TriggerCoordinatorRefresh(dc.Coordinator, actions, e, "init producer id: "+e.Error())
	})
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*InitProducerIDResponse)
	return resp, err, false
}
