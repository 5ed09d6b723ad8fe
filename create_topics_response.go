package kprotocol

// CreateTopicsTopicResult is one topic's outcome.
type CreateTopicsTopicResult struct {
	Topic        string
	Err          KError
	ErrorMessage *string // v1+
}

type CreateTopicsResponse struct {
	Version      int16
	ThrottleTime int32 // v2+
	Topics       []CreateTopicsTopicResult
}

func (r *CreateTopicsResponse) key() int16 { return ApiKeyCreateTopics }
func (r *CreateTopicsResponse) version() int16 { return r.Version }
func (r *CreateTopicsResponse) setVersion(v int16) { r.Version = v }
func (r *CreateTopicsResponse) headerVersion() int16 { return 0 }

func (r *CreateTopicsResponse) encode(pe packetEncoder) error {
	if r.Version >= 2 {
		pe.putInt32(r.ThrottleTime)
	}
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Topic); err != nil {
			return err
		}
		pe.putInt16(int16(t.Err))
		if r.Version >= 1 {
			if err := pe.putNullableString(t.ErrorMessage); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *CreateTopicsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	if version >= 2 {
		tt, err := pd.getInt32()
		if err != nil {
			return err
		}
		r.ThrottleTime = tt
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]CreateTopicsTopicResult, n)
	for i := 0; i < n; i++ {
		t := &r.Topics[i]
		if t.Topic, err = pd.getString(); err != nil {
			return err
		}
		errCode, err := pd.getInt16()
		if err != nil {
			return err
		}
		t.Err = KError(errCode)
		if version >= 1 {
			if t.ErrorMessage, err = pd.getNullableString(); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseCreateTopicsResponse(body []byte, version int16, logger Logger) (*CreateTopicsResponse, KError) {
	resp := &CreateTopicsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugTopic); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

func HandleCreateTopicsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*CreateTopicsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseCreateTopicsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "CreateTopics", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*CreateTopicsResponse)
	return resp, err, false
}
