package kprotocol

type DeleteTopicsTopicResult struct {
	Topic string
	Err   KError
}

type DeleteTopicsResponse struct {
	Version      int16
	ThrottleTime int32 // v1+
	Topics       []DeleteTopicsTopicResult
}

func (r *DeleteTopicsResponse) key() int16 { return ApiKeyDeleteTopics }
func (r *DeleteTopicsResponse) version() int16 { return r.Version }
func (r *DeleteTopicsResponse) setVersion(v int16) { r.Version = v }
func (r *DeleteTopicsResponse) headerVersion() int16 { return 0 }

func (r *DeleteTopicsResponse) encode(pe packetEncoder) error {
	if r.Version >= 1 {
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
	}
	return nil
}

func (r *DeleteTopicsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	if version >= 1 {
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
	r.Topics = make([]DeleteTopicsTopicResult, n)
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
	}
	return nil
}

func parseDeleteTopicsResponse(body []byte, version int16, logger Logger) (*DeleteTopicsResponse, KError) {
	resp := &DeleteTopicsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugTopic); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

func HandleDeleteTopicsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*DeleteTopicsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseDeleteTopicsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "DeleteTopics", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*DeleteTopicsResponse)
	return resp, err, false
}
