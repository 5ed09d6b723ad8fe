package kprotocol

type CreatePartitionsTopicResult struct {
	Topic        string
	Err          KError
	ErrorMessage *string
}

type CreatePartitionsResponse struct {
	Version      int16
	ThrottleTime int32
	Topics       []CreatePartitionsTopicResult
}

func (r *CreatePartitionsResponse) key() int16 { return ApiKeyCreatePartitions }
func (r *CreatePartitionsResponse) version() int16 { return r.Version }
func (r *CreatePartitionsResponse) setVersion(v int16) { r.Version = v }
func (r *CreatePartitionsResponse) headerVersion() int16 { return 0 }

func (r *CreatePartitionsResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTime)
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Topic); err != nil {
			return err
		}
		pe.putInt16(int16(t.Err))
		if err := pe.putNullableString(t.ErrorMessage); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreatePartitionsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	tt, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.ThrottleTime = tt

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]CreatePartitionsTopicResult, n)
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
		if t.ErrorMessage, err = pd.getNullableString(); err != nil {
			return err
		}
	}
	return nil
}

func parseCreatePartitionsResponse(body []byte, version int16, logger Logger) (*CreatePartitionsResponse, KError) {
	resp := &CreatePartitionsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugTopic); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

func HandleCreatePartitionsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*CreatePartitionsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseCreatePartitionsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "CreatePartitions", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*CreatePartitionsResponse)
	return resp, err, false
}
