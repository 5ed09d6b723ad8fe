package kprotocol

type AlterConfigsResourceResult struct {
	Err          KError
	ErrorMessage *string
	Type         ConfigResourceType
	Name         string
}

type AlterConfigsResponse struct {
	Version      int16
	ThrottleTime int32
	Resources    []AlterConfigsResourceResult
}

func (r *AlterConfigsResponse) key() int16 { return ApiKeyAlterConfigs }
func (r *AlterConfigsResponse) version() int16 { return r.Version }
func (r *AlterConfigsResponse) setVersion(v int16) { r.Version = v }
func (r *AlterConfigsResponse) headerVersion() int16 { return 0 }

func (r *AlterConfigsResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTime)
	if err := pe.putArrayLength(len(r.Resources)); err != nil {
		return err
	}
	for _, res := range r.Resources {
		pe.putInt16(int16(res.Err))
		if err := pe.putNullableString(res.ErrorMessage); err != nil {
			return err
		}
		pe.putInt8(int8(res.Type))
		if err := pe.putString(res.Name); err != nil {
			return err
		}
	}
	return nil
}

func (r *AlterConfigsResponse) decode(pd packetDecoder, version int16) error {
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
	r.Resources = make([]AlterConfigsResourceResult, n)
	for i := 0; i < n; i++ {
		res := &r.Resources[i]
		errCode, err := pd.getInt16()
		if err != nil {
			return err
		}
		res.Err = KError(errCode)
		if res.ErrorMessage, err = pd.getNullableString(); err != nil {
			return err
		}
		t, err := pd.getInt8()
		if err != nil {
			return err
		}
		res.Type = ConfigResourceType(t)
		if res.Name, err = pd.getString(); err != nil {
			return err
		}
	}
	return nil
}

func parseAlterConfigsResponse(body []byte, version int16, logger Logger) (*AlterConfigsResponse, KError) {
	resp := &AlterConfigsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugTopic); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

func HandleAlterConfigsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*AlterConfigsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseAlterConfigsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "AlterConfigs", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*AlterConfigsResponse)
	return resp, err, false
}
