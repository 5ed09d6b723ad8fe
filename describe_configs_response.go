package kprotocol

type DescribeConfigsEntry struct {
	Name      string
	Value     string
	ReadOnly  bool
	IsDefault bool
	Sensitive bool
}

type DescribeConfigsResourceResult struct {
	Err          KError
	ErrorMessage *string
	Type         ConfigResourceType
	Name         string
	Entries      []DescribeConfigsEntry
}

type DescribeConfigsResponse struct {
	Version      int16
	ThrottleTime int32
	Resources    []DescribeConfigsResourceResult
}

func (r *DescribeConfigsResponse) key() int16 { return ApiKeyDescribeConfigs }
func (r *DescribeConfigsResponse) version() int16 { return r.Version }
func (r *DescribeConfigsResponse) setVersion(v int16) { r.Version = v }
func (r *DescribeConfigsResponse) headerVersion() int16 { return 0 }

func (r *DescribeConfigsResponse) encode(pe packetEncoder) error {
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
		if err := pe.putArrayLength(len(res.Entries)); err != nil {
			return err
		}
		for _, e := range res.Entries {
			if err := pe.putString(e.Name); err != nil {
				return err
			}
			if err := pe.putNullableString(&e.Value); err != nil {
				return err
			}
			pe.putBool(e.ReadOnly)
			pe.putBool(e.IsDefault)
			pe.putBool(e.Sensitive)
		}
	}
	return nil
}

func (r *DescribeConfigsResponse) decode(pd packetDecoder, version int16) error {
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
	r.Resources = make([]DescribeConfigsResourceResult, n)
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
		entryCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		res.Entries = make([]DescribeConfigsEntry, entryCnt)
		for j := 0; j < entryCnt; j++ {
			e := &res.Entries[j]
			if e.Name, err = pd.getString(); err != nil {
				return err
			}
			val, err := pd.getNullableString()
			if err != nil {
				return err
			}
			if val != nil {
				e.Value = *val
			}
			if e.ReadOnly, err = pd.getBool(); err != nil {
				return err
			}
			if e.IsDefault, err = pd.getBool(); err != nil {
				return err
			}
			if e.Sensitive, err = pd.getBool(); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseDescribeConfigsResponse(body []byte, version int16, logger Logger) (*DescribeConfigsResponse, KError) {
	resp := &DescribeConfigsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugTopic); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

func HandleDescribeConfigsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*DescribeConfigsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseDescribeConfigsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "DescribeConfigs", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*DescribeConfigsResponse)
	return resp, err, false
}
