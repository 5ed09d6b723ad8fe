package kprotocol

// ApiVersionKeyRange is one API key's advertised [min,max], as reported by a
// broker's ApiVersion reply.
type ApiVersionKeyRange struct {
	ApiKey     int16
	MinVersion int16
	MaxVersion int16
}

type ApiVersionsResponse struct {
	Version    int16
	Err        KError
	ApiVersion []ApiVersionKeyRange
}

func (r *ApiVersionsResponse) key() int16 { return ApiKeyApiVersions }
func (r *ApiVersionsResponse) version() int16 { return r.Version }
func (r *ApiVersionsResponse) setVersion(v int16) { r.Version = v }
func (r *ApiVersionsResponse) headerVersion() int16 { return 0 }

func (r *ApiVersionsResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	if err := pe.putArrayLength(len(r.ApiVersion)); err != nil {
		return err
	}
	for _, v := range r.ApiVersion {
		pe.putInt16(v.ApiKey)
		pe.putInt16(v.MinVersion)
		pe.putInt16(v.MaxVersion)
	}
	return nil
}

func (r *ApiVersionsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.ApiVersion = make([]ApiVersionKeyRange, n)
	for i := 0; i < n; i++ {
		v := &r.ApiVersion[i]
		if v.ApiKey, err = pd.getInt16(); err != nil {
			return err
		}
		if v.MinVersion, err = pd.getInt16(); err != nil {
			return err
		}
		if v.MaxVersion, err = pd.getInt16(); err != nil {
			return err
		}
	}
	return nil
}

func parseApiVersionsResponse(body []byte, logger Logger) (*ApiVersionsResponse, KError) {
	resp := &ApiVersionsResponse{}
	if err := decodeResponseBody(resp, body, 0, logger, DebugFeature); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// ToBrokerApiVersions converts a successful reply into the map a Negotiator
// consumes. Keys this layer doesn't recognize are kept anyway: a future
// broker might advertise a range for an API key this layer added later, and
// dropping unknown keys here would make that indistinguishable from the
// broker not supporting it at all.
func (r *ApiVersionsResponse) ToBrokerApiVersions() BrokerApiVersions {
	out := make(BrokerApiVersions, len(r.ApiVersion))
	for _, v := range r.ApiVersion {
		out[v.ApiKey] = apiVersionRange{Min: v.MinVersion, Max: v.MaxVersion}
	}
	return out
}

// HandleApiVersionsResponse feeds the version negotiator: on success it hands back the
// parsed BrokerApiVersions map so the caller can build this broker's
// Negotiator; it never triggers a refresh or retry of its own; a failure
// here means the caller falls back to the minimum version of every API,
// which is the caller's decision, not this layer's.
func HandleApiVersionsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (BrokerApiVersions, KError) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy
	}

	parse := func(b []byte) (interface{}, KError) {
		return parseApiVersionsResponse(b, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "ApiVersion", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress
	}
	if err != ErrNoError {
		return nil, err
	}
	resp, ok := result.(*ApiVersionsResponse)
	if !ok || resp == nil {
		return nil, ErrBadMsg
	}
	if resp.Err != ErrNoError {
		return nil, resp.Err
	}
	return resp.ToBrokerApiVersions(), ErrNoError
}
