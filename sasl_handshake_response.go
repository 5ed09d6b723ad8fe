package kprotocol

// SaslHandshakeResponse echoes the broker's supported mechanism list on
// ErrUnsupportedSaslMechanism so a caller can report what would have worked.
type SaslHandshakeResponse struct {
	Version           int16
	Err               KError
	EnabledMechanisms []string
}

func (r *SaslHandshakeResponse) key() int16 { return ApiKeySaslHandshake }
func (r *SaslHandshakeResponse) version() int16 { return r.Version }
func (r *SaslHandshakeResponse) setVersion(v int16) { r.Version = v }
func (r *SaslHandshakeResponse) headerVersion() int16 { return 0 }

func (r *SaslHandshakeResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	if err := pe.putArrayLength(len(r.EnabledMechanisms)); err != nil {
		return err
	}
	for _, m := range r.EnabledMechanisms {
		if err := pe.putString(m); err != nil {
			return err
		}
	}
	return nil
}

func (r *SaslHandshakeResponse) decode(pd packetDecoder, version int16) error {
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
	r.EnabledMechanisms = make([]string, n)
	for i := 0; i < n; i++ {
		if r.EnabledMechanisms[i], err = pd.getString(); err != nil {
			return err
		}
	}
	return nil
}

func parseSaslHandshakeResponse(body []byte, logger Logger) (*SaslHandshakeResponse, KError) {
	resp := &SaslHandshakeResponse{}
	if err := decodeResponseBody(resp, body, 0, logger, DebugFeature); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// HandleSaslHandshakeResponse never triggers a metadata refresh: a handshake
// failure is a connection-setup problem, not a leadership or coordinator one.
func HandleSaslHandshakeResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*SaslHandshakeResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		return parseSaslHandshakeResponse(b, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "SaslHandshake", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*SaslHandshakeResponse)
	return resp, err, false
}
