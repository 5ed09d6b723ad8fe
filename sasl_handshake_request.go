package kprotocol

// SaslMechanism names a SASL mechanism string as advertised by
// sasl.mechanism in configuration and echoed on the wire.
type SaslMechanism string

const (
	SaslMechanismPlain       SaslMechanism = "PLAIN"
	SaslMechanismGSSAPI      SaslMechanism = "GSSAPI"
	SaslMechanismScramSHA256 SaslMechanism = "SCRAM-SHA-256"
	SaslMechanismScramSHA512 SaslMechanism = "SCRAM-SHA-512"
)

// SaslHandshakeRequest is v0 only; it precedes the mechanism's own
// challenge/response bytes, which this layer treats as an opaque blob
// produced by a SaslAuthenticator.
type SaslHandshakeRequest struct {
	Version   int16
	Mechanism SaslMechanism
}

func (r *SaslHandshakeRequest) key() int16 { return ApiKeySaslHandshake }
func (r *SaslHandshakeRequest) version() int16 { return r.Version }
func (r *SaslHandshakeRequest) setVersion(v int16) { r.Version = v }
func (r *SaslHandshakeRequest) headerVersion() int16 { return 0 }
func (r *SaslHandshakeRequest) isValidVersion() bool { return r.Version == 0 }

func (r *SaslHandshakeRequest) encode(pe packetEncoder) error {
	return pe.putString(string(r.Mechanism))
}

func (r *SaslHandshakeRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	m, err := pd.getString()
	if err != nil {
		return err
	}
	r.Mechanism = SaslMechanism(m)
	return nil
}

// buildSaslHandshakeRequest applies the 10s regression-mitigation
// deadline rule via saslHandshakeDeadline.
func buildSaslHandshakeRequest(cfg *Config, mechanism SaslMechanism, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	req := &SaslHandshakeRequest{Version: 0, Mechanism: mechanism}
	body, err := encodeRequestBody(req, 2+len(mechanism))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeySaslHandshake,
		ApiVersion: 0,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Flags:      FlagFlash,
		Deadline:   saslHandshakeDeadline(cfg),
	}, nil
}
