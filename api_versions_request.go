package kprotocol

// ApiVersionsRequest has an empty v0 body; it is the one request this layer
// builds without consulting a Negotiator, since its whole purpose is to
// produce the BrokerApiVersions map a Negotiator is built from.
type ApiVersionsRequest struct {
	Version int16
}

func (r *ApiVersionsRequest) key() int16 { return ApiKeyApiVersions }
func (r *ApiVersionsRequest) version() int16 { return r.Version }
func (r *ApiVersionsRequest) setVersion(v int16) { r.Version = v }
func (r *ApiVersionsRequest) headerVersion() int16 { return 0 }
func (r *ApiVersionsRequest) isValidVersion() bool { return r.Version == 0 }

func (r *ApiVersionsRequest) encode(pe packetEncoder) error { return nil }

func (r *ApiVersionsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	return nil
}

// buildApiVersionsRequest is always v0 and is marked flash-priority: it gates
// every other request to a freshly connected broker.
func buildApiVersionsRequest(cfg *Config, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	req := &ApiVersionsRequest{Version: 0}
	body, err := encodeRequestBody(req, 0)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyApiVersions,
		ApiVersion: 0,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Flags:      FlagFlash,
		Deadline:   apiVersionDeadline(cfg),
	}, nil
}
