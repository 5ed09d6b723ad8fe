package kprotocol

// ListGroupsRequest has no body fields.
type ListGroupsRequest struct {
	Version int16
}

func (r *ListGroupsRequest) key() int16 { return ApiKeyListGroups }
func (r *ListGroupsRequest) version() int16 { return r.Version }
func (r *ListGroupsRequest) setVersion(v int16) { r.Version = v }
func (r *ListGroupsRequest) headerVersion() int16 { return 0 }
func (r *ListGroupsRequest) isValidVersion() bool { return r.Version == 0 }

func (r *ListGroupsRequest) encode(pe packetEncoder) error { return nil }

func (r *ListGroupsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	return nil
}

func buildListGroupsRequest(n *Negotiator, cfg *Config, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyListGroups)
	version, features, ok := n.Negotiate(ApiKeyListGroups, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyListGroups)
	}

	req := &ListGroupsRequest{Version: version}
	body, err := encodeRequestBody(req, 0)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyListGroups,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
