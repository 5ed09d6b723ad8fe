package kprotocol

// GroupCoordinatorRequest asks a broker which broker currently coordinates
// a consumer group.
type GroupCoordinatorRequest struct {
	Version int16
	Group   string
}

func (r *GroupCoordinatorRequest) setVersion(v int16) { r.Version = v }
func (r *GroupCoordinatorRequest) version() int16 { return r.Version }
func (r *GroupCoordinatorRequest) key() int16 { return ApiKeyGroupCoordinator }
func (r *GroupCoordinatorRequest) headerVersion() int16 { return 0 }
func (r *GroupCoordinatorRequest) isValidVersion() bool { return r.Version == 0 }

func (r *GroupCoordinatorRequest) encode(pe packetEncoder) error {
	return pe.putString(r.Group)
}

func (r *GroupCoordinatorRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	r.Group, err = pd.getString()
	return err
}

// buildGroupCoordinatorRequest implements the B.1 constructor: pick
// ApiVersion via the negotiator, reserve a buffer sized for the group-id
// string, and stamp the request record.
func buildGroupCoordinatorRequest(n *Negotiator, cfg *Config, group string, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyGroupCoordinator)
	version, features, ok := n.Negotiate(ApiKeyGroupCoordinator, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyGroupCoordinator)
	}

	req := &GroupCoordinatorRequest{Version: version, Group: group}
	body, err := encodeRequestBody(req, 2+len(group))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyGroupCoordinator,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
