package kprotocol

// LeaveGroupRequest is the request body: group-id, member id.
type LeaveGroupRequest struct {
	Version  int16
	Group    string
	MemberID string
}

func (r *LeaveGroupRequest) key() int16 { return ApiKeyLeaveGroup }
func (r *LeaveGroupRequest) version() int16 { return r.Version }
func (r *LeaveGroupRequest) setVersion(v int16) { r.Version = v }
func (r *LeaveGroupRequest) headerVersion() int16 { return 0 }
func (r *LeaveGroupRequest) isValidVersion() bool { return r.Version == 0 }

func (r *LeaveGroupRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.Group); err != nil {
		return err
	}
	return pe.putString(r.MemberID)
}

func (r *LeaveGroupRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.Group, err = pd.getString(); err != nil {
		return err
	}
	r.MemberID, err = pd.getString()
	return err
}

func buildLeaveGroupRequest(n *Negotiator, cfg *Config, group, memberID string, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyLeaveGroup)
	version, features, ok := n.Negotiate(ApiKeyLeaveGroup, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyLeaveGroup)
	}

	req := &LeaveGroupRequest{Version: version, Group: group, MemberID: memberID}
	body, err := encodeRequestBody(req, 2+len(group)+2+len(memberID))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyLeaveGroup,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
