package kprotocol

// GroupProtocol is one (protocol-name, metadata-bytes) entry an enabled
// assignor contributes to JoinGroup.
type GroupProtocol struct {
	Name     string
	Metadata []byte
}

// JoinGroupRequest is the request body: group-id, session timeout, member
// id, protocol type, and the array of assignor protocols. Marked blocking;
// absolute deadline = session_timeout_ms + 3s grace.
type JoinGroupRequest struct {
	Version        int16
	Group          string
	SessionTimeout int32
	MemberID       string
	ProtocolType   string
	Protocols      []GroupProtocol
}

func (r *JoinGroupRequest) key() int16 { return ApiKeyJoinGroup }
func (r *JoinGroupRequest) version() int16 { return r.Version }
func (r *JoinGroupRequest) setVersion(v int16) { r.Version = v }
func (r *JoinGroupRequest) headerVersion() int16 { return 0 }
func (r *JoinGroupRequest) isValidVersion() bool { return r.Version == 0 }

func (r *JoinGroupRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.Group); err != nil {
		return err
	}
	pe.putInt32(r.SessionTimeout)
	if err := pe.putString(r.MemberID); err != nil {
		return err
	}
	if err := pe.putString(r.ProtocolType); err != nil {
		return err
	}
	if err := pe.putArrayLength(len(r.Protocols)); err != nil {
		return err
	}
	for _, p := range r.Protocols {
		if err := pe.putString(p.Name); err != nil {
			return err
		}
		if err := pe.putBytes(p.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func (r *JoinGroupRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.Group, err = pd.getString(); err != nil {
		return err
	}
	if r.SessionTimeout, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MemberID, err = pd.getString(); err != nil {
		return err
	}
	if r.ProtocolType, err = pd.getString(); err != nil {
		return err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Protocols = make([]GroupProtocol, n)
	for i := 0; i < n; i++ {
		if r.Protocols[i].Name, err = pd.getString(); err != nil {
			return err
		}
		if r.Protocols[i].Metadata, err = pd.getBytes(); err != nil {
			return err
		}
	}
	return nil
}

// buildJoinGroupRequest runs every enabled assignor to contribute its
// membership metadata, then builds the blocking request.
func buildJoinGroupRequest(n *Negotiator, cfg *Config, group, memberID, protocolType string, topics []string, userData []byte, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyJoinGroup)
	version, features, ok := n.Negotiate(ApiKeyJoinGroup, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyJoinGroup)
	}

	protocols := make([]GroupProtocol, 0, len(cfg.EnabledAssignors))
	for _, name := range cfg.EnabledAssignors {
		assignor, ok := knownAssignors[name]
		if !ok {
			return nil, unknownAssignorError(name)
		}
		meta, err := assignor.Metadata(topics, userData)
		if err != nil {
			return nil, err
		}
		protocols = append(protocols, GroupProtocol{Name: assignor.Name(), Metadata: meta})
	}

	req := &JoinGroupRequest{
		Version:        version,
		Group:          group,
		SessionTimeout: int32(cfg.GroupSessionTimeout.Milliseconds()),
		MemberID:       memberID,
		ProtocolType:   protocolType,
		Protocols:      protocols,
	}

	capHint := 2 + len(group) + 4 + 2 + len(memberID) + 2 + len(protocolType) + 4
	for _, p := range protocols {
		capHint += 2 + len(p.Name) + 4 + len(p.Metadata)
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyJoinGroup,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Flags:      FlagBlocking,
		Deadline:   blockingDeadline(cfg),
	}, nil
}
