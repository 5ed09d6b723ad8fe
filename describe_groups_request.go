package kprotocol

// DescribeGroupsRequest is an array of group ids to describe.
type DescribeGroupsRequest struct {
	Version int16
	Groups  []string
}

func (r *DescribeGroupsRequest) key() int16 { return ApiKeyDescribeGroups }
func (r *DescribeGroupsRequest) version() int16 { return r.Version }
func (r *DescribeGroupsRequest) setVersion(v int16) { r.Version = v }
func (r *DescribeGroupsRequest) headerVersion() int16 { return 0 }
func (r *DescribeGroupsRequest) isValidVersion() bool { return r.Version == 0 }

func (r *DescribeGroupsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Groups)); err != nil {
		return err
	}
	for _, g := range r.Groups {
		if err := pe.putString(g); err != nil {
			return err
		}
	}
	return nil
}

func (r *DescribeGroupsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Groups = make([]string, n)
	for i := 0; i < n; i++ {
		if r.Groups[i], err = pd.getString(); err != nil {
			return err
		}
	}
	return nil
}

func buildDescribeGroupsRequest(n *Negotiator, cfg *Config, groups []string, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyDescribeGroups)
	version, features, ok := n.Negotiate(ApiKeyDescribeGroups, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyDescribeGroups)
	}

	req := &DescribeGroupsRequest{Version: version, Groups: groups}
	capHint := 4
	for _, g := range groups {
		capHint += 2 + len(g)
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyDescribeGroups,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
