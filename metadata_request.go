package kprotocol

// MetadataRequest is the request body. Its topic list encoding has three
// modes: nil Topics (brokers-only, v>=1), empty-but-non-nil Topics (all
// topics), non-empty Topics (specific topics). Marked flash-priority.
type MetadataRequest struct {
	Version int16
	Topics  []string // nil = brokers only (v>=1); non-nil empty = all topics
}

func (r *MetadataRequest) key() int16 { return ApiKeyMetadata }
func (r *MetadataRequest) version() int16 { return r.Version }
func (r *MetadataRequest) setVersion(v int16) { r.Version = v }
func (r *MetadataRequest) headerVersion() int16 { return 0 }
func (r *MetadataRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 2 }

// IsBrokersOnly reports the "null" mode of the topic-list trichotomy; only
// valid for v>=1 (v0 has no null encoding for "all topics").
func (r *MetadataRequest) IsBrokersOnly() bool { return r.Topics == nil && r.Version >= 1 }

// IsAllTopics reports the "empty" mode: Topics is non-nil but has zero
// elements.
func (r *MetadataRequest) IsAllTopics() bool { return r.Topics != nil && len(r.Topics) == 0 }

func (r *MetadataRequest) encode(pe packetEncoder) error {
	if r.Topics == nil {
		if r.Version < 1 {
			// v0 has no null-array encoding; degrade to "all topics".
			return pe.putArrayLength(0)
		}
		pe.putInt32(-1)
		return nil
	}
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *MetadataRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if n == 0 {
		// getArrayLength folds a -1 (null) wire count to 0, same as every
		// other count in this decoder; IsBrokersOnly vs IsAllTopics
		// can't be distinguished after decode without the raw length, which
		// is fine: this layer only ever decodes its own encoded requests in
		// tests, never a peer's.
		r.Topics = []string{}
		return nil
	}
	r.Topics = make([]string, n)
	for i := 0; i < n; i++ {
		if r.Topics[i], err = pd.getString(); err != nil {
			return err
		}
	}
	return nil
}

// buildMetadataRequest assembles a Metadata request, applying the
// coalescing guard for the two full-request modes. forced bypasses the
// guard (application-initiated full refresh). Specific-topic requests
// bypass the guard entirely.
func buildMetadataRequest(n *Negotiator, cfg *Config, coalesce *MetadataCoalesce, topics []string, forced bool, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyMetadata)
	version, features, ok := n.Negotiate(ApiKeyMetadata, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyMetadata)
	}

	req := &MetadataRequest{Version: version}
	var decr func()
	switch {
	case topics == nil:
		req.Topics = nil
		if coalesce != nil {
			d, kerr := coalesce.Begin(CoalesceFullBrokers, forced)
			if kerr != ErrNoError {
				return nil, kerr
			}
			decr = d
		}
	case len(topics) == 0:
		req.Topics = []string{}
		if coalesce != nil {
			d, kerr := coalesce.Begin(CoalesceFullTopics, forced)
			if kerr != ErrNoError {
				return nil, kerr
			}
			decr = d
		}
	default:
		req.Topics = topics
	}

	body, err := encodeRequestBody(req, 4+32*len(topics))
	if err != nil {
		if decr != nil {
			decr()
		}
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyMetadata,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Flags:      FlagFlash,
		Retries:    3,
		Deadline:   deadlineFromSocketTimeout(cfg),
		onReply:    decr,
	}, nil
}
