package kprotocol

import "time"

type DeleteTopicsRequest struct {
	Version   int16
	Topics    []string
	TimeoutMs int32
}

func (r *DeleteTopicsRequest) key() int16 { return ApiKeyDeleteTopics }
func (r *DeleteTopicsRequest) version() int16 { return r.Version }
func (r *DeleteTopicsRequest) setVersion(v int16) { r.Version = v }
func (r *DeleteTopicsRequest) headerVersion() int16 { return 0 }
func (r *DeleteTopicsRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 1 }

func (r *DeleteTopicsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t); err != nil {
			return err
		}
	}
	pe.putInt32(r.TimeoutMs)
	return nil
}

func (r *DeleteTopicsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]string, n)
	for i := 0; i < n; i++ {
		if r.Topics[i], err = pd.getString(); err != nil {
			return err
		}
	}
	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	return nil
}

func buildDeleteTopicsRequest(n *Negotiator, cfg *Config, topics []string, operationTimeout time.Duration, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyDeleteTopics)
	version, features, ok := n.Negotiate(ApiKeyDeleteTopics, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyDeleteTopics)
	}
	if err := checkAdminPreconditions(ApiKeyDeleteTopics, len(topics), "DeleteTopics"); err != nil {
		return nil, err
	}

	req := &DeleteTopicsRequest{Version: version, Topics: topics, TimeoutMs: adminTimeoutMillis(operationTimeout)}
	body, err := encodeRequestBody(req, 32*len(topics))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyDeleteTopics,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   operationDeadline(cfg, operationTimeout),
	}, nil
}
