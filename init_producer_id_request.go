package kprotocol

// InitProducerIDRequest is v0 only in this layer: it bootstraps a
// producer id/epoch pair before the first Produce when idempotence is
// configured. TransactionalID is empty for the plain idempotent-only case.
type InitProducerIDRequest struct {
	Version              int16
	TransactionalID      *string
	TransactionTimeoutMs int32
}

func (r *InitProducerIDRequest) key() int16 { return ApiKeyInitProducerID }
func (r *InitProducerIDRequest) version() int16 { return r.Version }
func (r *InitProducerIDRequest) setVersion(v int16) { r.Version = v }
func (r *InitProducerIDRequest) headerVersion() int16 { return 0 }
func (r *InitProducerIDRequest) isValidVersion() bool { return r.Version == 0 }

func (r *InitProducerIDRequest) encode(pe packetEncoder) error {
	if err := pe.putNullableString(r.TransactionalID); err != nil {
		return err
	}
	pe.putInt32(r.TransactionTimeoutMs)
	return nil
}

func (r *InitProducerIDRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	txnID, err := pd.getNullableString()
	if err != nil {
		return err
	}
	r.TransactionalID = txnID
	if r.TransactionTimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	return nil
}

// buildInitProducerIDRequest negotiates this API the same way every other
// builder does, rather than hardcoding v0 the way SaslHandshake does,
// since a broker could in principle advertise a narrower range.
func buildInitProducerIDRequest(n *Negotiator, cfg *Config, transactionalID *string, transactionTimeout int32, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyInitProducerID)
	version, features, ok := n.Negotiate(ApiKeyInitProducerID, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyInitProducerID)
	}

	req := &InitProducerIDRequest{Version: version, TransactionalID: transactionalID, TransactionTimeoutMs: transactionTimeout}
	body, err := encodeRequestBody(req, 32)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyInitProducerID,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
