package kprotocol

// EndTxnRequest commits or aborts the transaction identified by
// TransactionalID/ProducerID/ProducerEpoch.
type EndTxnRequest struct {
	Version         int16
	TransactionalID string
	ProducerID      int64
	ProducerEpoch   int16
	Committed       bool
}

func (r *EndTxnRequest) key() int16 { return ApiKeyEndTxn }
func (r *EndTxnRequest) version() int16 { return r.Version }
func (r *EndTxnRequest) setVersion(v int16) { r.Version = v }
func (r *EndTxnRequest) headerVersion() int16 { return 0 }
func (r *EndTxnRequest) isValidVersion() bool { return r.Version == 0 }

func (r *EndTxnRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.TransactionalID); err != nil {
		return err
	}
	pe.putInt64(r.ProducerID)
	pe.putInt16(r.ProducerEpoch)
	pe.putBool(r.Committed)
	return nil
}

func (r *EndTxnRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	id, err := pd.getString()
	if err != nil {
		return err
	}
	r.TransactionalID = id
	if r.ProducerID, err = pd.getInt64(); err != nil {
		return err
	}
	if r.ProducerEpoch, err = pd.getInt16(); err != nil {
		return err
	}
	if r.Committed, err = pd.getBool(); err != nil {
		return err
	}
	return nil
}

func buildEndTxnRequest(n *Negotiator, cfg *Config, transactionalID string, producerID int64, producerEpoch int16, committed bool, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyEndTxn)
	version, features, ok := n.Negotiate(ApiKeyEndTxn, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyEndTxn)
	}

	req := &EndTxnRequest{
		Version:         version,
		TransactionalID: transactionalID,
		ProducerID:      producerID,
		ProducerEpoch:   producerEpoch,
		Committed:       committed,
	}
	body, err := encodeRequestBody(req, 32+len(transactionalID))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyEndTxn,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Retries:    1,
		Deadline:   deadlineFromSocketTimeout(cfg),
	}, nil
}
