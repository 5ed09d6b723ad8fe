package kprotocol

// MetadataBroker is one broker entry in a Metadata reply.
type MetadataBroker struct {
	NodeID int32
	Host   string
	Port   int32
}

// PartitionMetadata is one partition's leadership/replica state.
type PartitionMetadata struct {
	Err      KError
	ID       int32
	Leader   int32
	Replicas []int32
	Isr      []int32
}

// TopicMetadata is one topic's error plus partition list, tolerating
// per-partition errors distinct from the topic-level one.
type TopicMetadata struct {
	Err        KError
	Name       string
	Partitions []PartitionMetadata
}

// MetadataResponse is the read side of MetadataRequest: v1+ adds a
// ControllerID field this layer surfaces but doesn't otherwise act on.
type MetadataResponse struct {
	Version      int16
	Brokers      []MetadataBroker
	ControllerID int32 // v1+
	Topics       []TopicMetadata
}

func (r *MetadataResponse) key() int16 { return ApiKeyMetadata }
func (r *MetadataResponse) version() int16 { return r.Version }
func (r *MetadataResponse) setVersion(v int16) { r.Version = v }
func (r *MetadataResponse) headerVersion() int16 { return 0 }

func (r *MetadataResponse) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Brokers)); err != nil {
		return err
	}
	for _, b := range r.Brokers {
		pe.putInt32(b.NodeID)
		if err := pe.putString(b.Host); err != nil {
			return err
		}
		pe.putInt32(b.Port)
	}
	if r.Version >= 1 {
		pe.putInt32(r.ControllerID)
	}
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		pe.putInt16(int16(t.Err))
		if err := pe.putString(t.Name); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(t.Partitions)); err != nil {
			return err
		}
		for _, p := range t.Partitions {
			pe.putInt16(int16(p.Err))
			pe.putInt32(p.ID)
			pe.putInt32(p.Leader)
			if err := pe.putArrayLength(len(p.Replicas)); err != nil {
				return err
			}
			for _, r := range p.Replicas {
				pe.putInt32(r)
			}
			if err := pe.putArrayLength(len(p.Isr)); err != nil {
				return err
			}
			for _, r := range p.Isr {
				pe.putInt32(r)
			}
		}
	}
	return nil
}

func (r *MetadataResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	brokerCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Brokers = make([]MetadataBroker, brokerCnt)
	for i := 0; i < brokerCnt; i++ {
		b := &r.Brokers[i]
		if b.NodeID, err = pd.getInt32(); err != nil {
			return err
		}
		if b.Host, err = pd.getString(); err != nil {
			return err
		}
		if b.Port, err = pd.getInt32(); err != nil {
			return err
		}
	}

	if version >= 1 {
		if r.ControllerID, err = pd.getInt32(); err != nil {
			return err
		}
	}

	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]TopicMetadata, topicCnt)
	for i := 0; i < topicCnt; i++ {
		t := &r.Topics[i]
		errCode, err := pd.getInt16()
		if err != nil {
			return err
		}
		t.Err = KError(errCode)
		if t.Name, err = pd.getString(); err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.Partitions = make([]PartitionMetadata, partCnt)
		for j := 0; j < partCnt; j++ {
			p := &t.Partitions[j]
			pErrCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			p.Err = KError(pErrCode)
			if p.ID, err = pd.getInt32(); err != nil {
				return err
			}
			if p.Leader, err = pd.getInt32(); err != nil {
				return err
			}
			replicaCnt, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			p.Replicas = make([]int32, replicaCnt)
			for k := 0; k < replicaCnt; k++ {
				if p.Replicas[k], err = pd.getInt32(); err != nil {
					return err
				}
			}
			isrCnt, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			p.Isr = make([]int32, isrCnt)
			for k := 0; k < isrCnt; k++ {
				if p.Isr[k], err = pd.getInt32(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseMetadataResponse(body []byte, version int16, logger Logger) (*MetadataResponse, KError) {
	resp := &MetadataResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugMetadata); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// HandleMetadataResponse dispatches Metadata replies, firing the coalescing
// decrement closure on both success and terminal failure by calling
// req.Complete; a scheduled retry keeps the record (and the counter) alive.
func HandleMetadataResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*MetadataResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		// Teardown is terminal: the coalescing decrement still owes its
		// firing (Complete is idempotent if the worker already ran it).
		if req != nil {
			req.Complete()
		}
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseMetadataResponse(b, version, dc.Logger)
	}

	refresh := func(dc *DispatchContext, actions Action, e KError) {
		if dc.Refresher != nil {
			dc.Refresher.RefreshAllTopics("metadata request failed: "+e.Error(), false)
		}
	}
	result, err, inProgress := Dispatch(dc, "Metadata", req, apiErr, body, parse, nil, refresh)
	if inProgress {
		// The record is still in flight on a scheduled retry: the
		// coalescing decrement fires when the retry's own response lands.
		return nil, ErrInProgress, true
	}
	if req != nil {
		req.Complete()
	}
	resp, _ := result.(*MetadataResponse)
	return resp, err, false
}
