package kprotocol

// ProducePartitionResponse is one partition's ack: offset/timestamp are only
// meaningful when Err is ErrNoError.
type ProducePartitionResponse struct {
	Partition int32
	Err       KError
	Offset    int64
	Timestamp int64 // v2+, FeatureLogAppendTime
}

type ProduceTopicResponse struct {
	Topic      string
	Partitions []ProducePartitionResponse
}

type ProduceResponse struct {
	Version      int16
	Topics       []ProduceTopicResponse
	ThrottleTime int32 // v1+, FeatureThrottleTime
}

func (r *ProduceResponse) key() int16 { return ApiKeyProduce }
func (r *ProduceResponse) version() int16 { return r.Version }
func (r *ProduceResponse) setVersion(v int16) { r.Version = v }
func (r *ProduceResponse) headerVersion() int16 { return 0 }

func (r *ProduceResponse) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(t.Partitions)); err != nil {
			return err
		}
		for _, p := range t.Partitions {
			pe.putInt32(p.Partition)
			pe.putInt16(int16(p.Err))
			pe.putInt64(p.Offset)
			if r.Version >= 2 {
				pe.putInt64(p.Timestamp)
			}
		}
	}
	if r.Version >= 1 {
		pe.putInt32(r.ThrottleTime)
	}
	return nil
}

func (r *ProduceResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	topicCnt, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]ProduceTopicResponse, topicCnt)
	for i := 0; i < topicCnt; i++ {
		t := &r.Topics[i]
		if t.Topic, err = pd.getString(); err != nil {
			return err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.Partitions = make([]ProducePartitionResponse, partCnt)
		for j := 0; j < partCnt; j++ {
			p := &t.Partitions[j]
			if p.Partition, err = pd.getInt32(); err != nil {
				return err
			}
			errCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			p.Err = KError(errCode)
			if p.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if version >= 2 {
				if p.Timestamp, err = pd.getInt64(); err != nil {
					return err
				}
			}
		}
	}
	if version >= 1 {
		if r.ThrottleTime, err = pd.getInt32(); err != nil {
			return err
		}
	}
	return nil
}

func parseProduceResponse(body []byte, version int16, logger Logger) (*ProduceResponse, KError) {
	resp := &ProduceResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugMsg); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// worstPartitionError picks the single error HandleProduceResponse
// classifies: the last non-success partition code in the response, or
// ErrNoError when every partition succeeded.
func (r *ProduceResponse) worstPartitionError() KError {
	worst := ErrNoError
	for _, t := range r.Topics {
		for _, p := range t.Partitions {
			if p.Err != ErrNoError {
				worst = p.Err
			}
		}
	}
	return worst
}
