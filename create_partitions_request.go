package kprotocol

import "time"

// PartitionAssignment pins the new partitions' replica sets; nil lets the
// broker choose.
type PartitionAssignment struct {
	Replicas []int32
}

type TopicPartitionCount struct {
	Topic       string
	Count       int32
	Assignments []PartitionAssignment
}

type CreatePartitionsRequest struct {
	Version      int16
	Topics       []TopicPartitionCount
	TimeoutMs    int32
	ValidateOnly bool
}

func (r *CreatePartitionsRequest) key() int16 { return ApiKeyCreatePartitions }
func (r *CreatePartitionsRequest) version() int16 { return r.Version }
func (r *CreatePartitionsRequest) setVersion(v int16) { r.Version = v }
func (r *CreatePartitionsRequest) headerVersion() int16 { return 0 }
func (r *CreatePartitionsRequest) isValidVersion() bool { return r.Version == 0 }

func (r *CreatePartitionsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Topic); err != nil {
			return err
		}
		pe.putInt32(t.Count)
		if err := pe.putArrayLength(len(t.Assignments)); err != nil {
			return err
		}
		for _, a := range t.Assignments {
			if err := pe.putArrayLength(len(a.Replicas)); err != nil {
				return err
			}
			for _, r := range a.Replicas {
				pe.putInt32(r)
			}
		}
	}
	pe.putInt32(r.TimeoutMs)
	pe.putBool(r.ValidateOnly)
	return nil
}

func (r *CreatePartitionsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]TopicPartitionCount, n)
	for i := 0; i < n; i++ {
		t := &r.Topics[i]
		if t.Topic, err = pd.getString(); err != nil {
			return err
		}
		if t.Count, err = pd.getInt32(); err != nil {
			return err
		}
		assignCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.Assignments = make([]PartitionAssignment, assignCnt)
		for j := 0; j < assignCnt; j++ {
			replicaCnt, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			a := &t.Assignments[j]
			a.Replicas = make([]int32, replicaCnt)
			for k := 0; k < replicaCnt; k++ {
				if a.Replicas[k], err = pd.getInt32(); err != nil {
					return err
				}
			}
		}
	}
	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	if r.ValidateOnly, err = pd.getBool(); err != nil {
		return err
	}
	return nil
}

func buildCreatePartitionsRequest(n *Negotiator, cfg *Config, topics []TopicPartitionCount, operationTimeout time.Duration, validateOnly bool, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyCreatePartitions)
	version, features, ok := n.Negotiate(ApiKeyCreatePartitions, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyCreatePartitions)
	}
	if err := checkAdminPreconditions(ApiKeyCreatePartitions, len(topics), "CreatePartitions"); err != nil {
		return nil, err
	}

	req := &CreatePartitionsRequest{
		Version:      version,
		Topics:       topics,
		TimeoutMs:    adminTimeoutMillis(operationTimeout),
		ValidateOnly: validateOnly,
	}
	body, err := encodeRequestBody(req, 32*len(topics))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyCreatePartitions,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   operationDeadline(cfg, operationTimeout),
	}, nil
}
