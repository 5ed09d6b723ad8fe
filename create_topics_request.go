package kprotocol

import "time"

// TopicReplicaAssignment pins a partition to an explicit replica set,
// mutually exclusive with NumPartitions/ReplicationFactor on the wire (a
// topic spec supplies either an assignment map or the two counts, never
// both, matching CreateTopics' own schema).
type TopicReplicaAssignment struct {
	Partition int32
	Replicas  []int32
}

// TopicConfigEntry is one key/value pair in a topic's config overrides.
type TopicConfigEntry struct {
	Name  string
	Value string
}

// TopicSpec is one entry of a CreateTopics request.
type TopicSpec struct {
	Name               string
	NumPartitions      int32 // -1 when ReplicaAssignments is set
	ReplicationFactor  int16 // -1 when ReplicaAssignments is set
	ReplicaAssignments []TopicReplicaAssignment
	ConfigEntries      []TopicConfigEntry
}

type CreateTopicsRequest struct {
	Version      int16
	Topics       []TopicSpec
	TimeoutMs    int32
	ValidateOnly bool // v1+
}

func (r *CreateTopicsRequest) key() int16 { return ApiKeyCreateTopics }
func (r *CreateTopicsRequest) version() int16 { return r.Version }
func (r *CreateTopicsRequest) setVersion(v int16) { r.Version = v }
func (r *CreateTopicsRequest) headerVersion() int16 { return 0 }
func (r *CreateTopicsRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 2 }

func (r *CreateTopicsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Name); err != nil {
			return err
		}
		pe.putInt32(t.NumPartitions)
		pe.putInt16(t.ReplicationFactor)
		if err := pe.putArrayLength(len(t.ReplicaAssignments)); err != nil {
			return err
		}
		for _, a := range t.ReplicaAssignments {
			pe.putInt32(a.Partition)
			if err := pe.putArrayLength(len(a.Replicas)); err != nil {
				return err
			}
			for _, r := range a.Replicas {
				pe.putInt32(r)
			}
		}
		if err := pe.putArrayLength(len(t.ConfigEntries)); err != nil {
			return err
		}
		for _, c := range t.ConfigEntries {
			if err := pe.putString(c.Name); err != nil {
				return err
			}
			if err := pe.putString(c.Value); err != nil {
				return err
			}
		}
	}
	pe.putInt32(r.TimeoutMs)
	if r.Version >= 1 {
		pe.putBool(r.ValidateOnly)
	}
	return nil
}

func (r *CreateTopicsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]TopicSpec, n)
	for i := 0; i < n; i++ {
		t := &r.Topics[i]
		if t.Name, err = pd.getString(); err != nil {
			return err
		}
		if t.NumPartitions, err = pd.getInt32(); err != nil {
			return err
		}
		rf, err := pd.getInt16()
		if err != nil {
			return err
		}
		t.ReplicationFactor = rf

		assignCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.ReplicaAssignments = make([]TopicReplicaAssignment, assignCnt)
		for j := 0; j < assignCnt; j++ {
			a := &t.ReplicaAssignments[j]
			if a.Partition, err = pd.getInt32(); err != nil {
				return err
			}
			replicaCnt, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			a.Replicas = make([]int32, replicaCnt)
			for k := 0; k < replicaCnt; k++ {
				if a.Replicas[k], err = pd.getInt32(); err != nil {
					return err
				}
			}
		}

		cfgCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.ConfigEntries = make([]TopicConfigEntry, cfgCnt)
		for j := 0; j < cfgCnt; j++ {
			c := &t.ConfigEntries[j]
			if c.Name, err = pd.getString(); err != nil {
				return err
			}
			if c.Value, err = pd.getString(); err != nil {
				return err
			}
		}
	}

	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	if version >= 1 {
		if r.ValidateOnly, err = pd.getBool(); err != nil {
			return err
		}
	}
	return nil
}

// buildCreateTopicsRequest applies the shared admin preconditions plus the
// CreateTopics-specific one (validateOnly requires v>=1) to the negotiated
// version before encoding anything.
func buildCreateTopicsRequest(n *Negotiator, cfg *Config, topics []TopicSpec, operationTimeout time.Duration, validateOnly bool, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyCreateTopics)
	version, features, ok := n.Negotiate(ApiKeyCreateTopics, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyCreateTopics)
	}

	var extra error
	if validateOnly && version < 1 {
		extra = errValidateOnlyNeedsV1
	}
	if err := checkAdminPreconditions(ApiKeyCreateTopics, len(topics), "CreateTopics", extra); err != nil {
		return nil, err
	}

	req := &CreateTopicsRequest{
		Version:      version,
		Topics:       topics,
		TimeoutMs:    adminTimeoutMillis(operationTimeout),
		ValidateOnly: validateOnly,
	}
	body, err := encodeRequestBody(req, 64*len(topics))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyCreateTopics,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   operationDeadline(cfg, operationTimeout),
	}, nil
}
