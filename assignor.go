package kprotocol

import "fmt"

// PartitionAssignor contributes one (protocol-name, metadata-bytes) entry to
// a JoinGroup request. Partition assignment itself happens elsewhere; this
// layer only needs enough of an assignor to serialize its membership
// metadata.
type PartitionAssignor interface {
	Name() string
	// Metadata encodes this assignor's subscription metadata for topics.
	Metadata(topics []string, userData []byte) ([]byte, error)
}

// simpleTopicAssignor backs RangeAssignor and RoundRobinAssignor, the two
// built-in assignors selectable by config; their Metadata encoding is the
// consumer protocol's flat topic-list form shared by both.
type simpleTopicAssignor struct {
	name string
}

func (a simpleTopicAssignor) Name() string { return a.name }

func (a simpleTopicAssignor) Metadata(topics []string, userData []byte) ([]byte, error) {
	pe := newRealEncoder(4 + 32*len(topics) + 4 + len(userData))
	pe.putInt16(0) // consumer protocol metadata version
	if err := pe.putArrayLength(len(topics)); err != nil {
		return nil, err
	}
	for _, t := range topics {
		if err := pe.putString(t); err != nil {
			return nil, err
		}
	}
	if err := pe.putBytes(userData); err != nil {
		return nil, err
	}
	return pe.bytes(), nil
}

var (
	RangeAssignor      PartitionAssignor = simpleTopicAssignor{name: "range"}
	RoundRobinAssignor PartitionAssignor = simpleTopicAssignor{name: "roundrobin"}
)

var knownAssignors = map[string]PartitionAssignor{
	"range":      RangeAssignor,
	"roundrobin": RoundRobinAssignor,
}

func unknownAssignorError(name string) error {
	return fmt.Errorf("kprotocol: unknown partition assignor %q", name)
}
