package kprotocol

import "sync"

// OffsetInvalid is the sentinel for "no usable offset".
const OffsetInvalid int64 = -1001

// OffsetStored is the sentinel a caller uses to mean "fetch my committed
// offset"; OffsetFetchRequest skips any partition whose offset is neither
// this nor OffsetInvalid.
const OffsetStored int64 = -1000

// TopicPartition is the toppar handle of the glossary: per-partition
// client-side state, referenced optionally (and weakly) from an
// OffsetRecord's back-pointer.
type TopicPartition struct {
	Topic     string
	Partition int32

	mu              sync.Mutex
	committedOffset int64
}

// NewTopicPartition creates a handle with no committed offset yet.
func NewTopicPartition(topic string, partition int32) *TopicPartition {
	return &TopicPartition{Topic: topic, Partition: partition, committedOffset: OffsetInvalid}
}

// SetCommittedOffset writes the partition's committed-offset slot under its
// lock, the write-back OffsetFetchRequest's handler performs when
// update_toppar is set.
func (t *TopicPartition) SetCommittedOffset(offset int64) {
	t.mu.Lock()
	t.committedOffset = offset
	t.mu.Unlock()
}

// CommittedOffset reads the partition's committed-offset slot under its lock.
func (t *TopicPartition) CommittedOffset() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.committedOffset
}

// OffsetRecord is the per-partition offset record: topic, partition,
// offset, optional error code, optional metadata bytes, and an optional weak
// back-pointer to a TopicPartition handle. The parser may resolve Toppar
// lazily when it's unknown at parse time; a nil resolution is not an
// error.
type OffsetRecord struct {
	Topic     string
	Partition int32
	Offset    int64
	Err       KError
	Metadata  *string
	Toppar    *TopicPartition
}

// TopicPartitionRegistry resolves (topic, partition) to a TopicPartition
// handle on demand, standing in for the toppar cache/registry that's out of
// scope for this layer. A registry may return nil for a pair it
// doesn't locally know, which callers must treat as "not an error".
type TopicPartitionRegistry interface {
	Lookup(topic string, partition int32) *TopicPartition
}
