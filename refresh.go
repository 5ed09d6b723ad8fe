package kprotocol

import "golang.org/x/sync/singleflight"

// MetadataRefresher is the collaborator that owns the metadata
// cache. The dispatcher calls through this interface whenever a handler
// classifies Refresh; it never touches cache structure directly.
type MetadataRefresher interface {
	RefreshTopics(reason string, topics []string)
	RefreshAllTopics(reason string, forced bool)
	RefreshBrokers(reason string)
}

// GroupCoordinatorState is the consumer-group collaborator this layer needs
// just enough of to know when a response is obsolete and to trigger
// coordinator rediscovery on Refresh|Special.
type GroupCoordinatorState interface {
	JoinState() JoinState
	MarkCoordinatorDead(err KError, reason string)
	QueryCoordinator(reason string)
}

// JoinState mirrors the subset of the consumer-group state machine this
// layer needs to detect an obsolete SyncGroup reply.
type JoinState int

const (
	JoinStateInit JoinState = iota
	JoinStateWaitJoin
	JoinStateWaitSync
	JoinStateWaitAssign
	JoinStateSteady
)

// singleflightRefresher wraps a MetadataRefresher so that concurrent
// "refresh triggered by a Refresh action" calls from different broker
// handlers collapse into a single upstream call, using
// golang.org/x/sync/singleflight. This is a distinct concern from the
// full-metadata wire-request coalescing counter: that counter gates
// *sending a Metadata request at all*; this collapses *calls into the
// refresh trigger itself*, which may fire from many handlers (leadership
// errors on many partitions) for the same underlying cause.
type singleflightRefresher struct {
	inner MetadataRefresher
	group singleflight.Group
}

// NewSingleflightRefresher adapts inner with request-coalescing.
func NewSingleflightRefresher(inner MetadataRefresher) MetadataRefresher {
	return &singleflightRefresher{inner: inner}
}

func (s *singleflightRefresher) RefreshTopics(reason string, topics []string) {
	key := "topics:" + reason
	s.group.DoChan(key, func() (interface{}, error) {
		s.inner.RefreshTopics(reason, topics)
		return nil, nil
	})
}

func (s *singleflightRefresher) RefreshAllTopics(reason string, forced bool) {
	if forced {
		// Forced calls always go through.
		s.inner.RefreshAllTopics(reason, forced)
		return
	}
	key := "all-topics:" + reason
	s.group.DoChan(key, func() (interface{}, error) {
		s.inner.RefreshAllTopics(reason, forced)
		return nil, nil
	})
}

func (s *singleflightRefresher) RefreshBrokers(reason string) {
	key := "brokers:" + reason
	s.group.DoChan(key, func() (interface{}, error) {
		s.inner.RefreshBrokers(reason)
		return nil, nil
	})
}

// TriggerCoordinatorRefresh turns a Refresh(+Special) action into the right
// one of two upstream calls: marking the coordinator dead (which itself
// triggers rediscovery) versus a plain re-query.
func TriggerCoordinatorRefresh(cgrp GroupCoordinatorState, actions Action, err KError, reason string) {
	if cgrp == nil || actions&ActionRefresh == 0 {
		return
	}
	if actions&ActionSpecial != 0 {
		cgrp.MarkCoordinatorDead(err, reason)
	} else {
		cgrp.QueryCoordinator(reason)
	}
}
