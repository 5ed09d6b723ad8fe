package kprotocol

import "sync"

// fakeRefresher records calls a handler's RefreshFunc makes through
// DispatchContext.Refresher, so tests can assert a refresh was actually
// triggered without standing up real metadata-cache state.
type fakeRefresher struct {
	mu         sync.Mutex
	topics     []string
	allTopics  int
	allForced  bool
	brokers    int
	lastReason string
}

func (f *fakeRefresher) RefreshTopics(reason string, topics []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topics...)
	f.lastReason = reason
}

func (f *fakeRefresher) RefreshAllTopics(reason string, forced bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allTopics++
	f.allForced = forced
	f.lastReason = reason
}

func (f *fakeRefresher) RefreshBrokers(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brokers++
	f.lastReason = reason
}

func (f *fakeRefresher) calls() (topics int, allTopics int, brokers int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.topics), f.allTopics, f.brokers
}

// fakeCoordinatorState records GroupCoordinatorState calls a handler makes
// on Refresh|Special (coordinator death) versus plain Refresh (re-query).
type fakeCoordinatorState struct {
	mu         sync.Mutex
	state      JoinState
	markedDead int
	queried    int
	lastReason string
}

func (f *fakeCoordinatorState) JoinState() JoinState { return f.state }

func (f *fakeCoordinatorState) MarkCoordinatorDead(err KError, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedDead++
	f.lastReason = reason
}

func (f *fakeCoordinatorState) QueryCoordinator(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried++
	f.lastReason = reason
}

// testDispatchContext wires a no-op transport (retries never actually
// fire) with the fakes above, matching the shape every Handle* function
// expects.
func testDispatchContext(refresher MetadataRefresher, cgrp GroupCoordinatorState) *DispatchContext {
	return &DispatchContext{
		Transport:   newFakeTransport(),
		Refresher:   refresher,
		Coordinator: cgrp,
		Logger:      nil,
		Channel:     DebugBroker,
	}
}

// testNegotiator returns a Negotiator that advertises exactly this layer's
// own supported ranges, so builder tests negotiate the highest version this
// package knows about rather than failing with ErrUnsupportedFeature.
func testNegotiator() *Negotiator {
	broker := make(BrokerApiVersions, len(supportedVersions))
	for k, v := range supportedVersions {
		broker[k] = v
	}
	return NewNegotiator(broker)
}
