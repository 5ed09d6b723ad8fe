package kprotocol

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is the minimal BrokerTransport a worker needs to drive its
// op/tick loop without a real socket.
type fakeTransport struct {
	mu          sync.Mutex
	expired     map[*RequestRecord]bool
	sendLog     []*RequestRecord
	sendErr     error
	retryLog    []*RequestRecord
	retryResult bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{expired: make(map[*RequestRecord]bool)}
}

func (f *fakeTransport) Send(ctx context.Context, req *RequestRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendLog = append(f.sendLog, req)
	return f.sendErr
}

func (f *fakeTransport) Retry(req *RequestRecord) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retryLog = append(f.retryLog, req)
	return f.retryResult
}

func (f *fakeTransport) Deadline(req *RequestRecord) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expired[req]
}

func (f *fakeTransport) markExpired(req *RequestRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expired[req] = true
}

func TestBrokerWorkerNoGoroutineLeakAcrossRunCycle(t *testing.T) {
	defer leaktest.Check(t)()

	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	req := &RequestRecord{ApiKey: ApiKeyHeartbeat}
	w.Enqueue(func(w *BrokerWorker) { w.track(req) })

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not shut down after context cancel")
	}
}

func TestBrokerWorkerExpireDeadlinesCallsHandlerWithTimedOut(t *testing.T) {
	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, time.Hour)

	var gotErr int32
	handlerCalled := make(chan struct{}, 1)
	req := &RequestRecord{
		ApiKey: ApiKeyHeartbeat,
		Handler: func(ctx *DispatchContext, r *RequestRecord, err KError, body []byte) {
			atomic.StoreInt32(&gotErr, int32(err))
			handlerCalled <- struct{}{}
		},
	}

	w.track(req)
	transport.markExpired(req)
	w.expireDeadlines()

	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked for an expired request")
	}
	assert.Equal(t, int32(ErrTimedOut), atomic.LoadInt32(&gotErr))

	w.mu.Lock()
	_, stillTracked := w.inFlight[req]
	w.mu.Unlock()
	assert.False(t, stillTracked)
}

func TestBrokerWorkerDestroyAllCompletesInFlightWithDestroy(t *testing.T) {
	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, time.Hour)

	var gotErr int32
	handlerCalled := make(chan struct{}, 1)
	req := &RequestRecord{
		ApiKey: ApiKeyGroupCoordinator,
		Handler: func(ctx *DispatchContext, r *RequestRecord, err KError, body []byte) {
			atomic.StoreInt32(&gotErr, int32(err))
			handlerCalled <- struct{}{}
		},
	}
	w.track(req)

	w.destroyAll()

	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked on teardown")
	}
	assert.Equal(t, int32(ErrDestroy), atomic.LoadInt32(&gotErr))
}

func TestBrokerWorkerSendRequestEntersDeadlineSweep(t *testing.T) {
	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	var gotErr int32
	handlerCalled := make(chan struct{}, 1)
	req := &RequestRecord{
		ApiKey: ApiKeyHeartbeat,
		Handler: func(dc *DispatchContext, r *RequestRecord, err KError, body []byte) {
			atomic.StoreInt32(&gotErr, int32(err))
			handlerCalled <- struct{}{}
		},
	}

	w.SendRequest(ctx, req)
	transport.markExpired(req)

	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("expired request never reached its handler")
	}
	assert.Equal(t, int32(ErrTimedOut), atomic.LoadInt32(&gotErr))

	cancel()
	<-done
}

func TestBrokerWorkerCompleteRequestRunsHandlerAndUntracks(t *testing.T) {
	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	var gotErr int32
	handlerCalled := make(chan struct{}, 1)
	req := &RequestRecord{
		ApiKey: ApiKeyHeartbeat,
		Handler: func(dc *DispatchContext, r *RequestRecord, err KError, body []byte) {
			atomic.StoreInt32(&gotErr, int32(err))
			handlerCalled <- struct{}{}
		},
	}

	w.SendRequest(ctx, req)
	w.CompleteRequest(nil, req, ErrNoError, nil)

	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("completed request never reached its handler")
	}
	assert.Equal(t, int32(ErrNoError), atomic.LoadInt32(&gotErr))

	w.mu.Lock()
	_, stillTracked := w.inFlight[req]
	w.mu.Unlock()
	assert.False(t, stillTracked)

	cancel()
	<-done
}

func TestBrokerWorkerSendFailureResolvesWithTransportError(t *testing.T) {
	transport := newFakeTransport()
	transport.sendErr = errors.New("connection refused")
	w := NewBrokerWorker(transport, 4, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	var gotErr int32
	handlerCalled := make(chan struct{}, 1)
	req := &RequestRecord{
		ApiKey: ApiKeyMetadata,
		Handler: func(dc *DispatchContext, r *RequestRecord, err KError, body []byte) {
			atomic.StoreInt32(&gotErr, int32(err))
			handlerCalled <- struct{}{}
		},
	}

	w.SendRequest(ctx, req)

	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("failed send never reached the handler")
	}
	assert.Equal(t, int32(ErrTransport), atomic.LoadInt32(&gotErr))

	cancel()
	<-done
}

func TestBrokerWorkerLocalFailurePathsPassNonNilContext(t *testing.T) {
	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, time.Hour)

	contexts := make(chan *DispatchContext, 2)
	newReq := func() *RequestRecord {
		return &RequestRecord{
			ApiKey: ApiKeyHeartbeat,
			Handler: func(dc *DispatchContext, r *RequestRecord, err KError, body []byte) {
				contexts <- dc
			},
		}
	}

	expired := newReq()
	w.track(expired)
	transport.markExpired(expired)
	w.expireDeadlines()

	destroyed := newReq()
	w.track(destroyed)
	w.destroyAll()

	for i := 0; i < 2; i++ {
		select {
		case dc := <-contexts:
			require.NotNil(t, dc)
			assert.Equal(t, transport, dc.Transport)
		case <-time.After(time.Second):
			t.Fatal("handler was never invoked")
		}
	}
}

func TestBrokerWorkerDestroyResolvesProductionHandlerCleanly(t *testing.T) {
	transport := newFakeTransport()
	w := NewBrokerWorker(transport, 4, time.Hour)
	w.SetDispatchContext(&DispatchContext{
		Transport:   transport,
		Coordinator: &fakeCoordinatorState{state: JoinStateWaitSync},
		Channel:     DebugCgrp,
	})

	got := make(chan KError, 1)
	req := &RequestRecord{
		ApiKey: ApiKeySyncGroup,
		Handler: func(dc *DispatchContext, r *RequestRecord, err KError, body []byte) {
			_, herr, _ := HandleSyncGroupResponse(dc, r, err, body)
			got <- herr
		},
	}
	w.track(req)
	w.destroyAll()

	select {
	case herr := <-got:
		assert.Equal(t, ErrDestroy, herr)
	case <-time.After(time.Second):
		t.Fatal("teardown never reached the handler")
	}
}

func TestRequestRecordCompleteFiresOnReplyExactlyOnce(t *testing.T) {
	calls := 0
	req := &RequestRecord{onReply: func() { calls++ }}

	req.Complete()
	req.Complete()

	assert.Equal(t, 1, calls)
}

func TestMaybeRetryDelegatesToTransportOnlyWhenRetryBitSet(t *testing.T) {
	transport := newFakeTransport()
	req := &RequestRecord{Retries: 1}

	require.False(t, MaybeRetry(transport, req, ActionPermanent))
	assert.Empty(t, transport.retryLog)

	MaybeRetry(transport, req, ActionRetry)
	assert.Len(t, transport.retryLog, 1)
}
