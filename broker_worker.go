package kprotocol

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Op is a build-request submitted by a caller thread (consumer group,
// application, topic coordinator) onto a broker's operation queue. The
// worker goroutine executes it and owns whatever RequestRecord it produces
// from that point on.
type Op func(w *BrokerWorker)

// BrokerWorker is the per-broker I/O event loop: it owns one broker's
// request pipeline (build, send, parse, dispatch) and is the only goroutine
// that ever mutates a RequestRecord while it's in flight. Callers reach it
// only through Enqueue; there is no other way to touch its state.
//
// The loop has no cooperative suspension point — it is driven by ops
// arriving on its queue and a deadline-tick timer, never by awaiting a
// socket read inline (that happens in the transport, fed back through
// Enqueue'd completion ops).
type BrokerWorker struct {
	transport BrokerTransport
	dc        *DispatchContext

	ops chan Op

	mu       sync.Mutex
	inFlight map[*RequestRecord]struct{}

	tickInterval time.Duration
}

// NewBrokerWorker creates a worker for transport with the given op-queue
// buffer size and deadline-check tick interval. Handlers invoked on local
// failures (deadline expiry, send failure, teardown) run with a minimal
// DispatchContext carrying only the transport until SetDispatchContext
// wires the full set of collaborators.
func NewBrokerWorker(transport BrokerTransport, opQueueSize int, tickInterval time.Duration) *BrokerWorker {
	if tickInterval <= 0 {
		tickInterval = 100 * time.Millisecond
	}
	return &BrokerWorker{
		transport:    transport,
		dc:           &DispatchContext{Transport: transport, Channel: DebugBroker},
		ops:          make(chan Op, opQueueSize),
		inFlight:     make(map[*RequestRecord]struct{}),
		tickInterval: tickInterval,
	}
}

// SetDispatchContext replaces the context handlers run with when the worker
// itself resolves a request (local failure, expiry, teardown), so those
// paths see the same refresher/coordinator/logger wiring responses do.
func (w *BrokerWorker) SetDispatchContext(dc *DispatchContext) {
	if dc != nil {
		w.dc = dc
	}
}

// Enqueue submits op to the worker's queue; it may be called from any
// goroutine. It blocks only on the channel send, never on op's execution.
func (w *BrokerWorker) Enqueue(op Op) {
	w.ops <- op
}

// SendRequest is the chokepoint every built RequestRecord passes through:
// it enqueues an op that registers req as in flight and hands it to the
// transport, entering the record into the deadline sweep until
// CompleteRequest, expiry, or teardown resolves it. A transport-level send
// failure resolves the record immediately with local ErrTransport.
func (w *BrokerWorker) SendRequest(ctx context.Context, req *RequestRecord) {
	w.Enqueue(func(w *BrokerWorker) {
		w.track(req)
		if err := w.transport.Send(ctx, req); err != nil {
			if req.Handler == nil {
				w.untrack(req)
				return
			}
			w.forget(req)
			req.Handler(w.dc, req, ErrTransport, nil)
		}
	})
}

// CompleteRequest resolves an in-flight record with the broker's response
// body (or a local failure) and runs its handler on the worker goroutine;
// the transport's read loop calls this for every correlated response it
// frames.
func (w *BrokerWorker) CompleteRequest(dc *DispatchContext, req *RequestRecord, err KError, body []byte) {
	w.Enqueue(func(w *BrokerWorker) {
		w.forget(req)
		if req.Handler != nil {
			if dc == nil {
				dc = w.dc
			}
			req.Handler(dc, req, err, body)
		}
	})
}

// track registers req as in flight; called by ops running on the worker.
func (w *BrokerWorker) track(req *RequestRecord) {
	w.mu.Lock()
	w.inFlight[req] = struct{}{}
	w.mu.Unlock()
}

// untrack removes req from the in-flight set and runs its completion hook;
// called when a local failure, deadline expiry, or Destroy resolves the
// record with no response handler pass to fire the hook itself.
func (w *BrokerWorker) untrack(req *RequestRecord) {
	w.forget(req)
	req.Complete()
}

// forget removes req from the in-flight set without firing its completion
// hook. The response path uses this: the per-API handler owns the hook
// there, so a scheduled retry can keep it pending.
func (w *BrokerWorker) forget(req *RequestRecord) {
	w.mu.Lock()
	delete(w.inFlight, req)
	w.mu.Unlock()
}

// Run drives the event loop until ctx is canceled, using an errgroup to
// supervise the op-consuming goroutine alongside the deadline-tick
// goroutine and propagate whichever exits first.
func (w *BrokerWorker) Run(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			select {
			case <-egCtx.Done():
				w.destroyAll()
				return egCtx.Err()
			case op := <-w.ops:
				op(w)
			}
		}
	})

	eg.Go(func() error {
		ticker := time.NewTicker(w.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-egCtx.Done():
				return nil
			case <-ticker.C:
				w.expireDeadlines()
			}
		}
	})

	return eg.Wait()
}

// expireDeadlines cancels requests whose absolute deadline has passed with
// local TimedOut (in-flight). Requests
// still queued rather than sent would be TimedOutQueue; this reference
// worker only tracks in-flight records, so it always reports TimedOut here.
func (w *BrokerWorker) expireDeadlines() {
	w.mu.Lock()
	var expired []*RequestRecord
	for req := range w.inFlight {
		if w.transport.Deadline(req) {
			expired = append(expired, req)
		}
	}
	w.mu.Unlock()

	for _, req := range expired {
		w.untrack(req)
		if req.Handler != nil {
			req.Handler(w.dc, req, ErrTimedOut, nil)
		}
	}
}

// destroyAll completes every in-flight request with Destroy on teardown,
// silently freeing them without posting reply ops.
func (w *BrokerWorker) destroyAll() {
	w.mu.Lock()
	pending := make([]*RequestRecord, 0, len(w.inFlight))
	for req := range w.inFlight {
		pending = append(pending, req)
	}
	w.mu.Unlock()

	for _, req := range pending {
		w.untrack(req)
		if req.Handler != nil {
			req.Handler(w.dc, req, ErrDestroy, nil)
		}
	}
}
