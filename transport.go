package kprotocol

import (
	"context"
	"net"
	"time"

	"github.com/eapache/go-resiliency/breaker"
	"golang.org/x/net/proxy"
)

// BrokerTransport is the collaborator that owns TCP connection
// management and request/response framing for one broker. This package only
// calls through this interface; it never manages sockets itself.
type BrokerTransport interface {
	// Send enqueues req on the broker's pipeline. It does not block for the
	// response; completion arrives later through req.Reply.
	Send(ctx context.Context, req *RequestRecord) error

	// Retry re-enqueues req. It
	// enforces req.Retries, a per-attempt backoff, and a hard ceiling, and
	// reports whether the retry was actually scheduled.
	Retry(req *RequestRecord) bool

	// Deadline reports whether req's absolute deadline has already passed.
	Deadline(req *RequestRecord) bool
}

// DefaultTransport is a reference BrokerTransport that circuit-breaks a
// broker connection which keeps failing Send, wrapping its request path in
// an eapache/go-resiliency breaker so the retry driver stops hammering a
// dead broker instead of retrying into the same
// failure every attempt.
type DefaultTransport struct {
	addr    string
	dialer  proxy.Dialer
	breaker *breaker.Breaker

	retryBackoff func(attempt int) time.Duration
	maxRetries   int

	sendFn func(ctx context.Context, req *RequestRecord) error
}

// NewDefaultTransport builds a DefaultTransport dialing addr directly, or
// through a SOCKS5 proxy when proxyAddr is non-empty.
func NewDefaultTransport(addr, proxyAddr string, maxRetries int, backoff func(attempt int) time.Duration) (*DefaultTransport, error) {
	var dialer proxy.Dialer = proxy.Direct
	if proxyAddr != "" {
		d, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, err
		}
		dialer = d
	}
	if backoff == nil {
		backoff = func(attempt int) time.Duration {
			return time.Duration(attempt) * 100 * time.Millisecond
		}
	}
	t := &DefaultTransport{
		addr:         addr,
		dialer:       dialer,
		breaker:      breaker.New(3, 1, 10*time.Second),
		retryBackoff: backoff,
		maxRetries:   maxRetries,
	}
	return t, nil
}

// SetSendFunc overrides how a request is actually written to the wire; tests
// and the broker worker (which owns the real socket/framing) supply this.
func (t *DefaultTransport) SetSendFunc(fn func(ctx context.Context, req *RequestRecord) error) {
	t.sendFn = fn
}

func (t *DefaultTransport) Send(ctx context.Context, req *RequestRecord) error {
	return t.breaker.Run(func() error {
		if t.sendFn == nil {
			return nil
		}
		return t.sendFn(ctx, req)
	})
}

func (t *DefaultTransport) Retry(req *RequestRecord) bool {
	if req == nil || !req.HasRetriesLeft() || req.Retries > t.maxRetries && t.maxRetries > 0 {
		return false
	}
	req.Retries--
	time.AfterFunc(t.retryBackoff(req.Retries), func() {
		_ = t.Send(context.Background(), req)
	})
	return true
}

func (t *DefaultTransport) Deadline(req *RequestRecord) bool {
	return !req.Deadline.IsZero() && time.Now().After(req.Deadline)
}

// dial is exposed for the broker worker's real connection setup; kept here
// so the proxy-aware dialer has exactly one implementation.
func (t *DefaultTransport) dial(ctx context.Context) (net.Conn, error) {
	return t.dialer.Dial("tcp", t.addr)
}
