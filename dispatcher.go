package kprotocol

// DispatchContext bundles the collaborators a per-API handler needs to
// carry out the common response-handling flow, without this package ever
// reaching into their internals.
type DispatchContext struct {
	Transport   BrokerTransport
	Refresher   MetadataRefresher
	Coordinator GroupCoordinatorState
	Logger      Logger
	Channel     string
}

// orEmpty folds a nil context to a zero-value one so handlers can run on
// paths with no wiring at all (a caller resolving a record outside a broker
// worker). Every collaborator field is individually optional, so the
// zero value is safe everywhere a context is consulted.
func (dc *DispatchContext) orEmpty() *DispatchContext {
	if dc == nil {
		return &DispatchContext{}
	}
	return dc
}

// ParseFunc decodes a response body into a caller-owned result. A KError
// other than ErrNoError becomes the error Dispatch classifies: parsers
// report a decode failure as ErrBadMsg (never as a raw Go error), and some
// also surface a broker error code carried in the body this way.
type ParseFunc func(body []byte) (result interface{}, decodeErr KError)

// RefreshFunc performs the side effects a handler owes the rest of the
// system when Refresh fires — metadata refresh for leadership errors,
// coordinator query/kill for coordinator errors. Handlers that
// don't need one pass nil.
type RefreshFunc func(dc *DispatchContext, actions Action, err KError)

// Dispatch implements the common flow shared by every per-API
// handler: parse, classify, trigger refresh, offer a retry, and otherwise
// hand back a result to post on the caller's reply queue. It does not post
// to the reply queue itself — callers do that with the (result, err)
// it returns, since some handlers (OffsetFetch's toppar write-back, Produce's
// retry-queue bookkeeping) need to run additional side effects first while
// still holding the unwrapped result.
//
// apiErr is the top-level error already observed before parsing (a local
// transport/timeout failure, or ErrNoError if the wire call succeeded).
// Returns (result, finalErr, inProgress). inProgress true means a retry was
// scheduled and the caller must return without posting anything.
func Dispatch(dc *DispatchContext, apiName string, req *RequestRecord, apiErr KError, body []byte, parse ParseFunc, overrides []ActionOverride, refresh RefreshFunc) (interface{}, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		// Teardown path: the caller is being freed, so nothing is parsed,
		// classified, refreshed, or retried.
		return nil, ErrDestroy, false
	}

	var result interface{}
	err := apiErr

	if err == ErrNoError && body != nil {
		var decodeErr KError
		result, decodeErr = parse(body)
		if decodeErr != ErrNoError {
			err = decodeErr
		}
	}

	actions := ClassifyWithLog(dc.Logger, dc.Channel, apiName, err, overrides, req != nil)

	if actions&ActionRefresh != 0 && refresh != nil {
		refresh(dc, actions, err)
	}

	if actions&ActionRetry != 0 {
		if MaybeRetry(dc.Transport, req, actions) {
			return nil, ErrInProgress, true
		}
	}

	return result, err, false
}
