package kprotocol

import (
	"strings"

	metrics "github.com/rcrowley/go-metrics"
)

// Action is a bitmask of remediation actions inferred from a response error
// code. The bits are orthogonal: a single error can carry more than one.
type Action int

const (
	ActionPermanent Action = 1 << iota
	ActionIgnore
	ActionRefresh
	ActionRetry
	ActionInform
	ActionSpecial
)

var actionNames = []struct {
	bit  Action
	name string
}{
	{ActionPermanent, "Permanent"},
	{ActionIgnore, "Ignore"},
	{ActionRefresh, "Refresh"},
	{ActionRetry, "Retry"},
	{ActionInform, "Inform"},
	{ActionSpecial, "Special"},
}

// String renders the set bits as a comma-separated list, e.g. "Refresh,Retry".
func (a Action) String() string {
	if a == 0 {
		return ""
	}
	var parts []string
	for _, an := range actionNames {
		if a&an.bit != 0 {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, ",")
}

// ActionOverride pairs an error code with the action mask it should produce,
// overriding the default table in Classify. A nil/empty slice means "use
// defaults only".
type ActionOverride struct {
	Action Action
	Err    KError
}

var actionCounters = struct {
	permanent metrics.Counter
	ignore    metrics.Counter
	refresh   metrics.Counter
	retry     metrics.Counter
	inform    metrics.Counter
	special   metrics.Counter
}{
	permanent: metrics.NewRegisteredCounter("kprotocol.actions.permanent", metrics.DefaultRegistry),
	ignore:    metrics.NewRegisteredCounter("kprotocol.actions.ignore", metrics.DefaultRegistry),
	refresh:   metrics.NewRegisteredCounter("kprotocol.actions.refresh", metrics.DefaultRegistry),
	retry:     metrics.NewRegisteredCounter("kprotocol.actions.retry", metrics.DefaultRegistry),
	inform:    metrics.NewRegisteredCounter("kprotocol.actions.inform", metrics.DefaultRegistry),
	special:   metrics.NewRegisteredCounter("kprotocol.actions.special", metrics.DefaultRegistry),
}

func countActions(a Action) {
	if a&ActionPermanent != 0 {
		actionCounters.permanent.Inc(1)
	}
	if a&ActionIgnore != 0 {
		actionCounters.ignore.Inc(1)
	}
	if a&ActionRefresh != 0 {
		actionCounters.refresh.Inc(1)
	}
	if a&ActionRetry != 0 {
		actionCounters.retry.Inc(1)
	}
	if a&ActionInform != 0 {
		actionCounters.inform.Inc(1)
	}
	if a&ActionSpecial != 0 {
		actionCounters.special.Inc(1)
	}
}

// defaultActions is the fallback table consulted when no override matches.
func defaultActions(err KError) Action {
	switch err {
	case ErrNoError:
		return 0
	case ErrLeaderNotAvailable, ErrNotLeaderForPartition, ErrBrokerNotAvailable,
		ErrReplicaNotAvailable, ErrGroupCoordinatorNotAvailable,
		ErrNotCoordinatorForGroup, ErrWaitCoord:
		return ActionRefresh
	case ErrTimedOut, ErrTimedOutQueue, ErrRequestTimedOut,
		ErrNotEnoughReplicas, ErrNotEnoughReplicasAfterAppend, ErrTransport:
		return ActionRetry
	case ErrDestroy, ErrInvalidSessionTimeout, ErrUnsupportedFeature:
		return ActionPermanent
	default:
		return ActionPermanent
	}
}

// Classify decides the action(s) to take for err. overrides is scanned first;
// every matching entry's action is OR'd together, and if anything matched
// the defaults are fully suppressed. hasRequest indicates whether a request
// record is associated with this error; when false, Retry is always masked
// off since there is nothing to retry.
func Classify(err KError, overrides []ActionOverride, hasRequest bool) Action {
	if err == ErrNoError {
		return 0
	}

	var actions Action
	matched := false
	for _, o := range overrides {
		if o.Err == err {
			actions |= o.Action
			matched = true
		}
	}

	if !matched {
		actions = defaultActions(err)
	}

	if !hasRequest {
		actions &^= ActionRetry
	}

	countActions(actions)

	return actions
}

// ClassifyWithLog behaves like Classify but additionally emits a debug trace
// through logger describing the request's API and the resulting action
// summary.
// The classifier itself stays pure: logging never changes the result.
func ClassifyWithLog(logger Logger, channel string, apiName string, err KError, overrides []ActionOverride, hasRequest bool) Action {
	actions := Classify(err, overrides, hasRequest)
	if logger != nil && err != ErrNoError {
		logger.Debugf(channel, "%sRequest failed: %s: actions %s", apiName, err.Error(), actions.String())
	}
	return actions
}
