package kprotocol

// offsetOverrides marks per-partition leadership errors Refresh|Retry.
var offsetOverrides = []ActionOverride{
	{Err: ErrNotLeaderForPartition, Action: ActionRefresh | ActionRetry},
	{Err: ErrLeaderNotAvailable, Action: ActionRefresh | ActionRetry},
	{Err: ErrUnknownTopicOrPartition, Action: ActionRefresh | ActionRetry},
}

// HandleOffsetResponse is the ListOffsets response handler: parse, classify
// per-partition (using the worst action across all blocks so a single bad
// partition still triggers refresh/retry for the whole request), trigger a
// metadata refresh when indicated, and otherwise hand back the parsed
// response.
func HandleOffsetResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*OffsetResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseOffsetResponse(b, version, dc.Logger)
	}

	refresh := func(dc *DispatchContext, actions Action, err KError) {
		if dc.Refresher == nil {
			return
		}
		reason := "OffsetRequest failed: " + err.Error()
		dc.Refresher.RefreshAllTopics(reason, false)
	}

	result, err, inProgress := dispatchWithWorstBlockAction(dc, "Offset", req, apiErr, body, parse, offsetOverrides, refresh, func(r interface{}) []KError {
		resp, ok := r.(*OffsetResponse)
		if !ok || resp == nil {
			return nil
		}
		var codes []KError
		for _, parts := range resp.Blocks {
			for _, b := range parts {
				if b.Err != ErrNoError {
					codes = append(codes, b.Err)
				}
			}
		}
		return codes
	})
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*OffsetResponse)
	return resp, err, false
}

// dispatchWithWorstBlockAction is a small extension of Dispatch:
// once the body is parsed successfully at the top level, it also classifies
// every per-partition error code extractBlockErrors surfaces and ORs those
// actions in, so a per-partition-only failure (top-level success, one bad
// partition) still drives refresh/retry exactly like a top-level error
// would.
func dispatchWithWorstBlockAction(dc *DispatchContext, apiName string, req *RequestRecord, apiErr KError, body []byte, parse ParseFunc, overrides []ActionOverride, refresh RefreshFunc, extractBlockErrors func(interface{}) []KError) (interface{}, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
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

	worst := err
	worstActions := ClassifyWithLog(dc.Logger, dc.Channel, apiName, err, overrides, req != nil)
	if err == ErrNoError && result != nil {
		for _, code := range extractBlockErrors(result) {
			a := ClassifyWithLog(dc.Logger, dc.Channel, apiName, code, overrides, req != nil)
			worstActions |= a
			if worst == ErrNoError {
				worst = code
			}
		}
	}

	if worstActions&ActionRefresh != 0 && refresh != nil {
		refresh(dc, worstActions, worst)
	}

	if worstActions&ActionRetry != 0 {
		if MaybeRetry(dc.Transport, req, worstActions) {
			return nil, ErrInProgress, true
		}
	}

	return result, err, false
}
