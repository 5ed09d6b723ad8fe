package kprotocol

type ListGroupsResponse struct {
	Version int16
	Err     KError
	Groups  map[string]string // group id -> protocol type
}

func (r *ListGroupsResponse) key() int16 { return ApiKeyListGroups }
func (r *ListGroupsResponse) version() int16 { return r.Version }
func (r *ListGroupsResponse) setVersion(v int16) { r.Version = v }
func (r *ListGroupsResponse) headerVersion() int16 { return 0 }

func (r *ListGroupsResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.Err))
	if err := pe.putArrayLength(len(r.Groups)); err != nil {
		return err
	}
	for id, protocolType := range r.Groups {
		if err := pe.putString(id); err != nil {
			return err
		}
		if err := pe.putString(protocolType); err != nil {
			return err
		}
	}
	return nil
}

func (r *ListGroupsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Groups = make(map[string]string, n)
	for i := 0; i < n; i++ {
		id, err := pd.getString()
		if err != nil {
			return err
		}
		protocolType, err := pd.getString()
		if err != nil {
			return err
		}
		r.Groups[id] = protocolType
	}
	return nil
}

func parseListGroupsResponse(body []byte, version int16, logger Logger) (*ListGroupsResponse, KError) {
	resp := &ListGroupsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

// HandleListGroupsResponse dispatches ListGroups replies: ListGroups is
// not coordinator-scoped (it targets any broker), so Refresh here only ever means "try a
// different broker" — left to the caller via the plain error return rather
// than a coordinator-specific trigger.
func HandleListGroupsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*ListGroupsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseListGroupsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "ListGroups", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*ListGroupsResponse)
	return resp, err, false
}
