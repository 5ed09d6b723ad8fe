package kprotocol

// DescribeGroupsMember is one member of a described group.
type DescribeGroupsMember struct {
	MemberID         string
	ClientID         string
	ClientHost       string
	MemberMetadata   []byte
	MemberAssignment []byte
}

// GroupDescription is one group's full state as reported by the broker.
type GroupDescription struct {
	Err          KError
	GroupID      string
	State        string
	ProtocolType string
	Protocol     string
	Members      []DescribeGroupsMember
}

type DescribeGroupsResponse struct {
	Version int16
	Groups  []GroupDescription
}

func (r *DescribeGroupsResponse) key() int16 { return ApiKeyDescribeGroups }
func (r *DescribeGroupsResponse) version() int16 { return r.Version }
func (r *DescribeGroupsResponse) setVersion(v int16) { r.Version = v }
func (r *DescribeGroupsResponse) headerVersion() int16 { return 0 }

func (r *DescribeGroupsResponse) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Groups)); err != nil {
		return err
	}
	for _, g := range r.Groups {
		pe.putInt16(int16(g.Err))
		if err := pe.putString(g.GroupID); err != nil {
			return err
		}
		if err := pe.putString(g.State); err != nil {
			return err
		}
		if err := pe.putString(g.ProtocolType); err != nil {
			return err
		}
		if err := pe.putString(g.Protocol); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(g.Members)); err != nil {
			return err
		}
		for _, m := range g.Members {
			if err := pe.putString(m.MemberID); err != nil {
				return err
			}
			if err := pe.putString(m.ClientID); err != nil {
				return err
			}
			if err := pe.putString(m.ClientHost); err != nil {
				return err
			}
			if err := pe.putBytes(m.MemberMetadata); err != nil {
				return err
			}
			if err := pe.putBytes(m.MemberAssignment); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DescribeGroupsResponse) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Groups = make([]GroupDescription, n)
	for i := 0; i < n; i++ {
		g := &r.Groups[i]
		errCode, err := pd.getInt16()
		if err != nil {
			return err
		}
		g.Err = KError(errCode)
		if g.GroupID, err = pd.getString(); err != nil {
			return err
		}
		if g.State, err = pd.getString(); err != nil {
			return err
		}
		if g.ProtocolType, err = pd.getString(); err != nil {
			return err
		}
		if g.Protocol, err = pd.getString(); err != nil {
			return err
		}
		memberCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		g.Members = make([]DescribeGroupsMember, memberCnt)
		for j := 0; j < memberCnt; j++ {
			m := &g.Members[j]
			if m.MemberID, err = pd.getString(); err != nil {
				return err
			}
			if m.ClientID, err = pd.getString(); err != nil {
				return err
			}
			if m.ClientHost, err = pd.getString(); err != nil {
				return err
			}
			if m.MemberMetadata, err = pd.getBytes(); err != nil {
				return err
			}
			if m.MemberAssignment, err = pd.getBytes(); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseDescribeGroupsResponse(body []byte, version int16, logger Logger) (*DescribeGroupsResponse, KError) {
	resp := &DescribeGroupsResponse{}
	if err := decodeResponseBody(resp, body, version, logger, DebugCgrp); err != nil {
		return nil, ErrBadMsg
	}
	return resp, ErrNoError
}

func HandleDescribeGroupsResponse(dc *DispatchContext, req *RequestRecord, apiErr KError, body []byte) (*DescribeGroupsResponse, KError, bool) {
	dc = dc.orEmpty()
	if apiErr == ErrDestroy {
		return nil, ErrDestroy, false
	}

	parse := func(b []byte) (interface{}, KError) {
		version := int16(0)
		if req != nil {
			version = req.ApiVersion
		}
		return parseDescribeGroupsResponse(b, version, dc.Logger)
	}
	result, err, inProgress := Dispatch(dc, "DescribeGroups", req, apiErr, body, parse, nil, nil)
	if inProgress {
		return nil, ErrInProgress, true
	}
	resp, _ := result.(*DescribeGroupsResponse)
	return resp, err, false
}
