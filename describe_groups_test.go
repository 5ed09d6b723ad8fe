package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeGroupsRequestEncodeDecodeRoundTrip(t *testing.T) {
	req := &DescribeGroupsRequest{Version: 0, Groups: []string{"grp-a", "grp-b"}}

	body, err := encodeRequestBody(req, 64)
	require.NoError(t, err)

	var decoded DescribeGroupsRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Equal(t, []string{"grp-a", "grp-b"}, decoded.Groups)
}

func TestDescribeGroupsResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &DescribeGroupsResponse{
		Groups: []GroupDescription{
			{
				Err: ErrNoError, GroupID: "grp-a", State: "Stable", ProtocolType: "consumer", Protocol: "range",
				Members: []DescribeGroupsMember{
					{MemberID: "member-1", ClientID: "client-1", ClientHost: "/10.0.0.1", MemberMetadata: []byte{1}, MemberAssignment: []byte{2}},
				},
			},
		},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseDescribeGroupsResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	require.Len(t, parsed.Groups, 1)
	assert.Equal(t, "Stable", parsed.Groups[0].State)
	require.Len(t, parsed.Groups[0].Members, 1)
	assert.Equal(t, "client-1", parsed.Groups[0].Members[0].ClientID)
}

func TestHandleDescribeGroupsResponseNoOverridesTable(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeyDescribeGroups}

	resp := &DescribeGroupsResponse{Groups: []GroupDescription{{Err: ErrNoError, GroupID: "grp-a"}}}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, err, inProgress := HandleDescribeGroupsResponse(dc, req, ErrNoError, pe.bytes())
	require.NotNil(t, parsed)
	assert.Equal(t, ErrNoError, err)
	assert.False(t, inProgress)
}
