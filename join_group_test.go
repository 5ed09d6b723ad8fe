package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinGroupRequestEncodeDecodeRoundTrip(t *testing.T) {
	req := &JoinGroupRequest{
		Version:        0,
		Group:          "grp",
		SessionTimeout: 10000,
		MemberID:       "",
		ProtocolType:   "consumer",
		Protocols:      []GroupProtocol{{Name: "range", Metadata: []byte{1, 2, 3}}},
	}

	body, err := encodeRequestBody(req, 128)
	require.NoError(t, err)

	var decoded JoinGroupRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))

	assert.Equal(t, "grp", decoded.Group)
	assert.EqualValues(t, 10000, decoded.SessionTimeout)
	assert.Equal(t, "consumer", decoded.ProtocolType)
	require.Len(t, decoded.Protocols, 1)
	assert.Equal(t, "range", decoded.Protocols[0].Name)
	assert.Equal(t, []byte{1, 2, 3}, decoded.Protocols[0].Metadata)
}

func TestBuildJoinGroupRequestRunsEveryEnabledAssignor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnabledAssignors = []string{"range", "roundrobin"}

	rec, err := buildJoinGroupRequest(testNegotiator(), cfg, "grp", "", "consumer", []string{"topic-a"}, nil, ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)

	var decoded JoinGroupRequest
	pd := newRealDecoder(rec.Body)
	require.NoError(t, decoded.decode(pd, rec.ApiVersion))
	require.Len(t, decoded.Protocols, 2)
	assert.Equal(t, "range", decoded.Protocols[0].Name)
	assert.Equal(t, "roundrobin", decoded.Protocols[1].Name)
}

func TestBuildJoinGroupRequestUnknownAssignorErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnabledAssignors = []string{"sticky"}

	_, err := buildJoinGroupRequest(testNegotiator(), cfg, "grp", "", "consumer", nil, nil, ReplyQueueHandle{}, nil, nil)
	require.Error(t, err)
}

func TestJoinGroupResponseIsLeader(t *testing.T) {
	resp := &JoinGroupResponse{LeaderID: "member-1", MemberID: "member-1"}
	assert.True(t, resp.IsLeader())

	resp2 := &JoinGroupResponse{LeaderID: "member-1", MemberID: "member-2"}
	assert.False(t, resp2.IsLeader())
}

func TestJoinGroupResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &JoinGroupResponse{
		Err:           ErrNoError,
		GenerationID:  3,
		GroupProtocol: "range",
		LeaderID:      "member-1",
		MemberID:      "member-1",
		Members:       []JoinGroupMember{{MemberID: "member-1", Metadata: []byte{9}}},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseJoinGroupResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.EqualValues(t, 3, parsed.GenerationID)
	assert.True(t, parsed.IsLeader())
	require.Len(t, parsed.Members, 1)
	assert.Equal(t, []byte{9}, parsed.Members[0].Metadata)
}

func TestHandleJoinGroupResponseInconsistentProtocolIsPermanent(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeyJoinGroup}

	_, err, actions := HandleJoinGroupResponse(dc, req, ErrInconsistentGroupProtocol, nil)
	assert.Equal(t, ErrInconsistentGroupProtocol, err)
	assert.Equal(t, ActionPermanent, actions)
}

func TestHandleJoinGroupResponseNotCoordinatorMarksDead(t *testing.T) {
	cgrp := &fakeCoordinatorState{}
	dc := testDispatchContext(nil, cgrp)
	req := &RequestRecord{ApiKey: ApiKeyJoinGroup}

	_, err, actions := HandleJoinGroupResponse(dc, req, ErrNotCoordinatorForGroup, nil)
	assert.Equal(t, ErrNotCoordinatorForGroup, err)
	assert.Equal(t, ActionRefresh|ActionSpecial, actions)
	assert.Equal(t, 1, cgrp.markedDead)
}
