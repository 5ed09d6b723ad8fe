package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMemberStateRoundTrip(t *testing.T) {
	a := MemberAssignment{Topics: map[string][]int32{"topic-a": {0, 1, 2}}, UserData: []byte("ud")}

	raw, err := encodeMemberState(a)
	require.NoError(t, err)

	decoded, err := decodeMemberState(raw)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2}, decoded.Topics["topic-a"])
	assert.Equal(t, []byte("ud"), decoded.UserData)
}

func TestSyncGroupRequestEncodeDecodeRoundTripAsLeader(t *testing.T) {
	req := &SyncGroupRequest{
		Version:      0,
		Group:        "grp",
		GenerationID: 2,
		MemberID:     "member-1",
		Assignments: []GroupAssignment{
			{MemberID: "member-1", Assignment: MemberAssignment{Topics: map[string][]int32{"topic-a": {0}}}},
		},
	}

	body, err := encodeRequestBody(req, 128)
	require.NoError(t, err)

	var decoded SyncGroupRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))

	require.Len(t, decoded.Assignments, 1)
	assert.Equal(t, "member-1", decoded.Assignments[0].MemberID)
	assert.Equal(t, []int32{0}, decoded.Assignments[0].Assignment.Topics["topic-a"])
}

func TestSyncGroupRequestEncodeDecodeRoundTripAsFollower(t *testing.T) {
	req := &SyncGroupRequest{Version: 0, Group: "grp", GenerationID: 2, MemberID: "member-2"}

	body, err := encodeRequestBody(req, 64)
	require.NoError(t, err)

	var decoded SyncGroupRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Empty(t, decoded.Assignments)
}

func TestSyncGroupResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &SyncGroupResponse{
		Err:        ErrNoError,
		Assignment: MemberAssignment{Topics: map[string][]int32{"topic-a": {3, 4}}},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseSyncGroupResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, []int32{3, 4}, parsed.Assignment.Topics["topic-a"])
}

func TestHandleSyncGroupResponseDiscardsWhenNotWaitingSync(t *testing.T) {
	cgrp := &fakeCoordinatorState{state: JoinStateSteady}
	dc := testDispatchContext(nil, cgrp)
	req := &RequestRecord{ApiKey: ApiKeySyncGroup}

	resp := &SyncGroupResponse{Err: ErrNoError}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	result, err, inProgress := HandleSyncGroupResponse(dc, req, ErrNoError, pe.bytes())
	assert.Nil(t, result)
	assert.Equal(t, ErrNoError, err)
	assert.False(t, inProgress)
	assert.Equal(t, 0, cgrp.markedDead)
	assert.Equal(t, 0, cgrp.queried)
}

func TestHandleSyncGroupResponseDestroyPrecedesObsolescenceCheck(t *testing.T) {
	// Teardown resolves the record even when the cgrp has already moved
	// on; the discard path must not swallow Destroy into a silent success.
	cgrp := &fakeCoordinatorState{state: JoinStateWaitAssign}
	dc := testDispatchContext(nil, cgrp)
	req := &RequestRecord{ApiKey: ApiKeySyncGroup}

	result, err, inProgress := HandleSyncGroupResponse(dc, req, ErrDestroy, nil)
	assert.Nil(t, result)
	assert.Equal(t, ErrDestroy, err)
	assert.False(t, inProgress)
	assert.Equal(t, 0, cgrp.markedDead)
	assert.Equal(t, 0, cgrp.queried)
}

func TestHandleSyncGroupResponseParsesWhenWaitingSync(t *testing.T) {
	cgrp := &fakeCoordinatorState{state: JoinStateWaitSync}
	dc := testDispatchContext(nil, cgrp)
	req := &RequestRecord{ApiKey: ApiKeySyncGroup}

	resp := &SyncGroupResponse{Err: ErrNoError, Assignment: MemberAssignment{Topics: map[string][]int32{"t": {0}}}}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	result, err, inProgress := HandleSyncGroupResponse(dc, req, ErrNoError, pe.bytes())
	require.NotNil(t, result)
	assert.Equal(t, ErrNoError, err)
	assert.False(t, inProgress)
	assert.Equal(t, []int32{0}, result.Assignment.Topics["t"])
}
