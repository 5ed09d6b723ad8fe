package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatRequestEncodeDecodeRoundTrip(t *testing.T) {
	req := &HeartbeatRequest{Version: 0, Group: "grp", GenerationID: 4, MemberID: "member-1"}

	body, err := encodeRequestBody(req, 64)
	require.NoError(t, err)

	var decoded HeartbeatRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Equal(t, "grp", decoded.Group)
	assert.EqualValues(t, 4, decoded.GenerationID)
	assert.Equal(t, "member-1", decoded.MemberID)
}

func TestHeartbeatResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &HeartbeatResponse{Err: ErrRebalanceInProgress}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseHeartbeatResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, ErrRebalanceInProgress, parsed.Err)
}

func TestHandleHeartbeatResponseRebalanceTriggersPlainRequery(t *testing.T) {
	cgrp := &fakeCoordinatorState{}
	dc := testDispatchContext(nil, cgrp)
	req := &RequestRecord{ApiKey: ApiKeyHeartbeat}

	resp := &HeartbeatResponse{Err: ErrRebalanceInProgress}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	_, err := HandleHeartbeatResponse(dc, req, ErrNoError, pe.bytes())
	assert.Equal(t, ErrRebalanceInProgress, err)
	assert.Equal(t, 1, cgrp.queried)
	assert.Equal(t, 0, cgrp.markedDead)
}
