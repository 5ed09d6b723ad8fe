package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndTxnRequestEncodeDecodeRoundTrip(t *testing.T) {
	req := &EndTxnRequest{Version: 0, TransactionalID: "txn-1", ProducerID: 7, ProducerEpoch: 2, Committed: true}
	body, err := encodeRequestBody(req, 32)
	require.NoError(t, err)

	var decoded EndTxnRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Equal(t, "txn-1", decoded.TransactionalID)
	assert.EqualValues(t, 7, decoded.ProducerID)
	assert.EqualValues(t, 2, decoded.ProducerEpoch)
	assert.True(t, decoded.Committed)
}

func TestEndTxnResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &EndTxnResponse{ThrottleTime: 1, Err: ErrNoError}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseEndTxnResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, ErrNoError, parsed.Err)
}

func TestHandleEndTxnResponseNotCoordinatorMarksCoordinatorDead(t *testing.T) {
	resp := &EndTxnResponse{Err: ErrNotCoordinator}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	coord := &fakeCoordinatorState{}
	dc := testDispatchContext(nil, coord)
	req := &RequestRecord{ApiKey: ApiKeyEndTxn, Retries: 1}

	_, err, inProgress := HandleEndTxnResponse(dc, req, ErrNoError, pe.bytes())
	require.False(t, inProgress)
	assert.Equal(t, ErrNotCoordinator, err)
	assert.Equal(t, 1, coord.markedDead)
	assert.Equal(t, 0, coord.queried)
}

func TestHandleEndTxnResponseCoordinatorLoadInProgressRetriesWithoutSpecial(t *testing.T) {
	resp := &EndTxnResponse{Err: ErrCoordinatorLoadInProgress}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	coord := &fakeCoordinatorState{}
	dc := testDispatchContext(nil, coord)
	req := &RequestRecord{ApiKey: ApiKeyEndTxn, Retries: 0}

	_, err, inProgress := HandleEndTxnResponse(dc, req, ErrNoError, pe.bytes())
	require.False(t, inProgress)
	assert.Equal(t, ErrCoordinatorLoadInProgress, err)
	assert.Len(t, dc.Transport.(*fakeTransport).retryLog, 1)
	assert.Equal(t, 0, coord.queried)
}
