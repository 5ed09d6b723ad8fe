package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProducerIDRequestEncodeDecodeRoundTrip(t *testing.T) {
	txnID := "txn-1"
	req := &InitProducerIDRequest{Version: 0, TransactionalID: &txnID, TransactionTimeoutMs: 60000}
	body, err := encodeRequestBody(req, 32)
	require.NoError(t, err)

	var decoded InitProducerIDRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	require.NotNil(t, decoded.TransactionalID)
	assert.Equal(t, txnID, *decoded.TransactionalID)
	assert.EqualValues(t, 60000, decoded.TransactionTimeoutMs)
}

func TestInitProducerIDRequestNilTransactionalIDForIdempotentOnly(t *testing.T) {
	req := &InitProducerIDRequest{Version: 0, TransactionalID: nil, TransactionTimeoutMs: 0}
	body, err := encodeRequestBody(req, 16)
	require.NoError(t, err)

	var decoded InitProducerIDRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Nil(t, decoded.TransactionalID)
}

func TestInitProducerIDResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &InitProducerIDResponse{ThrottleTime: 0, Err: ErrNoError, ProducerID: 42, ProducerEpoch: 0}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseInitProducerIDResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.EqualValues(t, 42, parsed.ProducerID)
}

func TestHandleInitProducerIDResponseInvalidProducerEpochIsPermanent(t *testing.T) {
	resp := &InitProducerIDResponse{Err: ErrInvalidProducerEpoch}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	coord := &fakeCoordinatorState{}
	dc := testDispatchContext(nil, coord)
	req := &RequestRecord{ApiKey: ApiKeyInitProducerID, Retries: 1}

	_, err, inProgress := HandleInitProducerIDResponse(dc, req, ErrNoError, pe.bytes())
	require.False(t, inProgress)
	assert.Equal(t, ErrInvalidProducerEpoch, err)
	assert.Equal(t, 0, coord.queried)
}

func TestHandleInitProducerIDResponseCoordinatorNotAvailableTriggersQuery(t *testing.T) {
	resp := &InitProducerIDResponse{Err: ErrCoordinatorNotAvailable}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	coord := &fakeCoordinatorState{}
	dc := testDispatchContext(nil, coord)
	req := &RequestRecord{ApiKey: ApiKeyInitProducerID, Retries: 1}

	_, _, _ = HandleInitProducerIDResponse(dc, req, ErrNoError, pe.bytes())
	assert.Equal(t, 1, coord.queried)
}
