package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCoordinatorRequestEncodeDecodeRoundTrip(t *testing.T) {
	req := &GroupCoordinatorRequest{Version: 0, Group: "consumer-grp"}

	body, err := encodeRequestBody(req, 32)
	require.NoError(t, err)

	var decoded GroupCoordinatorRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Equal(t, "consumer-grp", decoded.Group)
}

func TestGroupCoordinatorResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &GroupCoordinatorResponse{
		Version:         0,
		Err:             ErrNoError,
		CoordinatorID:   7,
		CoordinatorHost: "broker-7.local",
		CoordinatorPort: 9092,
	}

	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseGroupCoordinatorResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, int32(7), parsed.CoordinatorID)
	assert.Equal(t, "broker-7.local", parsed.CoordinatorHost)
	assert.EqualValues(t, 9092, parsed.CoordinatorPort)
}

func TestGroupCoordinatorResponseCarriesBrokerError(t *testing.T) {
	resp := &GroupCoordinatorResponse{Version: 0, Err: ErrGroupCoordinatorNotAvailable}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseGroupCoordinatorResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, ErrGroupCoordinatorNotAvailable, parsed.Err)
}

func TestHandleGroupCoordinatorResponseRetriesWhileGroupLoads(t *testing.T) {
	resp := &GroupCoordinatorResponse{Version: 0, Err: ErrGroupLoadInProgress}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	dc := testDispatchContext(nil, nil)
	transport := dc.Transport.(*fakeTransport)
	transport.retryResult = true
	req := &RequestRecord{ApiKey: ApiKeyGroupCoordinator, Retries: 1}

	_, err, inProgress := HandleGroupCoordinatorResponse(dc, req, ErrNoError, pe.bytes())
	require.True(t, inProgress)
	assert.Equal(t, ErrInProgress, err)
	assert.Len(t, transport.retryLog, 1)
}

func TestHandleGroupCoordinatorResponseSuccessReturnsCoordinator(t *testing.T) {
	resp := &GroupCoordinatorResponse{Version: 0, CoordinatorID: 3, CoordinatorHost: "b3", CoordinatorPort: 9092}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeyGroupCoordinator}

	parsed, err, inProgress := HandleGroupCoordinatorResponse(dc, req, ErrNoError, pe.bytes())
	require.False(t, inProgress)
	require.Equal(t, ErrNoError, err)
	assert.EqualValues(t, 3, parsed.CoordinatorID)
}

func TestBuildGroupCoordinatorRequestPopulatesRecord(t *testing.T) {
	cfg := DefaultConfig()
	rec, err := buildGroupCoordinatorRequest(testNegotiator(), cfg, "my-group", ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, ApiKeyGroupCoordinator, rec.ApiKey)

	var decoded GroupCoordinatorRequest
	pd := newRealDecoder(rec.Body)
	require.NoError(t, decoded.decode(pd, rec.ApiVersion))
	assert.Equal(t, "my-group", decoded.Group)
}
