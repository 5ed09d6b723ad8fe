package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiVersionsRequestHasEmptyBody(t *testing.T) {
	req := &ApiVersionsRequest{Version: 0}
	body, err := encodeRequestBody(req, 0)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestBuildApiVersionsRequestIsFlashPriority(t *testing.T) {
	rec, err := buildApiVersionsRequest(DefaultConfig(), ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	assert.NotZero(t, rec.Flags&FlagFlash)
	assert.EqualValues(t, ApiKeyApiVersions, rec.ApiKey)
}

func TestApiVersionsResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &ApiVersionsResponse{
		Err: ErrNoError,
		ApiVersion: []ApiVersionKeyRange{
			{ApiKey: ApiKeyMetadata, MinVersion: 0, MaxVersion: 2},
			{ApiKey: ApiKeyProduce, MinVersion: 0, MaxVersion: 2},
		},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseApiVersionsResponse(pe.bytes(), nil)
	require.Equal(t, ErrNoError, apiErr)
	require.Len(t, parsed.ApiVersion, 2)

	broker := parsed.ToBrokerApiVersions()
	rng, ok := broker[ApiKeyMetadata]
	require.True(t, ok)
	assert.EqualValues(t, 2, rng.Max)
}

func TestHandleApiVersionsResponseSuccessReturnsBrokerVersions(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	resp := &ApiVersionsResponse{
		Err:        ErrNoError,
		ApiVersion: []ApiVersionKeyRange{{ApiKey: ApiKeyOffset, MinVersion: 0, MaxVersion: 1}},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	broker, err := HandleApiVersionsResponse(dc, nil, ErrNoError, pe.bytes())
	require.Equal(t, ErrNoError, err)
	require.NotNil(t, broker)
	rng, ok := broker[ApiKeyOffset]
	require.True(t, ok)
	assert.EqualValues(t, 1, rng.Max)
}

func TestHandleApiVersionsResponseBrokerErrorReturnsNilMap(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	resp := &ApiVersionsResponse{Err: ErrUnsupportedVersion}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	broker, err := HandleApiVersionsResponse(dc, nil, ErrNoError, pe.bytes())
	assert.Nil(t, broker)
	assert.Equal(t, ErrUnsupportedVersion, err)
}
