package kprotocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeConfigsRequestEncodeDecodeRoundTripSpecificNames(t *testing.T) {
	req := &DescribeConfigsRequest{
		Version: 1,
		Resources: []DescribeConfigsResourceSpec{
			{Type: ConfigResourceTopic, Name: "topic-a", ConfigNames: []string{"retention.ms", "cleanup.policy"}},
		},
	}
	body, err := encodeRequestBody(req, 64)
	require.NoError(t, err)

	var decoded DescribeConfigsRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 1))
	require.Len(t, decoded.Resources, 1)
	assert.Equal(t, []string{"retention.ms", "cleanup.policy"}, decoded.Resources[0].ConfigNames)
}

func TestDescribeConfigsRequestNilConfigNamesMeansAll(t *testing.T) {
	req := &DescribeConfigsRequest{
		Version:   0,
		Resources: []DescribeConfigsResourceSpec{{Type: ConfigResourceBroker, Name: "1", ConfigNames: nil}},
	}
	body, err := encodeRequestBody(req, 32)
	require.NoError(t, err)

	var decoded DescribeConfigsRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Nil(t, decoded.Resources[0].ConfigNames)
}

func TestDescribeConfigsResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &DescribeConfigsResponse{
		ThrottleTime: 2,
		Resources: []DescribeConfigsResourceResult{
			{
				Err: ErrNoError, Type: ConfigResourceTopic, Name: "topic-a",
				Entries: []DescribeConfigsEntry{
					{Name: "retention.ms", Value: "60000", ReadOnly: false, IsDefault: true, Sensitive: false},
				},
			},
		},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseDescribeConfigsResponse(pe.bytes(), 0, nil)
	require.Equal(t, ErrNoError, apiErr)
	require.Len(t, parsed.Resources, 1)
	require.Len(t, parsed.Resources[0].Entries, 1)
	assert.Equal(t, "60000", parsed.Resources[0].Entries[0].Value)
	assert.True(t, parsed.Resources[0].Entries[0].IsDefault)
}

func TestBuildDescribeConfigsRequestEmptyResourcesRejected(t *testing.T) {
	_, err := buildDescribeConfigsRequest(testNegotiator(), DefaultConfig(), nil, time.Second, ReplyQueueHandle{}, nil, nil)
	require.Error(t, err)
}

func TestHandleDescribeConfigsResponseNoOverridesTable(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeyDescribeConfigs}

	resp := &DescribeConfigsResponse{Resources: []DescribeConfigsResourceResult{{Err: ErrNoError, Type: ConfigResourceTopic, Name: "topic-a"}}}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, err, inProgress := HandleDescribeConfigsResponse(dc, req, ErrNoError, pe.bytes())
	require.NotNil(t, parsed)
	assert.Equal(t, ErrNoError, err)
	assert.False(t, inProgress)
}
