package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRequestSpecificTopicsEncodeDecodeRoundTrip(t *testing.T) {
	req := &MetadataRequest{Version: 2, Topics: []string{"topic-a", "topic-b"}}
	body, err := encodeRequestBody(req, 64)
	require.NoError(t, err)

	var decoded MetadataRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 2))
	assert.Equal(t, []string{"topic-a", "topic-b"}, decoded.Topics)
}

func TestMetadataRequestBrokersOnlyEncodesNullArray(t *testing.T) {
	req := &MetadataRequest{Version: 2, Topics: nil}
	assert.True(t, req.IsBrokersOnly())

	pe := newRealEncoder(0)
	require.NoError(t, req.encode(pe))

	pd := newRealDecoder(pe.bytes())
	n, err := pd.getInt32()
	require.NoError(t, err)
	assert.EqualValues(t, -1, n)
}

func TestMetadataRequestV0DegradesNullToEmptyArray(t *testing.T) {
	req := &MetadataRequest{Version: 0, Topics: nil}
	pe := newRealEncoder(0)
	require.NoError(t, req.encode(pe))

	pd := newRealDecoder(pe.bytes())
	n, err := pd.getInt32()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestMetadataRequestAllTopicsIsNonNilEmpty(t *testing.T) {
	req := &MetadataRequest{Version: 2, Topics: []string{}}
	assert.True(t, req.IsAllTopics())
	assert.False(t, req.IsBrokersOnly())
}

func TestMetadataResponseEncodeDecodeRoundTrip(t *testing.T) {
	resp := &MetadataResponse{
		Version:      1,
		Brokers:      []MetadataBroker{{NodeID: 1, Host: "broker-1", Port: 9092}},
		ControllerID: 1,
		Topics: []TopicMetadata{
			{Err: ErrNoError, Name: "topic-a", Partitions: []PartitionMetadata{
				{Err: ErrNoError, ID: 0, Leader: 1, Replicas: []int32{1, 2}, Isr: []int32{1, 2}},
			}},
		},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseMetadataResponse(pe.bytes(), 1, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.EqualValues(t, 1, parsed.ControllerID)
	require.Len(t, parsed.Topics, 1)
	assert.Equal(t, []int32{1, 2}, parsed.Topics[0].Partitions[0].Replicas)
}

func TestBuildMetadataRequestCoalescesFullTopicsRequests(t *testing.T) {
	coalesce := &MetadataCoalesce{}
	cfg := DefaultConfig()

	rec1, err := buildMetadataRequest(testNegotiator(), cfg, coalesce, []string{}, false, ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec1)

	_, err2 := buildMetadataRequest(testNegotiator(), cfg, coalesce, []string{}, false, ReplyQueueHandle{}, nil, nil)
	assert.Equal(t, ErrPrevInProgress, err2)

	rec1.Complete()
	assert.Equal(t, 0, coalesce.InFlight(CoalesceFullTopics))
}

func TestBuildMetadataRequestSpecificTopicsBypassCoalescing(t *testing.T) {
	coalesce := &MetadataCoalesce{}
	cfg := DefaultConfig()

	rec1, err := buildMetadataRequest(testNegotiator(), cfg, coalesce, []string{"topic-a"}, false, ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	rec2, err := buildMetadataRequest(testNegotiator(), cfg, coalesce, []string{"topic-b"}, false, ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec1)
	require.NotNil(t, rec2)
}

func TestHandleMetadataResponseAlwaysFiresCoalesceDecrement(t *testing.T) {
	coalesce := &MetadataCoalesce{}
	decr, kerr := coalesce.Begin(CoalesceFullBrokers, false)
	require.Equal(t, ErrNoError, kerr)

	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeyMetadata, onReply: decr}

	_, _, inProgress := HandleMetadataResponse(dc, req, ErrRequestTimedOut, nil)
	assert.False(t, inProgress)
	assert.Equal(t, 0, coalesce.InFlight(CoalesceFullBrokers))
}

func TestHandleMetadataResponseFailureTriggersFullRefresh(t *testing.T) {
	refresher := &fakeRefresher{}
	dc := testDispatchContext(refresher, nil)
	req := &RequestRecord{ApiKey: ApiKeyMetadata}

	_, err, inProgress := HandleMetadataResponse(dc, req, ErrLeaderNotAvailable, nil)
	assert.False(t, inProgress)
	assert.Equal(t, ErrLeaderNotAvailable, err)
	_, allTopics, _ := refresher.calls()
	assert.Equal(t, 1, allTopics)
}
