package kprotocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTopicsRequestEncodeDecodeRoundTripV2(t *testing.T) {
	req := &CreateTopicsRequest{
		Version: 2,
		Topics: []TopicSpec{
			{Name: "topic-a", NumPartitions: 3, ReplicationFactor: 2, ConfigEntries: []TopicConfigEntry{{Name: "retention.ms", Value: "3600000"}}},
			{Name: "topic-b", NumPartitions: -1, ReplicationFactor: -1, ReplicaAssignments: []TopicReplicaAssignment{{Partition: 0, Replicas: []int32{1, 2}}}},
		},
		TimeoutMs:    5000,
		ValidateOnly: true,
	}

	body, err := encodeRequestBody(req, 128)
	require.NoError(t, err)

	var decoded CreateTopicsRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 2))

	require.Len(t, decoded.Topics, 2)
	assert.Equal(t, int32(3), decoded.Topics[0].NumPartitions)
	assert.Equal(t, "retention.ms", decoded.Topics[0].ConfigEntries[0].Name)
	require.Len(t, decoded.Topics[1].ReplicaAssignments, 1)
	assert.Equal(t, []int32{1, 2}, decoded.Topics[1].ReplicaAssignments[0].Replicas)
	assert.True(t, decoded.ValidateOnly)
}

func TestCreateTopicsRequestV0OmitsValidateOnly(t *testing.T) {
	req := &CreateTopicsRequest{Version: 0, Topics: []TopicSpec{{Name: "topic-a"}}, ValidateOnly: true}
	body, err := encodeRequestBody(req, 32)
	require.NoError(t, err)

	var decoded CreateTopicsRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.False(t, decoded.ValidateOnly)
}

func TestCreateTopicsResponseEncodeDecodeRoundTripV2(t *testing.T) {
	msg := "replication factor out of range"
	resp := &CreateTopicsResponse{
		Version:      2,
		ThrottleTime: 10,
		Topics: []CreateTopicsTopicResult{
			{Topic: "topic-a", Err: ErrNoError},
			{Topic: "topic-b", Err: ErrInvalidReplicationFactor, ErrorMessage: &msg},
		},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseCreateTopicsResponse(pe.bytes(), 2, nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, int32(10), parsed.ThrottleTime)
	require.Len(t, parsed.Topics, 2)
	assert.Equal(t, ErrInvalidReplicationFactor, parsed.Topics[1].Err)
	require.NotNil(t, parsed.Topics[1].ErrorMessage)
	assert.Equal(t, msg, *parsed.Topics[1].ErrorMessage)
}

func TestBuildCreateTopicsRequestValidateOnlyRequiresV1(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VersionPreferences[ApiKeyCreateTopics] = VersionRange{Min: 0, Max: 0}

	_, err := buildCreateTopicsRequest(testNegotiator(), cfg, []TopicSpec{{Name: "topic-a"}}, time.Second, true, ReplyQueueHandle{}, nil, nil)
	require.Error(t, err)
}

func TestBuildCreateTopicsRequestEmptyTopicsRejected(t *testing.T) {
	_, err := buildCreateTopicsRequest(testNegotiator(), DefaultConfig(), nil, time.Second, false, ReplyQueueHandle{}, nil, nil)
	require.Error(t, err)
}

func TestHandleCreateTopicsResponseNoOverridesTable(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeyCreateTopics, ApiVersion: 2}

	resp := &CreateTopicsResponse{Topics: []CreateTopicsTopicResult{{Topic: "topic-a", Err: ErrNoError}}}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, err, inProgress := HandleCreateTopicsResponse(dc, req, ErrNoError, pe.bytes())
	require.NotNil(t, parsed)
	assert.Equal(t, ErrNoError, err)
	assert.False(t, inProgress)
}
