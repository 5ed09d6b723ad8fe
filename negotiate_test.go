package kprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiatePicksHighestCommonVersion(t *testing.T) {
	n := NewNegotiator(BrokerApiVersions{
		ApiKeyOffset: {Min: 0, Max: 5},
	})

	version, features, ok := n.Negotiate(ApiKeyOffset, 0, 1)
	assert.True(t, ok)
	assert.Equal(t, int16(1), version)
	assert.Equal(t, FeatureOffsetTime, features)
}

func TestNegotiateClampsToBrokerMax(t *testing.T) {
	n := NewNegotiator(BrokerApiVersions{
		ApiKeyProduce: {Min: 0, Max: 1},
	})

	version, features, ok := n.Negotiate(ApiKeyProduce, 0, 2)
	assert.True(t, ok)
	assert.Equal(t, int16(1), version)
	assert.Equal(t, FeatureThrottleTime, features)
	assert.Equal(t, FeatureFlags(0), features&FeatureLogAppendTime)
}

func TestNegotiateEmptyIntersectionFails(t *testing.T) {
	n := NewNegotiator(BrokerApiVersions{
		ApiKeyOffsetCommit: {Min: 3, Max: 4},
	})

	version, features, ok := n.Negotiate(ApiKeyOffsetCommit, 0, 2)
	assert.False(t, ok)
	assert.Equal(t, int16(-1), version)
	assert.Equal(t, FeatureFlags(0), features)
}

func TestNegotiateUnadvertisedAPIKeyFails(t *testing.T) {
	n := NewNegotiator(BrokerApiVersions{})

	version, _, ok := n.Negotiate(ApiKeyMetadata, 0, 2)
	assert.False(t, ok)
	assert.Equal(t, int16(-1), version)
}

func TestNegotiateV0HasNoFeatures(t *testing.T) {
	n := NewNegotiator(BrokerApiVersions{
		ApiKeyOffset:  {Min: 0, Max: 0},
		ApiKeyProduce: {Min: 0, Max: 0},
	})

	_, features, ok := n.Negotiate(ApiKeyOffset, 0, 1)
	assert.True(t, ok)
	assert.Equal(t, FeatureFlags(0), features)

	_, features, ok = n.Negotiate(ApiKeyProduce, 0, 2)
	assert.True(t, ok)
	assert.Equal(t, FeatureFlags(0), features)
}

func TestApiKey2strFallsBackToNumeric(t *testing.T) {
	assert.Equal(t, "Metadata", ApiKey2str(ApiKeyMetadata))
	assert.Equal(t, "Unknown-99", ApiKey2str(99))
}
