package kprotocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaslHandshakeRequestEncodeDecodeRoundTrip(t *testing.T) {
	req := &SaslHandshakeRequest{Version: 0, Mechanism: SaslMechanismScramSHA512}
	body, err := encodeRequestBody(req, 32)
	require.NoError(t, err)

	var decoded SaslHandshakeRequest
	pd := newRealDecoder(body)
	require.NoError(t, decoded.decode(pd, 0))
	assert.Equal(t, SaslMechanismScramSHA512, decoded.Mechanism)
}

func TestSaslHandshakeResponseEncodeDecodeRoundTripUnsupportedMechanism(t *testing.T) {
	resp := &SaslHandshakeResponse{
		Err:               ErrUnsupportedSASLMechanism,
		EnabledMechanisms: []string{"PLAIN", "SCRAM-SHA-256"},
	}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, apiErr := parseSaslHandshakeResponse(pe.bytes(), nil)
	require.Equal(t, ErrNoError, apiErr)
	assert.Equal(t, ErrUnsupportedSASLMechanism, parsed.Err)
	assert.Equal(t, []string{"PLAIN", "SCRAM-SHA-256"}, parsed.EnabledMechanisms)
}

func TestBuildSaslHandshakeRequestUsesRegressionDeadlineWhenApiVersionDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApiVersionRequest = false
	cfg.SocketTimeout = 30 * time.Second

	before := time.Now()
	rec, err := buildSaslHandshakeRequest(cfg, SaslMechanismPlain, ReplyQueueHandle{}, nil, nil)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(10*time.Second), rec.Deadline, 2*time.Second)
}

func TestHandleSaslHandshakeResponseNoOverridesTable(t *testing.T) {
	dc := testDispatchContext(nil, nil)
	req := &RequestRecord{ApiKey: ApiKeySaslHandshake}

	resp := &SaslHandshakeResponse{Err: ErrNoError, EnabledMechanisms: []string{"PLAIN"}}
	pe := newRealEncoder(0)
	require.NoError(t, resp.encode(pe))

	parsed, err, inProgress := HandleSaslHandshakeResponse(dc, req, ErrNoError, pe.bytes())
	require.NotNil(t, parsed)
	assert.Equal(t, ErrNoError, err)
	assert.False(t, inProgress)
}
