package kprotocol

import (
	"fmt"
	"time"
)

// errUnsupportedFeature is what a builder returns when the negotiator finds
// no [broker,client] version intersection for apiKey.
func errUnsupportedFeature(apiKey int16) error {
	return fmt.Errorf("kprotocol: %s: %w", ApiKey2str(apiKey), errUnsupportedFeatureErr)
}

var errUnsupportedFeatureErr = ErrUnsupportedFeature

// deadlineFromSocketTimeout is the fallback deadline ceiling for requests that don't
// compute a more specific one of their own.
func deadlineFromSocketTimeout(cfg *Config) time.Time {
	return time.Now().Add(cfg.SocketTimeout)
}

// blockingDeadline implements the "+3s grace" rule shared by JoinGroup and
// SyncGroup: absolute deadline = session timeout + 3s.
func blockingDeadline(cfg *Config) time.Time {
	return time.Now().Add(cfg.GroupSessionTimeout + 3*time.Second)
}

// saslHandshakeDeadline implements the 10s regression-mitigation rule:
// when ApiVersion negotiation is disabled and the configured socket timeout
// exceeds 10s, SaslHandshake gets a 10s deadline instead of the full socket
// timeout, to keep 0.9.0.x brokers from being hit with an oversized timeout
// on a request version they predate.
func saslHandshakeDeadline(cfg *Config) time.Time {
	if !cfg.ApiVersionRequest && cfg.SocketTimeout > 10*time.Second {
		return time.Now().Add(10 * time.Second)
	}
	return deadlineFromSocketTimeout(cfg)
}

// apiVersionDeadline is bounded by api_version_request_timeout_ms.
func apiVersionDeadline(cfg *Config) time.Time {
	return time.Now().Add(cfg.ApiVersionRequestTimeout)
}

// operationDeadline implements the admin operation-timeout rule: if
// it exceeds the configured socket timeout, the absolute deadline is
// operation_timeout + 1s instead of the plain socket-timeout ceiling.
func operationDeadline(cfg *Config, operationTimeout time.Duration) time.Time {
	if operationTimeout > cfg.SocketTimeout {
		return time.Now().Add(operationTimeout + time.Second)
	}
	return deadlineFromSocketTimeout(cfg)
}
