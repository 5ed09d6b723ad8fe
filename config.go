package kprotocol

import (
	"time"

	"github.com/hashicorp/go-multierror"
)

// VersionRange is a client's preferred [min,max] for one API key, consumed
// by the negotiator.
type VersionRange struct {
	Min, Max int16
}

// Config carries the settings this layer consumes. It is this layer's
// slice of the application's configuration; loading it from a file/flags is
// out of scope.
type Config struct {
	// GroupSessionTimeout is the deadline base for JoinGroup/SyncGroup/
	// Heartbeat.
	GroupSessionTimeout time.Duration

	// SocketTimeout is the fallback deadline ceiling used when a request
	// doesn't have a more specific timeout of its own.
	SocketTimeout time.Duration

	// ApiVersionRequest records whether ApiVersion negotiation runs at
	// connection setup. Within this layer it only affects SaslHandshake:
	// when false and SocketTimeout exceeds 10s, SaslHandshake gets the 10s
	// regression-mitigation deadline. The builders do not pin API versions
	// based on it; they use whatever Negotiator they are given.
	ApiVersionRequest        bool
	ApiVersionRequestTimeout time.Duration

	// EnabledAssignors selects which PartitionAssignors contribute metadata
	// to JoinGroup.
	EnabledAssignors []string

	// ProduceOffsetReport selects per-message vs last-message offset/
	// timestamp stamping on a successful Produce.
	ProduceOffsetReport bool

	// RequiredAcks, when 0, suppresses the Produce response expectation.
	RequiredAcks int16

	// VersionPreferences is this client's [min,max] preference per API key,
	// intersected against the broker's advertised range by the negotiator.
	// Unset entries default to supportedVersions.
	VersionPreferences map[int16]VersionRange

	// Sasl carries the mechanism selection and per-mechanism credentials
	// consumed by NewSaslAuthenticator when Sasl.Enable is set.
	Sasl SaslConfig
}

// SaslConfig carries the SASL settings: the mechanism, the User/Password
// pair (PLAIN uses both; GSSAPI password login uses Password), and the
// GSSAPI Kerberos settings. NewSaslAuthenticator rejects the SCRAM
// mechanisms.
type SaslConfig struct {
	Enable    bool
	Mechanism SaslMechanism
	User      string
	Password  string

	GSSAPI GSSAPIConfig
}

// GSSAPIConfig is the Kerberos configuration internal/sasl hands to
// gokrb5.
type GSSAPIConfig struct {
	ServiceName        string
	Username           string
	Realm              string
	KerberosConfigPath string
	KeyTabPath         string
	AuthType           GSSAPIAuthType
}

// GSSAPIAuthType selects between keytab and password authentication.
type GSSAPIAuthType int

const (
	GSSAPIAuthKeyTab GSSAPIAuthType = iota
	GSSAPIAuthPassword
)

// DefaultConfig returns a Config with this layer's full supported version
// range for every API and conservative timeouts.
func DefaultConfig() *Config {
	prefs := make(map[int16]VersionRange, len(supportedVersions))
	for k, r := range supportedVersions {
		prefs[k] = VersionRange{Min: r.Min, Max: r.Max}
	}
	return &Config{
		GroupSessionTimeout:      10 * time.Second,
		SocketTimeout:            60 * time.Second,
		ApiVersionRequest:        true,
		ApiVersionRequestTimeout: 10 * time.Second,
		ProduceOffsetReport:      false,
		RequiredAcks:             1,
		VersionPreferences:       prefs,
	}
}

// preference returns the configured [min,max] for apiKey, falling back to
// this layer's full supported range if the caller never set one.
func (c *Config) preference(apiKey int16) VersionRange {
	if c.VersionPreferences != nil {
		if r, ok := c.VersionPreferences[apiKey]; ok {
			return r
		}
	}
	r := supportedVersions[apiKey]
	return VersionRange{Min: r.Min, Max: r.Max}
}

// Validate collects every configuration violation instead of stopping at
// the first, aggregated with hashicorp/go-multierror, so a caller sees
// every bad field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.GroupSessionTimeout <= 0 {
		result = multierror.Append(result, errConfigGroupSessionTimeout)
	}
	if c.SocketTimeout <= 0 {
		result = multierror.Append(result, errConfigSocketTimeout)
	}
	if c.RequiredAcks < -1 {
		result = multierror.Append(result, errConfigRequiredAcks)
	}
	for _, name := range c.EnabledAssignors {
		if _, ok := knownAssignors[name]; !ok {
			result = multierror.Append(result, unknownAssignorError(name))
		}
	}

	return result.ErrorOrNil()
}
