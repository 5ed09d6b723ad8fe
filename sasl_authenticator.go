package kprotocol

import (
	"fmt"

	"github.com/relaygo/kprotocol/internal/sasl"
)

// SaslAuthenticator produces the mechanism-specific frames exchanged after
// a successful SaslHandshake. The transport drives the exchange; this layer
// only supplies the bytes.
type SaslAuthenticator interface {
	// InitialToken is the first client frame sent once the broker has
	// accepted the mechanism.
	InitialToken() ([]byte, error)
	// VerifyCompletion validates the broker's final frame.
	VerifyCompletion(frame []byte) error
	// Close releases any credentials held for the exchange.
	Close()
}

// NewSaslAuthenticator builds the authenticator for the configured
// mechanism. PLAIN is handled inline (its single frame is just
// NUL-separated credentials); GSSAPI delegates to internal/sasl's Kerberos
// client. SCRAM variants need a per-connection conversation the transport
// owns, so they are rejected here rather than half-implemented.
func NewSaslAuthenticator(cfg *Config) (SaslAuthenticator, error) {
	if !cfg.Sasl.Enable {
		return nil, fmt.Errorf("kprotocol: sasl not enabled")
	}

	switch cfg.Sasl.Mechanism {
	case SaslMechanismPlain:
		return &plainAuthenticator{user: cfg.Sasl.User, password: cfg.Sasl.Password}, nil
	case SaslMechanismGSSAPI:
		client, err := sasl.NewClient(sasl.Config{
			KerberosConfigPath: cfg.Sasl.GSSAPI.KerberosConfigPath,
			ServiceName:        cfg.Sasl.GSSAPI.ServiceName,
			Username:           cfg.Sasl.GSSAPI.Username,
			Realm:              cfg.Sasl.GSSAPI.Realm,
			Password:           cfg.Sasl.Password,
			KeyTabPath:         cfg.Sasl.GSSAPI.KeyTabPath,
			AuthType:           sasl.AuthType(cfg.Sasl.GSSAPI.AuthType),
		})
		if err != nil {
			return nil, err
		}
		return &gssapiAuthenticator{client: client}, nil
	default:
		return nil, fmt.Errorf("kprotocol: unsupported sasl mechanism %q", cfg.Sasl.Mechanism)
	}
}

type plainAuthenticator struct {
	user     string
	password string
}

func (p *plainAuthenticator) InitialToken() ([]byte, error) {
	token := make([]byte, 0, 2+len(p.user)+len(p.password))
	token = append(token, 0)
	token = append(token, p.user...)
	token = append(token, 0)
	token = append(token, p.password...)
	return token, nil
}

// VerifyCompletion accepts any frame: a broker answers a good PLAIN token
// with an empty success frame and a bad one with a handshake error before
// this point is reached.
func (p *plainAuthenticator) VerifyCompletion([]byte) error { return nil }

func (p *plainAuthenticator) Close() {}

type gssapiAuthenticator struct {
	client *sasl.GSSAPIClient
}

func (g *gssapiAuthenticator) InitialToken() ([]byte, error) {
	return g.client.InitialToken()
}

func (g *gssapiAuthenticator) VerifyCompletion(frame []byte) error {
	return sasl.VerifyCompletion(frame)
}

func (g *gssapiAuthenticator) Close() { g.client.Close() }
