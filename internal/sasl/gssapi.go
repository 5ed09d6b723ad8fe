// Package sasl implements the GSSAPI exchange that follows a successful
// SaslHandshake, on top of gokrb5's Kerberos stack. The root kprotocol
// package imports it for NewSaslAuthenticator, so gokrb5 is linked into
// every build of kprotocol.
package sasl

import (
	"fmt"

	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/keytab"
	"github.com/jcmturner/gokrb5/v8/messages"
	"github.com/jcmturner/gokrb5/v8/types"
)

// GSSAPI message types for the Kafka-specific token exchange that rides on
// top of a standard Kerberos AP-REQ/AP-REP.
const (
	tokenInitial    uint8 = 1
	tokenRep        uint8 = 2
	tokenCompletion uint8 = 3
)

// AuthType selects keytab vs password Kerberos login.
type AuthType int

const (
	AuthTypeKeyTab AuthType = iota
	AuthTypePassword
)

// Config carries kprotocol's GSSAPIConfig fields plus the SASL password
// used for password login, decoupled so internal/sasl never imports the
// parent package.
type Config struct {
	KerberosConfigPath string
	ServiceName        string
	Username           string
	Realm              string
	Password           string
	KeyTabPath         string
	AuthType           AuthType
}

// GSSAPIClient drives one Kerberos login and produces the AP-REQ token a
// SaslHandshake exchange sends as its first mechanism-specific frame.
type GSSAPIClient struct {
	cfg    Config
	client *client.Client
}

// NewClient loads the krb5.conf at cfg.KerberosConfigPath and authenticates,
// either from a keytab or a password.
func NewClient(cfg Config) (*GSSAPIClient, error) {
	krbCfg, err := config.Load(cfg.KerberosConfigPath)
	if err != nil {
		return nil, fmt.Errorf("sasl: loading krb5 config: %w", err)
	}

	var cl *client.Client
	switch cfg.AuthType {
	case AuthTypeKeyTab:
		kt, err := keytab.Load(cfg.KeyTabPath)
		if err != nil {
			return nil, fmt.Errorf("sasl: loading keytab: %w", err)
		}
		cl = client.NewWithKeytab(cfg.Username, cfg.Realm, kt, krbCfg, client.DisablePAFXFAST(true))
	default:
		cl = client.NewWithPassword(cfg.Username, cfg.Realm, cfg.Password, krbCfg, client.DisablePAFXFAST(true))
	}

	if err := cl.Login(); err != nil {
		return nil, fmt.Errorf("sasl: kerberos login: %w", err)
	}

	return &GSSAPIClient{cfg: cfg, client: cl}, nil
}

// Close ends the Kerberos session.
func (g *GSSAPIClient) Close() {
	g.client.Destroy()
}

// InitialToken builds the first GSSAPI frame: a message-type byte followed
// by a raw Kerberos AP-REQ for cfg.ServiceName, the shape a Kafka broker's
// GSSAPI SaslAuthenticate loop expects.
func (g *GSSAPIClient) InitialToken() ([]byte, error) {
	spn := g.cfg.ServiceName
	tkt, key, err := g.client.GetServiceTicket(spn)
	if err != nil {
		return nil, fmt.Errorf("sasl: service ticket for %s: %w", spn, err)
	}

	auth, err := types.NewAuthenticator(g.client.Credentials.Domain(), g.client.Credentials.CName())
	if err != nil {
		return nil, fmt.Errorf("sasl: building authenticator: %w", err)
	}

	apReq, err := messages.NewAPReq(tkt, key, auth)
	if err != nil {
		return nil, fmt.Errorf("sasl: building AP-REQ: %w", err)
	}

	reqBytes, err := apReq.Marshal()
	if err != nil {
		return nil, fmt.Errorf("sasl: marshaling AP-REQ: %w", err)
	}

	return append([]byte{tokenInitial}, reqBytes...), nil
}

// VerifyCompletion checks the broker's final completion frame, which on
// success carries only the message-type byte and a negotiated QoP/max-size
// payload this layer doesn't need to interpret further.
func VerifyCompletion(frame []byte) error {
	if len(frame) == 0 || frame[0] != tokenCompletion {
		return fmt.Errorf("sasl: expected GSSAPI completion frame, got %d bytes", len(frame))
	}
	return nil
}
