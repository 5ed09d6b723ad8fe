package kprotocol

import "time"

// HeartbeatRequest is the request body: group-id, generation, member id.
// Deadline = session timeout (no +3s grace — heartbeats aren't blocking
// calls the way JoinGroup/SyncGroup are).
type HeartbeatRequest struct {
	Version      int16
	Group        string
	GenerationID int32
	MemberID     string
}

func (r *HeartbeatRequest) key() int16 { return ApiKeyHeartbeat }
func (r *HeartbeatRequest) version() int16 { return r.Version }
func (r *HeartbeatRequest) setVersion(v int16) { r.Version = v }
func (r *HeartbeatRequest) headerVersion() int16 { return 0 }
func (r *HeartbeatRequest) isValidVersion() bool { return r.Version == 0 }

func (r *HeartbeatRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.Group); err != nil {
		return err
	}
	pe.putInt32(r.GenerationID)
	return pe.putString(r.MemberID)
}

func (r *HeartbeatRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.Group, err = pd.getString(); err != nil {
		return err
	}
	if r.GenerationID, err = pd.getInt32(); err != nil {
		return err
	}
	r.MemberID, err = pd.getString()
	return err
}

func buildHeartbeatRequest(n *Negotiator, cfg *Config, group string, generationID int32, memberID string, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyHeartbeat)
	version, features, ok := n.Negotiate(ApiKeyHeartbeat, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyHeartbeat)
	}

	req := &HeartbeatRequest{Version: version, Group: group, GenerationID: generationID, MemberID: memberID}
	body, err := encodeRequestBody(req, 2+len(group)+4+2+len(memberID))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyHeartbeat,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   time.Now().Add(cfg.GroupSessionTimeout),
	}, nil
}
