package kprotocol

import "sort"

// MemberAssignment is the per-topic partition assignment the group leader
// computes for one member, carried inside SyncGroup's nested MemberState.
type MemberAssignment struct {
	Topics   map[string][]int32
	UserData []byte
}

// GroupAssignment pairs a member id with the MemberState bytes built for
// it.
type GroupAssignment struct {
	MemberID   string
	Assignment MemberAssignment
}

// SyncGroupRequest is the request body: group-id, generation, member id,
// and — only sent by the elected leader — the array of member assignments.
// Blocking; same +3s grace rule as JoinGroup.
type SyncGroupRequest struct {
	Version      int16
	Group        string
	GenerationID int32
	MemberID     string
	Assignments  []GroupAssignment
}

func (r *SyncGroupRequest) key() int16 { return ApiKeySyncGroup }
func (r *SyncGroupRequest) version() int16 { return r.Version }
func (r *SyncGroupRequest) setVersion(v int16) { r.Version = v }
func (r *SyncGroupRequest) headerVersion() int16 { return 0 }
func (r *SyncGroupRequest) isValidVersion() bool { return r.Version == 0 }

// encodeMemberState builds the nested MemberState body in a scratch buffer:
// version=0 header, topic-grouped (topic, partition-array), then user-data
// bytes.
func encodeMemberState(a MemberAssignment) ([]byte, error) {
	capHint := 2 + 4
	for topic, parts := range a.Topics {
		capHint += 2 + len(topic) + 4 + 4*len(parts)
	}
	capHint += 4 + len(a.UserData)

	scratch := newRealEncoder(capHint)
	scratch.putInt16(0) // MemberState version

	topics := make([]string, 0, len(a.Topics))
	for t := range a.Topics {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	if err := scratch.putArrayLength(len(topics)); err != nil {
		return nil, err
	}
	for _, topic := range topics {
		if err := scratch.putString(topic); err != nil {
			return nil, err
		}
		parts := append([]int32(nil), a.Topics[topic]...)
		sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })
		if err := scratch.putArrayLength(len(parts)); err != nil {
			return nil, err
		}
		for _, p := range parts {
			scratch.putInt32(p)
		}
	}
	if err := scratch.putBytes(a.UserData); err != nil {
		return nil, err
	}
	return scratch.bytes(), nil
}

func (r *SyncGroupRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.Group); err != nil {
		return err
	}
	pe.putInt32(r.GenerationID)
	if err := pe.putString(r.MemberID); err != nil {
		return err
	}
	if err := pe.putArrayLength(len(r.Assignments)); err != nil {
		return err
	}
	for _, a := range r.Assignments {
		if err := pe.putString(a.MemberID); err != nil {
			return err
		}
		payload, err := encodeMemberState(a.Assignment)
		if err != nil {
			return err
		}
		if err := pe.putBytes(payload); err != nil {
			return err
		}
	}
	return nil
}

func decodeMemberState(buf []byte) (MemberAssignment, error) {
	var a MemberAssignment
	pd := newRealDecoder(buf)
	if _, err := pd.getInt16(); err != nil { // MemberState version, ignored
		return a, err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return a, err
	}
	a.Topics = make(map[string][]int32, n)
	for i := 0; i < n; i++ {
		topic, err := pd.getString()
		if err != nil {
			return a, err
		}
		partCnt, err := pd.getArrayLength()
		if err != nil {
			return a, err
		}
		parts := make([]int32, partCnt)
		for j := 0; j < partCnt; j++ {
			if parts[j], err = pd.getInt32(); err != nil {
				return a, err
			}
		}
		a.Topics[topic] = parts
	}
	a.UserData, err = pd.getBytes()
	return a, err
}

func (r *SyncGroupRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.Group, err = pd.getString(); err != nil {
		return err
	}
	if r.GenerationID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MemberID, err = pd.getString(); err != nil {
		return err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Assignments = make([]GroupAssignment, n)
	for i := 0; i < n; i++ {
		if r.Assignments[i].MemberID, err = pd.getString(); err != nil {
			return err
		}
		raw, err := pd.getBytes()
		if err != nil {
			return err
		}
		r.Assignments[i].Assignment, err = decodeMemberState(raw)
		if err != nil {
			return err
		}
	}
	return nil
}

// buildSyncGroupRequest builds the blocking request; assignments is empty
// for every member except the elected leader.
func buildSyncGroupRequest(n *Negotiator, cfg *Config, group string, generationID int32, memberID string, assignments []GroupAssignment, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeySyncGroup)
	version, features, ok := n.Negotiate(ApiKeySyncGroup, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeySyncGroup)
	}

	req := &SyncGroupRequest{Version: version, Group: group, GenerationID: generationID, MemberID: memberID, Assignments: assignments}
	capHint := 2 + len(group) + 8 + 2 + len(memberID) + 4
	for _, a := range assignments {
		capHint += 2 + len(a.MemberID) + 64
	}
	body, err := encodeRequestBody(req, capHint)
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeySyncGroup,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Flags:      FlagBlocking,
		Deadline:   blockingDeadline(cfg),
	}, nil
}
