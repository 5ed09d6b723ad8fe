package kprotocol

import "time"

type AlterConfigEntry struct {
	Name  string
	Value string
}

type AlterConfigsResourceSpec struct {
	Type    ConfigResourceType
	Name    string
	Entries []AlterConfigEntry
}

// AlterConfigsRequest is v0 only in this layer: v0 is a full-replace (every
// entry not listed is reset to default), the non-incremental semantics.
// Incremental (add/subtract/delete per-entry) alter-configs is a later API
// version this layer doesn't negotiate.
type AlterConfigsRequest struct {
	Version      int16
	Resources    []AlterConfigsResourceSpec
	ValidateOnly bool
}

func (r *AlterConfigsRequest) key() int16 { return ApiKeyAlterConfigs }
func (r *AlterConfigsRequest) version() int16 { return r.Version }
func (r *AlterConfigsRequest) setVersion(v int16) { r.Version = v }
func (r *AlterConfigsRequest) headerVersion() int16 { return 0 }
func (r *AlterConfigsRequest) isValidVersion() bool { return r.Version == 0 }

func (r *AlterConfigsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Resources)); err != nil {
		return err
	}
	for _, res := range r.Resources {
		pe.putInt8(int8(res.Type))
		if err := pe.putString(res.Name); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(res.Entries)); err != nil {
			return err
		}
		for _, e := range res.Entries {
			if err := pe.putString(e.Name); err != nil {
				return err
			}
			if err := pe.putString(e.Value); err != nil {
				return err
			}
		}
	}
	pe.putBool(r.ValidateOnly)
	return nil
}

func (r *AlterConfigsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Resources = make([]AlterConfigsResourceSpec, n)
	for i := 0; i < n; i++ {
		res := &r.Resources[i]
		t, err := pd.getInt8()
		if err != nil {
			return err
		}
		res.Type = ConfigResourceType(t)
		if res.Name, err = pd.getString(); err != nil {
			return err
		}
		entryCnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		res.Entries = make([]AlterConfigEntry, entryCnt)
		for j := 0; j < entryCnt; j++ {
			e := &res.Entries[j]
			if e.Name, err = pd.getString(); err != nil {
				return err
			}
			if e.Value, err = pd.getString(); err != nil {
				return err
			}
		}
	}
	if r.ValidateOnly, err = pd.getBool(); err != nil {
		return err
	}
	return nil
}

// buildAlterConfigsRequest rejects incremental=true outright: this layer
// only implements the non-incremental v0 semantics.
func buildAlterConfigsRequest(n *Negotiator, cfg *Config, resources []AlterConfigsResourceSpec, incremental bool, validateOnly bool, operationTimeout time.Duration, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyAlterConfigs)
	version, features, ok := n.Negotiate(ApiKeyAlterConfigs, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyAlterConfigs)
	}

	var extra error
	if incremental {
		extra = errIncrementalAlterNeedsV2
	}
	if err := checkAdminPreconditions(ApiKeyAlterConfigs, len(resources), "AlterConfigs", extra); err != nil {
		return nil, err
	}

	req := &AlterConfigsRequest{Version: version, Resources: resources, ValidateOnly: validateOnly}
	body, err := encodeRequestBody(req, 48*len(resources))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyAlterConfigs,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   operationDeadline(cfg, operationTimeout),
	}, nil
}
