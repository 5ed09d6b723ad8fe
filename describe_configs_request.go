package kprotocol

import "time"

type DescribeConfigsResourceSpec struct {
	Type        ConfigResourceType
	Name        string
	ConfigNames []string // nil = all configs
}

type DescribeConfigsRequest struct {
	Version   int16
	Resources []DescribeConfigsResourceSpec
}

func (r *DescribeConfigsRequest) key() int16 { return ApiKeyDescribeConfigs }
func (r *DescribeConfigsRequest) version() int16 { return r.Version }
func (r *DescribeConfigsRequest) setVersion(v int16) { r.Version = v }
func (r *DescribeConfigsRequest) headerVersion() int16 { return 0 }
func (r *DescribeConfigsRequest) isValidVersion() bool { return r.Version >= 0 && r.Version <= 1 }

func (r *DescribeConfigsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Resources)); err != nil {
		return err
	}
	for _, res := range r.Resources {
		pe.putInt8(int8(res.Type))
		if err := pe.putString(res.Name); err != nil {
			return err
		}
		if res.ConfigNames == nil {
			pe.putInt32(-1)
			continue
		}
		if err := pe.putArrayLength(len(res.ConfigNames)); err != nil {
			return err
		}
		for _, name := range res.ConfigNames {
			if err := pe.putString(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *DescribeConfigsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Resources = make([]DescribeConfigsResourceSpec, n)
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
		cnt, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		if cnt == 0 {
			res.ConfigNames = nil
			continue
		}
		res.ConfigNames = make([]string, cnt)
		for j := 0; j < cnt; j++ {
			if res.ConfigNames[j], err = pd.getString(); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildDescribeConfigsRequest(n *Negotiator, cfg *Config, resources []DescribeConfigsResourceSpec, operationTimeout time.Duration, reply ReplyQueueHandle, handler HandlerFunc, cookie interface{}) (*RequestRecord, error) {
	pref := cfg.preference(ApiKeyDescribeConfigs)
	version, features, ok := n.Negotiate(ApiKeyDescribeConfigs, pref.Min, pref.Max)
	if !ok {
		return nil, errUnsupportedFeature(ApiKeyDescribeConfigs)
	}
	if err := checkAdminPreconditions(ApiKeyDescribeConfigs, len(resources), "DescribeConfigs"); err != nil {
		return nil, err
	}

	req := &DescribeConfigsRequest{Version: version, Resources: resources}
	body, err := encodeRequestBody(req, 48*len(resources))
	if err != nil {
		return nil, err
	}

	return &RequestRecord{
		ApiKey:     ApiKeyDescribeConfigs,
		ApiVersion: version,
		Features:   features,
		Body:       body,
		Reply:      reply,
		Handler:    handler,
		Cookie:     cookie,
		Deadline:   operationDeadline(cfg, operationTimeout),
	}, nil
}
