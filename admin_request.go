package kprotocol

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ConfigResource names one entity an AlterConfigs/DescribeConfigs call
// targets.
type ConfigResource struct {
	Type ConfigResourceType
	Name string
}

// ConfigResourceType matches the broker's resource-type enum.
type ConfigResourceType int8

const (
	ConfigResourceUnknown ConfigResourceType = 0
	ConfigResourceTopic   ConfigResourceType = 2
	ConfigResourceBroker  ConfigResourceType = 4
)

// checkNonEmpty reports an error when a request names no entries at all.
// checkAdminPreconditions aggregates it with the other checks.
func checkNonEmpty(label string, n int) error {
	if n == 0 {
		return fmt.Errorf("kprotocol: %s: at least one entry is required", label)
	}
	return nil
}

// checkAdminPreconditions runs the shared checks every admin request builder
// owes its caller after negotiating a version and before encoding: the
// API must be supported by this layer's own version table, and the caller
// must have supplied at least one resource to act on. API-specific extras
// (validateOnly requiring CreateTopics v>=1, etc.) are passed in by the
// caller as additional checks. Every failure is aggregated with
// go-multierror rather than stopping at the first.
func checkAdminPreconditions(apiKey int16, entryCount int, label string, extra ...error) error {
	var result *multierror.Error
	if err := checkNonEmpty(label, entryCount); err != nil {
		result = multierror.Append(result, err)
	}
	if _, ok := supportedVersions[apiKey]; !ok {
		result = multierror.Append(result, fmt.Errorf("kprotocol: %s: unsupported API", ApiKey2str(apiKey)))
	}
	for _, e := range extra {
		if e != nil {
			result = multierror.Append(result, e)
		}
	}
	return result.ErrorOrNil()
}

// adminTimeoutMillis converts the admin operation_timeout duration to the
// wire's int32 milliseconds field.
func adminTimeoutMillis(d time.Duration) int32 {
	return int32(d / time.Millisecond)
}
