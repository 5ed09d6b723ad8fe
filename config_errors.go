package kprotocol

import "errors"

var (
	errConfigGroupSessionTimeout = errors.New("kprotocol: GroupSessionTimeout must be positive")
	errConfigSocketTimeout       = errors.New("kprotocol: SocketTimeout must be positive")
	errConfigRequiredAcks        = errors.New("kprotocol: RequiredAcks must be >= -1")

	errValidateOnlyNeedsV1     = errors.New("kprotocol: CreateTopics: validate_only requires version >= 1")
	errIncrementalAlterNeedsV2 = errors.New("kprotocol: AlterConfigs: incremental op requires a version this layer does not implement")
)
