package kprotocol

import "strconv"

// KError is a Kafka protocol error code. Positive values are broker-reported
// (RD_KAFKAP wire codes); negative values are local/transport errors, except
// ErrUnknown (-1), the broker's unknown-error code. Zero is success.
type KError int16

const (
	ErrNoError KError = 0

	// Broker-reported codes (subset needed by the builders/parsers/classifier
	// in this layer; see the Kafka protocol error table for the rest).
	ErrUnknown                      KError = -1
	ErrOffsetOutOfRange             KError = 1
	ErrInvalidMessage               KError = 2
	ErrUnknownTopicOrPartition      KError = 3
	ErrInvalidMessageSize           KError = 4
	ErrLeaderNotAvailable           KError = 5
	ErrNotLeaderForPartition        KError = 6
	ErrRequestTimedOut              KError = 7
	ErrBrokerNotAvailable           KError = 8
	ErrReplicaNotAvailable          KError = 9
	ErrMessageSizeTooLarge          KError = 10
	ErrStaleControllerEpoch         KError = 11
	ErrOffsetMetadataTooLarge       KError = 12
	ErrNetworkException             KError = 13
	ErrGroupLoadInProgress          KError = 14
	ErrGroupCoordinatorNotAvailable KError = 15
	ErrNotCoordinatorForGroup       KError = 16
	ErrInvalidTopic                 KError = 17
	ErrRecordListTooLarge           KError = 18
	ErrNotEnoughReplicas            KError = 19
	ErrNotEnoughReplicasAfterAppend KError = 20
	ErrInvalidRequiredAcks          KError = 21
	ErrIllegalGeneration            KError = 22
	ErrInconsistentGroupProtocol    KError = 23
	ErrInvalidGroupID               KError = 24
	ErrUnknownMemberID              KError = 25
	ErrInvalidSessionTimeout        KError = 26
	ErrRebalanceInProgress          KError = 27
	ErrInvalidCommitOffsetSize      KError = 28
	ErrTopicAuthorizationFailed     KError = 29
	ErrGroupAuthorizationFailed     KError = 30
	ErrClusterAuthorizationFailed   KError = 31
	ErrInvalidTimestamp             KError = 32
	ErrUnsupportedSASLMechanism     KError = 33
	ErrIllegalSASLState             KError = 34
	ErrUnsupportedVersion           KError = 35
	ErrTopicAlreadyExists           KError = 36
	ErrInvalidPartitions            KError = 37
	ErrInvalidReplicationFactor     KError = 38
	ErrInvalidReplicaAssignment     KError = 39
	ErrInvalidConfig                KError = 40
	ErrNotController                KError = 41
	ErrInvalidRequest               KError = 42
	ErrUnsupportedForMessageFormat  KError = 43
	ErrPolicyViolation              KError = 44

	// Transactional-producer codes.
	ErrOutOfOrderSequenceNumber           KError = 45
	ErrDuplicateSequenceNumber            KError = 46
	ErrInvalidProducerEpoch               KError = 47
	ErrInvalidTxnState                    KError = 48
	ErrInvalidProducerIDMapping           KError = 49
	ErrInvalidTransactionTimeout          KError = 50
	ErrConcurrentTransactions             KError = 51
	ErrTransactionCoordinatorFenced       KError = 52
	ErrTransactionalIDAuthorizationFailed KError = 53

	// The transaction coordinator shares the group coordinator's error-code
	// space on the wire, so the transaction-flavored names alias the same
	// numeric values.
	ErrNotCoordinator            KError = 16
	ErrCoordinatorLoadInProgress KError = 14
	ErrCoordinatorNotAvailable   KError = 15

	// Local/synthetic codes, never seen on the wire.
	ErrTransport          KError = -100
	ErrBadMsg             KError = -101
	ErrTimedOut           KError = -102
	ErrTimedOutQueue      KError = -103
	ErrDestroy            KError = -104
	ErrUnsupportedFeature KError = -105
	ErrPrevInProgress     KError = -106
	ErrInProgress         KError = -107
	ErrWaitCoord          KError = -108
	ErrPartialResponse    KError = -109
	ErrMsgTimedOut        KError = -110
	ErrNoEnt              KError = -111
	ErrAllBrokersDown     KError = -112
)

var errNames = map[KError]string{
	ErrNoError:                      "NO_ERROR",
	ErrUnknown:                      "UNKNOWN",
	ErrOffsetOutOfRange:             "OFFSET_OUT_OF_RANGE",
	ErrInvalidMessage:               "INVALID_MESSAGE",
	ErrUnknownTopicOrPartition:      "UNKNOWN_TOPIC_OR_PARTITION",
	ErrInvalidMessageSize:           "INVALID_MESSAGE_SIZE",
	ErrLeaderNotAvailable:           "LEADER_NOT_AVAILABLE",
	ErrNotLeaderForPartition:        "NOT_LEADER_FOR_PARTITION",
	ErrRequestTimedOut:              "REQUEST_TIMED_OUT",
	ErrBrokerNotAvailable:           "BROKER_NOT_AVAILABLE",
	ErrReplicaNotAvailable:          "REPLICA_NOT_AVAILABLE",
	ErrMessageSizeTooLarge:          "MESSAGE_SIZE_TOO_LARGE",
	ErrStaleControllerEpoch:         "STALE_CONTROLLER_EPOCH",
	ErrOffsetMetadataTooLarge:       "OFFSET_METADATA_TOO_LARGE",
	ErrNetworkException:             "NETWORK_EXCEPTION",
	ErrGroupLoadInProgress:          "GROUP_LOAD_IN_PROGRESS",
	ErrGroupCoordinatorNotAvailable: "GROUP_COORDINATOR_NOT_AVAILABLE",
	ErrNotCoordinatorForGroup:       "NOT_COORDINATOR_FOR_GROUP",
	ErrInvalidTopic:                 "INVALID_TOPIC",
	ErrRecordListTooLarge:           "RECORD_LIST_TOO_LARGE",
	ErrNotEnoughReplicas:            "NOT_ENOUGH_REPLICAS",
	ErrNotEnoughReplicasAfterAppend: "NOT_ENOUGH_REPLICAS_AFTER_APPEND",
	ErrInvalidRequiredAcks:          "INVALID_REQUIRED_ACKS",
	ErrIllegalGeneration:            "ILLEGAL_GENERATION",
	ErrInconsistentGroupProtocol:    "INCONSISTENT_GROUP_PROTOCOL",
	ErrInvalidGroupID:               "INVALID_GROUP_ID",
	ErrUnknownMemberID:              "UNKNOWN_MEMBER_ID",
	ErrInvalidSessionTimeout:        "INVALID_SESSION_TIMEOUT",
	ErrRebalanceInProgress:          "REBALANCE_IN_PROGRESS",
	ErrInvalidCommitOffsetSize:      "INVALID_COMMIT_OFFSET_SIZE",
	ErrTopicAuthorizationFailed:     "TOPIC_AUTHORIZATION_FAILED",
	ErrGroupAuthorizationFailed:     "GROUP_AUTHORIZATION_FAILED",
	ErrClusterAuthorizationFailed:   "CLUSTER_AUTHORIZATION_FAILED",
	ErrInvalidTimestamp:             "INVALID_TIMESTAMP",
	ErrUnsupportedSASLMechanism:     "UNSUPPORTED_SASL_MECHANISM",
	ErrIllegalSASLState:             "ILLEGAL_SASL_STATE",
	ErrUnsupportedVersion:           "UNSUPPORTED_VERSION",
	ErrTopicAlreadyExists:           "TOPIC_ALREADY_EXISTS",
	ErrInvalidPartitions:            "INVALID_PARTITIONS",
	ErrInvalidReplicationFactor:     "INVALID_REPLICATION_FACTOR",
	ErrInvalidReplicaAssignment:     "INVALID_REPLICA_ASSIGNMENT",
	ErrInvalidConfig:                "INVALID_CONFIG",
	ErrNotController:                "NOT_CONTROLLER",
	ErrInvalidRequest:               "INVALID_REQUEST",
	ErrUnsupportedForMessageFormat:  "UNSUPPORTED_FOR_MESSAGE_FORMAT",
	ErrPolicyViolation:              "POLICY_VIOLATION",

	ErrOutOfOrderSequenceNumber:           "OUT_OF_ORDER_SEQUENCE_NUMBER",
	ErrDuplicateSequenceNumber:            "DUPLICATE_SEQUENCE_NUMBER",
	ErrInvalidProducerEpoch:               "INVALID_PRODUCER_EPOCH",
	ErrInvalidTxnState:                    "INVALID_TXN_STATE",
	ErrInvalidProducerIDMapping:           "INVALID_PRODUCER_ID_MAPPING",
	ErrInvalidTransactionTimeout:          "INVALID_TRANSACTION_TIMEOUT",
	ErrConcurrentTransactions:             "CONCURRENT_TRANSACTIONS",
	ErrTransactionCoordinatorFenced:       "TRANSACTION_COORDINATOR_FENCED",
	ErrTransactionalIDAuthorizationFailed: "TRANSACTIONAL_ID_AUTHORIZATION_FAILED",

	ErrTransport:          "Local: Broker transport failure",
	ErrBadMsg:             "Local: Bad message format",
	ErrTimedOut:           "Local: Timed out",
	ErrTimedOutQueue:      "Local: Timed out in queue",
	ErrDestroy:            "Local: Destroy in progress",
	ErrUnsupportedFeature: "Local: Required feature not supported by broker",
	ErrPrevInProgress:     "Local: Previous operation in progress",
	ErrInProgress:         "Local: Operation in progress",
	ErrWaitCoord:          "Local: Waiting for coordinator",
	ErrPartialResponse:    "Local: Partial response",
	ErrMsgTimedOut:        "Local: Message timed out",
	ErrNoEnt:              "Local: No such entry",
	ErrAllBrokersDown:     "Local: All broker connections are down",
}

func (e KError) Error() string {
	if s, ok := errNames[e]; ok {
		return s
	}
	return "UNKNOWN_ERROR_" + strconv.Itoa(int(e))
}

// IsLocal reports whether the code is negative, the range local codes use.
// ErrUnknown (-1) is negative, so IsLocal reports true for it as well.
func (e KError) IsLocal() bool {
	return e < 0
}
