package kprotocol

import "strconv"

// API key identifiers.
const (
	ApiKeyProduce            int16 = 0
	ApiKeyOffset             int16 = 2 // ListOffsets
	ApiKeyMetadata           int16 = 3
	ApiKeyLeaderAndIsr       int16 = 4
	ApiKeyOffsetCommit       int16 = 8
	ApiKeyOffsetFetch        int16 = 9
	ApiKeyGroupCoordinator   int16 = 10
	ApiKeyJoinGroup          int16 = 11
	ApiKeyHeartbeat          int16 = 12
	ApiKeyLeaveGroup         int16 = 13
	ApiKeySyncGroup          int16 = 14
	ApiKeyDescribeGroups     int16 = 15
	ApiKeyListGroups         int16 = 16
	ApiKeySaslHandshake      int16 = 17
	ApiKeyApiVersions        int16 = 18
	ApiKeyCreateTopics       int16 = 19
	ApiKeyDeleteTopics       int16 = 20
	ApiKeyInitProducerID     int16 = 22
	ApiKeyEndTxn             int16 = 26
	ApiKeyCreatePartitions   int16 = 37
	ApiKeyAlterConfigs       int16 = 33
	ApiKeyDescribeConfigs    int16 = 32
)

var apiKeyNames = map[int16]string{
	ApiKeyProduce:          "Produce",
	ApiKeyOffset:           "Offset",
	ApiKeyMetadata:         "Metadata",
	ApiKeyOffsetCommit:     "OffsetCommit",
	ApiKeyOffsetFetch:      "OffsetFetch",
	ApiKeyGroupCoordinator: "GroupCoordinator",
	ApiKeyJoinGroup:        "JoinGroup",
	ApiKeyHeartbeat:        "Heartbeat",
	ApiKeyLeaveGroup:       "LeaveGroup",
	ApiKeySyncGroup:        "SyncGroup",
	ApiKeyDescribeGroups:   "DescribeGroups",
	ApiKeyListGroups:       "ListGroups",
	ApiKeySaslHandshake:    "SaslHandshake",
	ApiKeyApiVersions:      "ApiVersion",
	ApiKeyCreateTopics:     "CreateTopics",
	ApiKeyDeleteTopics:     "DeleteTopics",
	ApiKeyInitProducerID:   "InitProducerId",
	ApiKeyEndTxn:           "EndTxn",
	ApiKeyCreatePartitions: "CreatePartitions",
	ApiKeyAlterConfigs:     "AlterConfigs",
	ApiKeyDescribeConfigs:  "DescribeConfigs",
}

// ApiKey2str names an API key for debug trace lines, falling back to the
// numeric value for keys this layer doesn't cover.
func ApiKey2str(key int16) string {
	if name, ok := apiKeyNames[key]; ok {
		return name
	}
	return "Unknown-" + strconv.Itoa(int(key))
}

// apiVersionRange is the [min,max] a side (client or broker) supports for a
// given API key.
type apiVersionRange struct {
	Min, Max int16
}

// supportedVersions is this layer's own [min,max] per API key.
var supportedVersions = map[int16]apiVersionRange{
	ApiKeyGroupCoordinator: {0, 0},
	ApiKeyOffset:           {0, 1},
	ApiKeyOffsetFetch:      {0, 1},
	ApiKeyOffsetCommit:     {0, 2},
	ApiKeyJoinGroup:        {0, 0},
	ApiKeySyncGroup:        {0, 0},
	ApiKeyHeartbeat:        {0, 0},
	ApiKeyLeaveGroup:       {0, 0},
	ApiKeyListGroups:       {0, 0},
	ApiKeyDescribeGroups:   {0, 0},
	ApiKeyMetadata:         {0, 2},
	ApiKeyApiVersions:      {0, 0},
	ApiKeySaslHandshake:    {0, 0},
	ApiKeyProduce:          {0, 2},
	ApiKeyCreateTopics:     {0, 2},
	ApiKeyDeleteTopics:     {0, 1},
	ApiKeyCreatePartitions: {0, 0},
	ApiKeyAlterConfigs:     {0, 0},
	ApiKeyDescribeConfigs:  {0, 1},
	ApiKeyInitProducerID:   {0, 0},
	ApiKeyEndTxn:           {0, 0},
}
