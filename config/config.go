package config

type Config struct {
	DatabaseDSN         string
	MigrationDir        string
	KafkaHost           string
	AggregateEventTopic string
	RelayBatchSize      int
}

var DefaultConfig = Config{
	DatabaseDSN:         "root:1@tcp(localhost:3306)/hubtech?parseTime=true",
	MigrationDir:        "migration",
	KafkaHost:           "localhost:29092",
	AggregateEventTopic: "AGGREGATE_CHANGED_TOPIC",
	RelayBatchSize:      100,
}
