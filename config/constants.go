package config

import "time"

// Feed listing constants
const (
	// DefaultListLimit is applied when a query omits limit
	DefaultListLimit = 25

	// MinListLimit is the floor for the ranked same-day feed
	MinListLimit = 5

	// MaxListLimit is the cap for the ranked same-day feed
	MaxListLimit = 50

	// DefaultSinceHours is the default recency window for GET /articles
	DefaultSinceHours = 36
)

// Storage constants
const (
	// DBPath is the location of the single persisted JSON document
	DBPath = "var/myblog-db.json"

	// WidgetDataDir holds the flat JSON files backing the CRUD widgets
	WidgetDataDir = "data/app"

	// RedisDBKey is the Redis key holding the document when the Redis
	// backend is selected
	RedisDBKey = "myblog:db"
)

// Ingestion constants
const (
	// AgentTimeout bounds a single call to the external agent
	AgentTimeout = 30 * time.Second

	// DefaultAgentURL is used when AGENT_HTTP_URL is not set
	DefaultAgentURL = "http://127.0.0.1:8000"

	// DefaultKafkaTopic carries article batches when the Kafka consumer
	// is enabled
	DefaultKafkaTopic = "myblog.articles"

	// DefaultKafkaGroupID identifies the ingest consumer group
	DefaultKafkaGroupID = "alfredhub-ingest"
)

// TrackingParams are the query parameters stripped during URL normalization
var TrackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "si",
}

// DefaultGenres seed an empty store, ranks 1..3
var DefaultGenres = []string{"NBA", "Tech company IPO", "AI"}
