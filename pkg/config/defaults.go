package config

import "time"

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultStoreDriver = StoreMongo

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "slotlink"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultCORSAllowedOrigins = "*"

	DefaultOtelEnabled       = false
	DefaultOtelEndpoint      = "localhost:4317"
	DefaultOtelSamplingRatio = 1.0

	DefaultSlotDurationMin = 30

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	// DefaultRequestTimeout stays below DefaultWriteTimeout so the 503 body can still be written.
	DefaultRequestTimeout = 10 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
