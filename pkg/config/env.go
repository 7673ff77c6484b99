package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvStoreDriver = "STORE_DRIVER"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPostgresURL = "POSTGRES_URL"
	EnvRedisURL    = "REDIS_URL"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvOtelEnabled       = "OTEL_ENABLED"
	EnvOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOtelSamplingRatio = "OTEL_SAMPLING_RATIO"

	EnvDefaultSlotDurationMin = "DEFAULT_SLOT_DURATION_MIN"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
