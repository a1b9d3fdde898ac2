package config

import "time"

// Provider and backend names
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	EngineOpenAI  = "openai"
	EngineCommand = "command"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageMinio = "minio"

	QueueMemory = "memory"
	QueueRedis  = "redis"
)

// Default configuration constants
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = "8080"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 60 * time.Second
	DefaultIdleTimeout    = 120 * time.Second
	DefaultMaxUploadBytes = 16 * 1024 * 1024

	DefaultSQLiteDSN = "data/docpod.db"

	DefaultUploadDir    = "uploads"
	DefaultGeneratedDir = "generated_audio"
	DefaultMinioBucket  = "docpod-podcasts"

	DefaultWorkers       = 2
	DefaultQueueCapacity = 64
	DefaultRedisKey      = "docpod:jobs"

	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o-mini"

	DefaultOpenAITTSModel = "tts-1"
	DefaultHostVoice      = "expr-voice-2-f"
	DefaultExpertVoice    = "expr-voice-2-m"
	OpenAIHostVoice       = "nova"
	OpenAIExpertVoice     = "onyx"

	DefaultExtractTimeout = 2 * time.Minute
	DefaultScriptTimeout  = 3 * time.Minute
	DefaultTTSTimeout     = time.Minute
	DefaultEncodeTimeout  = 5 * time.Minute
	DefaultFFmpegPath     = "ffmpeg"
	DefaultPageSize       = 5

	DefaultSessionTTL = 7 * 24 * time.Hour
	DefaultBcryptCost = 12
)
