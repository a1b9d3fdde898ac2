package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the complete runtime configuration of docpod
type Config struct {
	Environment string         `yaml:"environment" validate:"oneof=development production"`
	LogLevel    string         `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Storage     StorageConfig  `yaml:"storage"`
	Queue       QueueConfig    `yaml:"queue"`
	Script      ScriptConfig   `yaml:"script"`
	TTS         TTSConfig      `yaml:"tts"`
	Pipeline    PipelineConfig `yaml:"pipeline"`
	Auth        AuthConfig     `yaml:"auth"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port" validate:"required,numeric,max=5"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" validate:"gt=0"`
}

// DatabaseConfig selects the repository backend
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// StorageConfig controls where uploads and generated audio live
type StorageConfig struct {
	Backend      string      `yaml:"backend" validate:"oneof=local minio"`
	UploadDir    string      `yaml:"upload_dir" validate:"required"`
	GeneratedDir string      `yaml:"generated_dir" validate:"required"`
	TempDir      string      `yaml:"temp_dir"`
	Minio        MinioConfig `yaml:"minio"`
}

// MinioConfig holds object storage credentials
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// QueueConfig controls the work queue and worker pool
type QueueConfig struct {
	Backend  string      `yaml:"backend" validate:"oneof=memory redis"`
	Workers  int         `yaml:"workers" validate:"min=1,max=100"`
	Capacity int         `yaml:"capacity" validate:"min=1"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig holds the redis queue connection
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// ScriptConfig selects the generative-language backend
type ScriptConfig struct {
	Provider string `yaml:"provider" validate:"oneof=gemini openai"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// TTSConfig selects the text-to-speech engine and voices
type TTSConfig struct {
	Engine      string   `yaml:"engine" validate:"oneof=openai command"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	Command     string   `yaml:"command"`
	Args        []string `yaml:"args"`
	HostVoice   string   `yaml:"host_voice" validate:"required"`
	ExpertVoice string   `yaml:"expert_voice" validate:"required"`
}

// PipelineConfig holds per-stage timeouts and tooling
type PipelineConfig struct {
	ExtractTimeout time.Duration `yaml:"extract_timeout"`
	ScriptTimeout  time.Duration `yaml:"script_timeout"`
	TTSTimeout     time.Duration `yaml:"tts_timeout"`
	EncodeTimeout  time.Duration `yaml:"encode_timeout"`
	FFmpegPath     string        `yaml:"ffmpeg_path"`
	PageSize       int           `yaml:"page_size" validate:"min=1,max=100"`
}

// AuthConfig controls session issuance
type AuthConfig struct {
	SessionTTL time.Duration `yaml:"session_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost" validate:"min=4,max=31"`
}

// Load reads the YAML file at path (optional), applies defaults and
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		path = os.ExpandEnv(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Expand ${VAR} references before parsing
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnvironment()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns a validated configuration built only from defaults and environment
func Default() (*Config, error) {
	return Load("")
}

func (c *Config) applyEnvironment() {
	setString(&c.Environment, "DOCPOD_ENV")
	setString(&c.LogLevel, "DOCPOD_LOG_LEVEL")
	setString(&c.Server.Host, "DOCPOD_HOST")
	setString(&c.Server.Port, "DOCPOD_PORT")
	setString(&c.Database.Driver, "DOCPOD_DB_DRIVER")
	setString(&c.Database.DSN, "DOCPOD_DB_DSN")
	setString(&c.Storage.Backend, "DOCPOD_STORAGE")
	setString(&c.Storage.UploadDir, "DOCPOD_UPLOAD_DIR")
	setString(&c.Storage.GeneratedDir, "DOCPOD_GENERATED_DIR")
	setString(&c.Storage.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Storage.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Storage.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Storage.Minio.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		c.Storage.Minio.UseSSL = v == "true"
	}
	setString(&c.Queue.Backend, "DOCPOD_QUEUE")
	setString(&c.Queue.Redis.Addr, "REDIS_ADDR")
	setString(&c.Queue.Redis.Password, "REDIS_PASSWORD")
	if v, err := strconv.Atoi(os.Getenv("DOCPOD_WORKERS")); err == nil {
		c.Queue.Workers = v
	}
	setString(&c.Script.Provider, "DOCPOD_SCRIPT_PROVIDER")
	setString(&c.Script.Model, "DOCPOD_SCRIPT_MODEL")
	setString(&c.TTS.Engine, "DOCPOD_TTS_ENGINE")
	setString(&c.TTS.Command, "DOCPOD_TTS_COMMAND")
	setString(&c.Pipeline.FFmpegPath, "FFMPEG_PATH")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.DSN == "" && c.Database.Driver == DriverSQLite {
		c.Database.DSN = DefaultSQLiteDSN
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageLocal
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = DefaultUploadDir
	}
	if c.Storage.GeneratedDir == "" {
		c.Storage.GeneratedDir = DefaultGeneratedDir
	}
	if c.Storage.TempDir == "" {
		c.Storage.TempDir = os.TempDir()
	}
	if c.Storage.Minio.Bucket == "" {
		c.Storage.Minio.Bucket = DefaultMinioBucket
	}

	if c.Queue.Backend == "" {
		c.Queue.Backend = QueueMemory
	}
	if c.Queue.Workers == 0 {
		c.Queue.Workers = DefaultWorkers
	}
	if c.Queue.Capacity == 0 {
		c.Queue.Capacity = DefaultQueueCapacity
	}
	if c.Queue.Redis.Key == "" {
		c.Queue.Redis.Key = DefaultRedisKey
	}

	if c.Script.Provider == "" {
		c.Script.Provider = ProviderGemini
	}
	if c.Script.Model == "" {
		if c.Script.Provider == ProviderOpenAI {
			c.Script.Model = DefaultOpenAIModel
		} else {
			c.Script.Model = DefaultGeminiModel
		}
	}

	if c.TTS.Engine == "" {
		c.TTS.Engine = EngineOpenAI
	}
	if c.TTS.Model == "" && c.TTS.Engine == EngineOpenAI {
		c.TTS.Model = DefaultOpenAITTSModel
	}
	if c.TTS.HostVoice == "" {
		c.TTS.HostVoice = DefaultHostVoice
		if c.TTS.Engine == EngineOpenAI {
			c.TTS.HostVoice = OpenAIHostVoice
		}
	}
	if c.TTS.ExpertVoice == "" {
		c.TTS.ExpertVoice = DefaultExpertVoice
		if c.TTS.Engine == EngineOpenAI {
			c.TTS.ExpertVoice = OpenAIExpertVoice
		}
	}

	if c.Pipeline.ExtractTimeout == 0 {
		c.Pipeline.ExtractTimeout = DefaultExtractTimeout
	}
	if c.Pipeline.ScriptTimeout == 0 {
		c.Pipeline.ScriptTimeout = DefaultScriptTimeout
	}
	if c.Pipeline.TTSTimeout == 0 {
		c.Pipeline.TTSTimeout = DefaultTTSTimeout
	}
	if c.Pipeline.EncodeTimeout == 0 {
		c.Pipeline.EncodeTimeout = DefaultEncodeTimeout
	}
	if c.Pipeline.FFmpegPath == "" {
		c.Pipeline.FFmpegPath = DefaultFFmpegPath
	}
	if c.Pipeline.PageSize == 0 {
		c.Pipeline.PageSize = DefaultPageSize
	}

	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = DefaultSessionTTL
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = DefaultBcryptCost
	}
}

// Validate checks struct tags and cross-field rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	for name, timeout := range map[string]time.Duration{
		"extract": c.Pipeline.ExtractTimeout,
		"script":  c.Pipeline.ScriptTimeout,
		"tts":     c.Pipeline.TTSTimeout,
		"encode":  c.Pipeline.EncodeTimeout,
	} {
		if err := ValidateTimeout(timeout, name); err != nil {
			return err
		}
	}
	if err := ValidateConcurrency(c.Queue.Workers, "queue"); err != nil {
		return err
	}
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return err
	}

	if c.Storage.Backend == StorageMinio && c.Storage.Minio.Endpoint == "" {
		return fmt.Errorf("minio storage requires storage.minio.endpoint")
	}
	if c.Queue.Backend == QueueRedis && c.Queue.Redis.Addr == "" {
		return fmt.Errorf("redis queue requires queue.redis.addr")
	}
	if c.TTS.Engine == EngineCommand && c.TTS.Command == "" {
		return fmt.Errorf("command tts engine requires tts.command")
	}
	return nil
}

// ResolveAPIKeys fills Script.APIKey and TTS.APIKey from the environment
// when the YAML file left them empty.
func (c *Config) ResolveAPIKeys(keys *APIKeys) {
	if c.Script.APIKey == "" {
		if c.Script.Provider == ProviderOpenAI {
			c.Script.APIKey = keys.OpenAI
		} else {
			c.Script.APIKey = keys.Gemini
		}
	}
	if c.TTS.APIKey == "" && c.TTS.Engine == EngineOpenAI {
		c.TTS.APIKey = keys.OpenAI
	}
}

// Addr returns host:port for the HTTP listener
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}
