package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName    = "clipsmart"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8000
	defaultReadTimeout    = 30 * time.Second
	defaultWriteTimeout   = 90 * time.Second

	defaultAssistantModel       = "claude-3-5-sonnet-latest"
	defaultAssistantMaxTokens   = 1024
	defaultAssistantTimeout     = 60 * time.Second
	defaultAssistantRPS         = 2.0
	defaultAssistantBurst       = 4
	defaultAssistantAttempts    = 3
	defaultAssistantBackoff     = 500 * time.Millisecond
	defaultBreakerFailures      = 5
	defaultBreakerResetInterval = 30 * time.Second

	defaultRedisDB           = 0
	defaultTranscriptionTTL  = 24 * time.Hour
	defaultEventExtractTTL   = 6 * time.Hour
	defaultESMaxRetries      = 3
	defaultESIndex           = "clipsmart_processing_logs"
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "clipsmart"
	defaultDBSSLMode         = "disable"
	defaultDBMaxConns        = 10
	defaultDBMaxIdleConns    = 2
	defaultDBConnMaxLifetime = 5 * time.Minute
	defaultS3Region          = "us-east-1"
	defaultPresignTTL        = time.Hour
	defaultBatchConcurrency  = 8
	defaultBatchMaxItems     = 100
)

// Request log backends.
const (
	RequestLogNone          = "none"
	RequestLogElasticsearch = "elasticsearch"
	RequestLogPostgres      = "postgres"
)

// Config holds all configuration for the ClipSmart service.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Logging       logger.Config       `yaml:"logging"`
	Auth          AuthConfig          `yaml:"auth"`
	Assistant     AssistantConfig     `yaml:"assistant"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Database      DatabaseConfig      `yaml:"database"`
	ObjectStore   ObjectStoreConfig   `yaml:"object_store"`
	RequestLog    RequestLogConfig    `yaml:"request_log"`
	Batch         BatchConfig         `yaml:"batch"`
}

// ServiceConfig holds HTTP server settings.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"CLIPSMART_PORT"  yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"       yaml:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS"    yaml:"cors_origins"`
}

// AuthConfig guards /api/v1. An empty secret leaves it open.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// AssistantConfig configures the Anthropic-backed assistant used for screenshot
// transcription and calendar extraction.
type AssistantConfig struct {
	APIKey            string        `env:"ANTHROPIC_API_KEY"   yaml:"api_key"`
	Model             string        `env:"ANTHROPIC_MODEL"     yaml:"model"`
	MaxTokens         int           `yaml:"max_tokens"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `env:"ASSISTANT_RPS"       yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	MaxAttempts       int           `yaml:"max_attempts"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	BreakerFailures   int           `yaml:"breaker_failures"`
	BreakerReset      time.Duration `yaml:"breaker_reset"`
}

// Enabled reports whether an API key is configured.
func (a AssistantConfig) Enabled() bool { return a.APIKey != "" }

// RedisConfig configures the response cache. An empty address disables it.
type RedisConfig struct {
	Address          string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password         string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB               int           `yaml:"db"`
	TranscriptionTTL time.Duration `yaml:"transcription_ttl"`
	EventExtractTTL  time.Duration `yaml:"event_extract_ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Address != "" }

// ElasticsearchConfig configures the Elasticsearch request log backend.
type ElasticsearchConfig struct {
	URL        string `env:"ELASTICSEARCH_URL" yaml:"url"`
	Username   string `yaml:"username"`
	Password   string `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	MaxRetries int    `yaml:"max_retries"`
	Index      string `yaml:"index"`
}

// DatabaseConfig configures the Postgres request log backend.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// DSN renders a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

// URL renders a postgres:// URL, the form golang-migrate expects.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

// ObjectStoreConfig configures S3 uploads of processing outputs. An empty
// bucket disables uploads.
type ObjectStoreConfig struct {
	Bucket          string        `env:"AWS_BUCKET_NAME"       yaml:"bucket"`
	Region          string        `env:"AWS_REGION"            yaml:"region"`
	AccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"     yaml:"access_key_id"`
	SecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY" yaml:"secret_access_key"`
	Endpoint        string        `env:"S3_ENDPOINT"           yaml:"endpoint"`
	Presign         bool          `env:"S3_PRESIGN"            yaml:"presign"`
	PresignTTL      time.Duration `yaml:"presign_ttl"`
}

// Enabled reports whether a bucket is configured.
func (o ObjectStoreConfig) Enabled() bool { return o.Bucket != "" }

// RequestLogConfig selects where processing logs are written.
type RequestLogConfig struct {
	Backend string `env:"REQUEST_LOG_BACKEND" yaml:"backend"`
}

// BatchConfig bounds /api/v1/classify/batch.
type BatchConfig struct {
	Concurrency int `env:"BATCH_CONCURRENCY" yaml:"concurrency"`
	MaxItems    int `yaml:"max_items"`
}

// Load reads the configuration at path and applies defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	return errors.Join(
		validatePort("service.port", c.Service.Port),
		validateLogLevel(c.Logging.Level),
		validateOneOf("request_log.backend", c.RequestLog.Backend,
			RequestLogNone, RequestLogElasticsearch, RequestLogPostgres),
		c.validateBackends(),
	)
}

func (c *Config) validateBackends() error {
	switch c.RequestLog.Backend {
	case RequestLogElasticsearch:
		if c.Elasticsearch.URL == "" {
			return &ValidationError{Field: "elasticsearch.url", Message: "is required for the elasticsearch request log"}
		}
	case RequestLogPostgres:
		if c.Database.Host == "" {
			return &ValidationError{Field: "database.host", Message: "is required for the postgres request log"}
		}
	}
	return nil
}

// SetDefaults applies defaults in place. Exposed for callers that build a
// Config without a file, such as tests and the CLI.
func SetDefaults(cfg *Config) { setDefaults(cfg) }

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	cfg.Logging.SetDefaults()
	setAssistantDefaults(&cfg.Assistant)
	setRedisDefaults(&cfg.Redis)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setDatabaseDefaults(&cfg.Database)
	setObjectStoreDefaults(&cfg.ObjectStore)

	if cfg.RequestLog.Backend == "" {
		cfg.RequestLog.Backend = RequestLogNone
	}
	if cfg.Batch.Concurrency == 0 {
		cfg.Batch.Concurrency = defaultBatchConcurrency
	}
	if cfg.Batch.MaxItems == 0 {
		cfg.Batch.MaxItems = defaultBatchMaxItems
	}
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeout
	}
}

func setAssistantDefaults(a *AssistantConfig) {
	if a.Model == "" {
		a.Model = defaultAssistantModel
	}
	if a.MaxTokens == 0 {
		a.MaxTokens = defaultAssistantMaxTokens
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAssistantTimeout
	}
	if a.RequestsPerSecond == 0 {
		a.RequestsPerSecond = defaultAssistantRPS
	}
	if a.Burst == 0 {
		a.Burst = defaultAssistantBurst
	}
	if a.MaxAttempts == 0 {
		a.MaxAttempts = defaultAssistantAttempts
	}
	if a.InitialBackoff == 0 {
		a.InitialBackoff = defaultAssistantBackoff
	}
	if a.BreakerFailures == 0 {
		a.BreakerFailures = defaultBreakerFailures
	}
	if a.BreakerReset == 0 {
		a.BreakerReset = defaultBreakerResetInterval
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.DB == 0 {
		r.DB = defaultRedisDB
	}
	if r.TranscriptionTTL == 0 {
		r.TranscriptionTTL = defaultTranscriptionTTL
	}
	if r.EventExtractTTL == 0 {
		r.EventExtractTTL = defaultEventExtractTTL
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Index == "" {
		e.Index = defaultESIndex
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = defaultDBConnMaxLifetime
	}
}

func setObjectStoreDefaults(o *ObjectStoreConfig) {
	if o.Region == "" {
		o.Region = defaultS3Region
	}
	if o.PresignTTL == 0 {
		o.PresignTTL = defaultPresignTTL
	}
}
