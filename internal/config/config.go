// Package config holds the admin service configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

const (
	defaultServerHost         = "0.0.0.0"
	defaultServerPort         = 8060
	defaultReadTimeout        = 15 * time.Second
	defaultWriteTimeout       = 30 * time.Second
	defaultIdleTimeout        = 60 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBUser             = "postgres"
	defaultDBName             = "ai_tools_admin"
	defaultDBSSLMode          = "disable"
	defaultMaxOpenConns       = 25
	defaultMaxIdleConns       = 5
	defaultConnMaxLifetime    = 5 * time.Minute
	defaultLocalStoragePath   = "data/admin_store.json"
	defaultRedisAddr          = "localhost:6379"
	defaultEventStream        = "content-events"
	defaultActivityKey        = "admin:recent-activity"
	defaultDashboardCacheTTL  = time.Minute
	defaultTokenTTL           = 24 * time.Hour
	defaultLoginRatePerMinute = 10
	defaultLoginBurst         = 5
	defaultS3Region           = "us-east-1"
	defaultPresignExpiry      = 15 * time.Minute
	defaultMaxImages          = 10
	defaultScraperTimeout     = 30 * time.Second
	defaultScraperUserAgent   = "Mozilla/5.0 (compatible; AIToolsAdmin/1.0)"
	defaultSearchIndex        = "contents"
	defaultAPIBaseURL         = "http://localhost:8060/api/v1"
	defaultSessionFile        = ".ai-tools-admin-session.json"

	// MaxImagesLimit caps uploads.max_images.
	MaxImagesLimit = 10

	// StorageDriverPostgres persists records in PostgreSQL.
	StorageDriverPostgres = "postgres"
	// StorageDriverLocal persists records in a single JSON blob file.
	StorageDriverLocal = "local"
)

// Config is the root configuration for every command.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Search   SearchConfig   `yaml:"search"`
	Logging  logger.Config  `yaml:"logging"`
	Console  ConsoleConfig  `yaml:"console"`
}

type ServiceConfig struct {
	Name    string `env:"SERVICE_NAME"    yaml:"name"`
	Version string `env:"SERVICE_VERSION" yaml:"version"`
	Debug   bool   `env:"APP_DEBUG"       yaml:"debug"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"          yaml:"host"`
	Port         int           `env:"SERVER_PORT"          yaml:"port"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"  yaml:"read_timeout"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" yaml:"write_timeout"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT"  yaml:"idle_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS"         yaml:"cors_origins"`
	Metrics      bool          `env:"METRICS_ENABLED"      yaml:"metrics"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"              yaml:"host"`
	Port            int           `env:"DB_PORT"              yaml:"port"`
	User            string        `env:"DB_USER"              yaml:"user"`
	Password        string        `env:"DB_PASSWORD"          yaml:"password"`
	DBName          string        `env:"DB_NAME"              yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"           yaml:"sslmode"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    yaml:"max_open_conns"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" yaml:"conn_max_lifetime"`
}

// DSN renders a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL renders the postgres:// form golang-migrate expects.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER"     yaml:"driver"`
	LocalPath string `env:"STORAGE_LOCAL_PATH" yaml:"local_path"`
}

type RedisConfig struct {
	Enabled           bool          `env:"REDIS_ENABLED"             yaml:"enabled"`
	Address           string        `env:"REDIS_ADDRESS"             yaml:"address"`
	Password          string        `env:"REDIS_PASSWORD"            yaml:"password"`
	DB                int           `env:"REDIS_DB"                  yaml:"db"`
	EventStream       string        `env:"REDIS_EVENT_STREAM"        yaml:"event_stream"`
	ActivityKey       string        `env:"REDIS_ACTIVITY_KEY"        yaml:"activity_key"`
	DashboardCacheTTL time.Duration `env:"REDIS_DASHBOARD_CACHE_TTL" yaml:"dashboard_cache_ttl"`
}

type AuthConfig struct {
	JWTSecret          string        `env:"AUTH_JWT_SECRET"            yaml:"jwt_secret"`
	TokenTTL           time.Duration `env:"AUTH_TOKEN_TTL"             yaml:"token_ttl"`
	LoginRatePerMinute int           `env:"AUTH_LOGIN_RATE_PER_MINUTE" yaml:"login_rate_per_minute"`
	LoginBurst         int           `env:"AUTH_LOGIN_BURST"           yaml:"login_burst"`
}

type UploadsConfig struct {
	Bucket          string        `env:"S3_BUCKET"            yaml:"bucket"`
	Region          string        `env:"S3_REGION"            yaml:"region"`
	AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"     yaml:"access_key_id"`
	SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY" yaml:"secret_access_key"`
	Endpoint        string        `env:"S3_ENDPOINT"          yaml:"endpoint"`
	PresignExpiry   time.Duration `env:"S3_PRESIGN_EXPIRY"    yaml:"presign_expiry"`
	MaxImages       int           `env:"UPLOADS_MAX_IMAGES"   yaml:"max_images"`
}

// Enabled reports whether an object store is configured.
func (u UploadsConfig) Enabled() bool {
	return u.Bucket != ""
}

type ScraperConfig struct {
	Timeout   time.Duration `env:"SCRAPER_TIMEOUT"    yaml:"timeout"`
	UserAgent string        `env:"SCRAPER_USER_AGENT" yaml:"user_agent"`
	// AllowPrivate disables the private-network guard; only for local testing.
	AllowPrivate bool `env:"SCRAPER_ALLOW_PRIVATE" yaml:"allow_private"`
}

type SearchConfig struct {
	Enabled  bool     `env:"ELASTICSEARCH_ENABLED"  yaml:"enabled"`
	URLs     []string `env:"ELASTICSEARCH_URLS"     yaml:"urls"`
	Username string   `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	Password string   `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	Index    string   `env:"ELASTICSEARCH_INDEX"    yaml:"index"`
}

// ConsoleConfig configures the `admin` operator console.
type ConsoleConfig struct {
	BaseURL     string `env:"ADMIN_API_URL"      yaml:"base_url"`
	SessionFile string `env:"ADMIN_SESSION_FILE" yaml:"session_file"`
	// Backend is "rest" or "local"; local works directly on storage.local_path.
	Backend string `env:"ADMIN_BACKEND" yaml:"backend"`
}

// Load reads configuration from path, .env files and the environment.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

//nolint:gocognit,cyclop // one branch per default
func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "ai-tools-admin"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "dev"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = defaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = defaultDBUser
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = defaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = defaultDBSSLMode
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverPostgres
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = defaultLocalStoragePath
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddr
	}
	if cfg.Redis.EventStream == "" {
		cfg.Redis.EventStream = defaultEventStream
	}
	if cfg.Redis.ActivityKey == "" {
		cfg.Redis.ActivityKey = defaultActivityKey
	}
	if cfg.Redis.DashboardCacheTTL == 0 {
		cfg.Redis.DashboardCacheTTL = defaultDashboardCacheTTL
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.Auth.LoginRatePerMinute == 0 {
		cfg.Auth.LoginRatePerMinute = defaultLoginRatePerMinute
	}
	if cfg.Auth.LoginBurst == 0 {
		cfg.Auth.LoginBurst = defaultLoginBurst
	}
	if cfg.Uploads.Region == "" {
		cfg.Uploads.Region = defaultS3Region
	}
	if cfg.Uploads.PresignExpiry == 0 {
		cfg.Uploads.PresignExpiry = defaultPresignExpiry
	}
	if cfg.Uploads.MaxImages == 0 {
		cfg.Uploads.MaxImages = defaultMaxImages
	}
	if cfg.Scraper.Timeout == 0 {
		cfg.Scraper.Timeout = defaultScraperTimeout
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = defaultScraperUserAgent
	}
	if cfg.Search.Index == "" {
		cfg.Search.Index = defaultSearchIndex
	}
	if len(cfg.Search.URLs) == 0 {
		cfg.Search.URLs = []string{"http://localhost:9200"}
	}
	if cfg.Console.BaseURL == "" {
		cfg.Console.BaseURL = defaultAPIBaseURL
	}
	if cfg.Console.SessionFile == "" {
		cfg.Console.SessionFile = defaultSessionFile
	}
	if cfg.Console.Backend == "" {
		cfg.Console.Backend = "rest"
	}
}

// Validate checks the settings needed to run the HTTP service.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: "must be between 1 and 65535"}
	}
	if c.Auth.JWTSecret == "" {
		return &ValidationError{Field: "auth.jwt_secret", Message: "is required"}
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return &ValidationError{Field: "database", Message: "host and dbname are required for the postgres driver"}
		}
	case StorageDriverLocal:
		if c.Storage.LocalPath == "" {
			return &ValidationError{Field: "storage.local_path", Message: "is required for the local driver"}
		}
	default:
		return &ValidationError{Field: "storage.driver", Message: fmt.Sprintf("unknown driver %q", c.Storage.Driver)}
	}
	if c.Uploads.MaxImages < 1 || c.Uploads.MaxImages > MaxImagesLimit {
		return &ValidationError{Field: "uploads.max_images", Message: fmt.Sprintf("must be between 1 and %d", MaxImagesLimit)}
	}
	if c.Search.Enabled && len(c.Search.URLs) == 0 {
		return errors.New("search.urls is required when search is enabled")
	}
	return nil
}

// ValidationError names the offending config key.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %s %s", e.Field, e.Message)
}
