package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "masjid"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MASJID_APP_ENV" required:"true"`
	Port         string `envconfig:"MASJID_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MASJID_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MASJID_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MASJID_DB_DSN"`

	Host     string `envconfig:"MASJID_DB_HOST"`
	Port     int    `envconfig:"MASJID_DB_PORT" default:"5432"`
	User     string `envconfig:"MASJID_DB_USER"`
	Password string `envconfig:"MASJID_DB_PASSWORD"`
	Name     string `envconfig:"MASJID_DB_NAME"`
	SSLMode  string `envconfig:"MASJID_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MASJID_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MASJID_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MASJID_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MASJID_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	userInfo := url.User(d.User)
	if d.Password != "" {
		userInfo = url.UserPassword(d.User, d.Password)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MASJID_REDIS_URL"`
	Address      string        `envconfig:"MASJID_REDIS_ADDR"`
	Password     string        `envconfig:"MASJID_REDIS_PASSWORD"`
	DB           int           `envconfig:"MASJID_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MASJID_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MASJID_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MASJID_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MASJID_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MASJID_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MASJID_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MASJID_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MASJID_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"MASJID_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MASJID_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MASJID_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MASJID_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MASJID_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MASJID_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MASJID_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"MASJID_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	ActivityTopic string `envconfig:"MASJID_PUBSUB_ACTIVITY_TOPIC" default:"masjid-activity"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"MASJID_OUTBOX_POLL_INTERVAL" default:"5s"`
	BatchSize    int           `envconfig:"MASJID_OUTBOX_BATCH_SIZE" default:"50"`
}
