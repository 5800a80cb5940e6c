package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	SMTP         SMTPConfig
	Realtime     RealtimeConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"LOGYSMA_APP_ENV" required:"true"`
	Port         string `envconfig:"LOGYSMA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LOGYSMA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOGYSMA_LOG_WARN_STACK" default:"false"`
	SiteURL      string `envconfig:"LOGYSMA_SITE_URL" default:"https://logysma.com"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LOGYSMA_DB_DSN"`
	Driver string `envconfig:"LOGYSMA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LOGYSMA_DB_HOST"`
	LegacyPort     int    `envconfig:"LOGYSMA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LOGYSMA_DB_USER"`
	LegacyPassword string `envconfig:"LOGYSMA_DB_PASSWORD"`
	LegacyName     string `envconfig:"LOGYSMA_DB_NAME"`
	LegacySSLMode  string `envconfig:"LOGYSMA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LOGYSMA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LOGYSMA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LOGYSMA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOGYSMA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LOGYSMA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LOGYSMA_REDIS_ADDR"`
	Password     string        `envconfig:"LOGYSMA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOGYSMA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOGYSMA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOGYSMA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOGYSMA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOGYSMA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LOGYSMA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SMTPConfig struct {
	Host        string        `envconfig:"LOGYSMA_SMTP_HOST"`
	Port        int           `envconfig:"LOGYSMA_SMTP_PORT" default:"587"`
	Username    string        `envconfig:"LOGYSMA_SMTP_USERNAME"`
	Password    string        `envconfig:"LOGYSMA_SMTP_PASSWORD"`
	From        string        `envconfig:"LOGYSMA_SMTP_FROM"`
	FromName    string        `envconfig:"LOGYSMA_SMTP_FROM_NAME" default:"Logysma"`
	DialTimeout time.Duration `envconfig:"LOGYSMA_SMTP_DIAL_TIMEOUT" default:"30s"`
}

// Enabled reports whether the mail channel is configured at all. Alert mail
// is best-effort, so a blank host simply disables it.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type RealtimeConfig struct {
	WriteWait      time.Duration `envconfig:"LOGYSMA_WS_WRITE_WAIT" default:"10s"`
	PongWait       time.Duration `envconfig:"LOGYSMA_WS_PONG_WAIT" default:"60s"`
	MaxMessageSize int64         `envconfig:"LOGYSMA_WS_MAX_MESSAGE_BYTES" default:"8192"`
	SendBuffer     int           `envconfig:"LOGYSMA_WS_SEND_BUFFER" default:"64"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LOGYSMA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
