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
	Pricing      PricingConfig
	Cron         CronConfig
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
	Env          string `envconfig:"XEROS_APP_ENV" required:"true"`
	Port         string `envconfig:"XEROS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"XEROS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"XEROS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"XEROS_DB_DSN"`
	Driver string `envconfig:"XEROS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"XEROS_DB_HOST"`
	LegacyPort     int    `envconfig:"XEROS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"XEROS_DB_USER"`
	LegacyPassword string `envconfig:"XEROS_DB_PASSWORD"`
	LegacyName     string `envconfig:"XEROS_DB_NAME"`
	LegacySSLMode  string `envconfig:"XEROS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"XEROS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"XEROS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"XEROS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"XEROS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"XEROS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"XEROS_REDIS_ADDR"`
	Password     string        `envconfig:"XEROS_REDIS_PASSWORD"`
	DB           int           `envconfig:"XEROS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"XEROS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"XEROS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"XEROS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"XEROS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"XEROS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig tunes the unit-price resolution pipeline. Rule parameters are
// configuration; the rule order itself is fixed in code.
type PricingConfig struct {
	CacheEnabled               bool          `envconfig:"XEROS_PRICING_CACHE_ENABLED" default:"true"`
	CacheTTL                   time.Duration `envconfig:"XEROS_PRICING_CACHE_TTL" default:"600s"`
	UnverifiedSurchargePercent string        `envconfig:"XEROS_PRICING_UNVERIFIED_SURCHARGE_PERCENT" default:"5"`
	FloorPercent               string        `envconfig:"XEROS_PRICING_FLOOR_PERCENT" default:"0.70"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"XEROS_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"XEROS_CRON_LOCK_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"XEROS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"XEROS_AUTO_MIGRATE" default:"false"`
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
