package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EventsDriverNone  = "none"
	EventsDriverRedis = "redis"
	EventsDriverAMQP  = "amqp"
)

// Config holds every setting of the server.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Redis     RedisConfig
	Events    EventsConfig
	Ledger    LedgerConfig
	Reconcile ReconcileConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// RequestTimeout bounds handler execution through chi's Timeout middleware.
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level       string
	Environment string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type EventsConfig struct {
	Driver    string
	RedisList string
	AMQPURL   string
	Exchange  string
}

type LedgerConfig struct {
	Currency string
	BIC      string
}

type ReconcileConfig struct {
	Schedule string
}

// Load reads an optional .env file from path, then environment variables,
// and returns the validated configuration.
func Load(path string) (*Config, error) {
	// a missing .env is fine, the environment is the source of truth
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("server.port"),
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			RequestTimeout: v.GetDuration("http.request_timeout"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Environment: v.GetString("log.environment"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Events: EventsConfig{
			Driver:    strings.ToLower(strings.TrimSpace(v.GetString("events.driver"))),
			RedisList: v.GetString("events.redis_list"),
			AMQPURL:   v.GetString("events.amqp_url"),
			Exchange:  v.GetString("events.exchange"),
		},
		Ledger: LedgerConfig{
			Currency: strings.ToUpper(v.GetString("ledger.currency")),
			BIC:      v.GetString("ledger.bic"),
		},
		Reconcile: ReconcileConfig{
			Schedule: v.GetString("reconcile.schedule"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.request_timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "production")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("events.driver", EventsDriverNone)
	v.SetDefault("events.redis_list", "ledger_events")
	v.SetDefault("events.exchange", "ledger_events")

	v.SetDefault("ledger.currency", "EUR")
	v.SetDefault("ledger.bic", "TINYBANK")

	v.SetDefault("reconcile.schedule", "@every 5m")
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("http.read_timeout", "HTTP_READ_TIMEOUT")
	_ = v.BindEnv("http.write_timeout", "HTTP_WRITE_TIMEOUT")
	_ = v.BindEnv("http.idle_timeout", "HTTP_IDLE_TIMEOUT")
	_ = v.BindEnv("http.request_timeout", "HTTP_REQUEST_TIMEOUT")

	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.environment", "LOG_ENVIRONMENT")

	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("events.driver", "EVENTS_DRIVER")
	_ = v.BindEnv("events.redis_list", "EVENTS_REDIS_LIST")
	_ = v.BindEnv("events.amqp_url", "RABBITMQ_URL")
	_ = v.BindEnv("events.exchange", "EVENTS_EXCHANGE")

	_ = v.BindEnv("ledger.currency", "LEDGER_CURRENCY")
	_ = v.BindEnv("ledger.bic", "LEDGER_BIC")

	_ = v.BindEnv("reconcile.schedule", "RECONCILE_SCHEDULE")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Events.Driver {
	case EventsDriverNone, EventsDriverRedis:
	case EventsDriverAMQP:
		if c.Events.AMQPURL == "" {
			errs = append(errs, errors.New("RABBITMQ_URL is required when EVENTS_DRIVER=amqp"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown events driver %q", c.Events.Driver))
	}

	if len(c.Ledger.Currency) != 3 {
		errs = append(errs, fmt.Errorf("ledger currency must be a 3 letter code, got %q", c.Ledger.Currency))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}

	return errors.Join(errs...)
}
