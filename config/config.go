package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // score-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Postgres struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

type Rooms struct {
	TTL          string `yaml:"ttl"`          // room lifetime, e.g. 24h
	CodeAttempts int    `yaml:"codeAttempts"` // redraws on active-code collision
}

type Sweeper struct {
	Schedule string `yaml:"schedule"` // cron spec, e.g. @hourly
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Postgres Postgres `yaml:"postgres"`
	Rooms    Rooms    `yaml:"rooms"`
	Sweeper  Sweeper  `yaml:"sweeper"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Postgres.DSN == "" {
		c.Postgres.DSN = os.Getenv("DATABASE_URL")
	}
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "score-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Rooms.CodeAttempts <= 0 {
		c.Rooms.CodeAttempts = 5
	}
	if c.Sweeper.Schedule == "" {
		c.Sweeper.Schedule = "@hourly"
	}
	return nil
}

// RoomTTL returns the configured room lifetime, defaulting to one day.
func (c *Config) RoomTTL() time.Duration {
	return parseDurationOr(24*time.Hour, c.Rooms.TTL)
}

func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
