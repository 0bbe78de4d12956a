package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// SnapshotStore selects the durable backend: memory, redis, or mongo.
	SnapshotStore string `env:"SNAPSHOT_STORE, default=memory"`

	Simulator SimulatorConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// SimulatorConfig tunes the artificial unreliability of the directory
// backend. Defaults mirror a flaky remote API: 300-800ms latency, 10% fault
// rate.
type SimulatorConfig struct {
	DelayMin    time.Duration `env:"SIM_DELAY_MIN,    default=300ms"`
	DelayMax    time.Duration `env:"SIM_DELAY_MAX,    default=800ms"`
	FailureRate float64       `env:"SIM_FAILURE_RATE, default=0.1"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=directory_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
