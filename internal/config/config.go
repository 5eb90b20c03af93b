// Package config holds the process configuration of the exchange binaries.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/settlement"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	migrationpg "github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/migration-pg"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/redis"
)

// Storage selects where ledger balances and the order journal live.
type Storage string

const (
	// StorageMemory keeps everything in process.
	StorageMemory Storage = "memory"
	// StoragePostgres keeps balances and orders in PostgreSQL.
	StoragePostgres Storage = "postgres"
)

// Config holds the configuration for the application
type Config struct {
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`
	Storage  Storage  `env:"STORAGE" envDefault:"memory"`
	Pairs    []string `env:"PAIRS" envDefault:"WETH/USDC:18"` // BASE/QUOTE:baseDecimals
	Admins   []string `env:"ADMINS" envDefault:"admin"`

	Fees           settlementv1.FeeConfig  `envPrefix:"FEE_"`
	Kafka          KafkaConfig             `envPrefix:"KAFKA_"`
	MatchPublisher KafkaConfig             `envPrefix:"MATCH_PUBLISHER_"`
	Redis          redis.Config            `envPrefix:"REDIS_"`
	Postgres       postgresql.Config       `envPrefix:"POSTGRES_"`
	Migration      migrationpg.Config      `envPrefix:"MIGRATION_"`
	Pebble         settlement.PebbleConfig `envPrefix:"PEBBLE_"`
	HTTP           HTTPConfig              `envPrefix:"HTTP_"`
	Engine         EngineConfig            `envPrefix:"ENGINE_"`
}

// KafkaConfig holds the configuration for Kafka consumer and producer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC"`
	GroupID string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers []string `env:"BROKER" envDefault:"localhost:9092"`
}

// Enabled reports whether a topic is configured.
func (k KafkaConfig) Enabled() bool {
	return k.Topic != "" && len(k.Brokers) > 0
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// EngineConfig configures the command consumer of one pair.
type EngineConfig struct {
	Pair                string        `env:"PAIR"`
	SnapshotInterval    time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"30s"`
	SnapshotOffsetDelta int64         `env:"SNAPSHOT_OFFSET_DELTA" envDefault:"1000"`
}

// ParsePairs decodes the PAIRS entries. The decimals suffix is optional and
// defaults to 0.
func (c *Config) ParsePairs() ([]marketv1.Pair, error) {
	pairs := make([]marketv1.Pair, 0, len(c.Pairs))
	for _, raw := range c.Pairs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		symbol, decimals := raw, int64(0)
		if i := strings.LastIndex(raw, ":"); i >= 0 {
			symbol = raw[:i]
			d, err := strconv.ParseInt(raw[i+1:], 10, 32)
			if err != nil {
				return nil, errors.New(errors.InvalidInput, "PAIRS", fmt.Sprintf("invalid decimals in %q", raw))
			}
			decimals = d
		}

		base, quote, ok := strings.Cut(symbol, "/")
		if !ok {
			return nil, errors.New(errors.InvalidInput, "PAIRS", fmt.Sprintf("pair %q must look like BASE/QUOTE", raw))
		}
		pair, err := marketv1.NewPair(base, quote, int32(decimals))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
