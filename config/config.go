// SPDX-License-Identifier: MIT

// Package config reads the qsim command line settings from the environment,
// after loading an optional .env file. Library packages never read it; the
// command line turns a Config into functional options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
)

// ErrInvalidConfig is returned by Validate, wrapped with the offending variable.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxQubitLimit caps QSIM_MAX_QUBITS: a dense operator over more qubits does
// not fit in memory.
const MaxQubitLimit = 16

// Config holds the environment settings.
type Config struct {
	LogLevel    string  // QSIM_LOG_LEVEL: debug, info, warn, error
	LogPretty   bool    // QSIM_LOG_PRETTY
	MaxQubits   int     // QSIM_MAX_QUBITS
	Workers     int     // QSIM_WORKERS
	SparseRatio float64 // QSIM_SPARSE_RATIO
	DenseOnly   bool    // QSIM_DENSE_ONLY
	Seed        int64   // QSIM_SEED, 0 = process-global source
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFiles reads the given env files, then the environment. Variables that
// are already set win over the files.
func LoadFiles(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:    getEnv("QSIM_LOG_LEVEL", "info"),
		LogPretty:   getEnvAsBool("QSIM_LOG_PRETTY", false),
		MaxQubits:   getEnvAsInt("QSIM_MAX_QUBITS", 12),
		Workers:     getEnvAsInt("QSIM_WORKERS", matrix.DefaultWorkers()),
		SparseRatio: getEnvAsFloat("QSIM_SPARSE_RATIO", matrix.DefaultSparseRatio),
		DenseOnly:   getEnvAsBool("QSIM_DENSE_ONLY", false),
		Seed:        int64(getEnvAsInt("QSIM_SEED", 0)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and the log level.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("QSIM_LOG_LEVEL=%q: %w", c.LogLevel, ErrInvalidConfig)
	}
	if c.MaxQubits < 1 || c.MaxQubits > MaxQubitLimit {
		return fmt.Errorf("QSIM_MAX_QUBITS=%d, want 1..%d: %w", c.MaxQubits, MaxQubitLimit, ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("QSIM_WORKERS=%d: %w", c.Workers, ErrInvalidConfig)
	}
	if !(c.SparseRatio >= 0 && c.SparseRatio <= 1) {
		return fmt.Errorf("QSIM_SPARSE_RATIO=%v: %w", c.SparseRatio, ErrInvalidConfig)
	}

	return nil
}

// MatrixOptions returns the multiplication settings. Call Validate first;
// the option constructors panic on out-of-range values.
func (c *Config) MatrixOptions() []matrix.Option {
	opts := []matrix.Option{matrix.WithWorkers(c.Workers), matrix.WithSparseRatio(c.SparseRatio)}
	if c.DenseOnly {
		opts = append(opts, matrix.WithDenseOnly())
	}
	return opts
}

// CircuitOptions returns the qubit limit, the matrix settings and l.
func (c *Config) CircuitOptions(l zerolog.Logger) []circuit.Option {
	return []circuit.Option{
		circuit.WithQubitLimit(c.MaxQubits),
		circuit.WithMatrixOptions(c.MatrixOptions()...),
		circuit.WithLogger(l),
	}
}

// Source returns the measurement source: nil (process-global) for seed 0,
// a deterministic generator otherwise.
func (c *Config) Source() qubit.Source {
	if c.Seed == 0 {
		return nil
	}
	return qubit.NewSource(c.Seed)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
