// Package config selects the MongoDB connection profile for the query runner.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

const (
	ModeProduction = "production"

	LocalURI       = "mongodb://127.0.0.1:27017"
	DatabaseName   = "plp_bookstore"
	CollectionName = "books"
)

// Profile describes how to reach the books database.
type Profile struct {
	Name                   string
	URI                    string `validate:"required"`
	Database               string `validate:"required"`
	ServerSelectionTimeout time.Duration
	Timeout                time.Duration
	RetryWrites            bool
	MajorityWrites         bool
}

// Config is built once at process start and passed to whatever needs it.
type Config struct {
	Mode            string
	Mongo           Profile
	RequestTimeout  time.Duration `validate:"gt=0"`
	QueryRate       float64       `validate:"gte=0"`
	RunsDSN         string
	MetricsTextfile string
}

// Select returns the hosted profile when mode is "production" and the local
// profile otherwise. An unset hosted URI is returned as is.
func Select(mode, hostedURI string) Profile {
	if mode == ModeProduction {
		return Profile{
			Name:           "atlas",
			URI:            hostedURI,
			Database:       DatabaseName,
			RetryWrites:    true,
			MajorityWrites: true,
		}
	}
	return Profile{
		Name:                   "local",
		URI:                    LocalURI,
		Database:               DatabaseName,
		ServerSelectionTimeout: 5 * time.Second,
		Timeout:                45 * time.Second,
	}
}

// ClientOptions converts the profile into driver options.
func (p Profile) ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(p.URI).SetAppName("bookstore-queries")
	if p.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(p.ServerSelectionTimeout)
	}
	if p.Timeout > 0 {
		opts.SetTimeout(p.Timeout)
	}
	if p.RetryWrites {
		opts.SetRetryWrites(true)
	}
	if p.MajorityWrites {
		opts.SetWriteConcern(writeconcern.Majority())
	}
	return opts
}

// Load reads the environment (after .env files) and builds a Config.
func Load() (Config, error) {
	loadEnvFiles()

	mode := getEnv("NODE_ENV", os.Getenv("APP_ENV"))
	cfg := Config{
		Mode:            mode,
		Mongo:           Select(mode, os.Getenv("MONGODB_ATLAS_URI")),
		RequestTimeout:  10 * time.Second,
		RunsDSN:         os.Getenv("RUNS_DB_DSN"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}

	if v := os.Getenv("QUERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse QUERY_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("QUERY_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse QUERY_RATE: %w", err)
		}
		cfg.QueryRate = r
	}
	return cfg, nil
}

// Validate reports misconfiguration such as a production mode without
// MONGODB_ATLAS_URI.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid %s configuration: %w", c.Mongo.Name, err)
	}
	return nil
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
