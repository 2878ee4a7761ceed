// Package config loads the application configuration from yaml files layered
// over defaults, with environment variable overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"recipebox/internal/server"
)

// Config holds the application configuration.
type Config struct {
	Server  server.Config `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Events  EventsConfig  `yaml:"events"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // mongo, memory
	Mongo   MongoConfig `yaml:"mongo"`
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI               string        `yaml:"uri"`
	Database          string        `yaml:"database"`
	RecipesCollection string        `yaml:"recipes_collection"`
	UsersCollection   string        `yaml:"users_collection"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`
}

// EventsConfig selects and configures the events backend.
type EventsConfig struct {
	Backend string     `yaml:"backend"` // memory, nats
	Buffer  int        `yaml:"buffer"`  // memory backend subscriber buffer
	NATS    NATSConfig `yaml:"nats"`
}

// NATSConfig holds the NATS connection settings.
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: server.DefaultConfig(),
		Storage: StorageConfig{
			Backend: "mongo",
			Mongo: MongoConfig{
				URI:               "mongodb://localhost:27017",
				Database:          "recipebox",
				RecipesCollection: "recipes",
				UsersCollection:   "users",
				ConnectTimeout:    10 * time.Second,
			},
		},
		Events: EventsConfig{
			Backend: "memory",
			Buffer:  64,
			NATS: NATSConfig{
				URL:           "nats://localhost:4222",
				SubjectPrefix: "recipes.events",
			},
		},
		Logging: DefaultLoggingConfig(),
	}
}

// LoadConfig loads configuration from the given directory.
// Order: defaults -> config.yml -> config.local.yml -> env overrides -> validate.
func LoadConfig(dir string) *Config {
	cfg := DefaultConfig()

	loadFile(filepath.Join(dir, "config.yml"), cfg)
	loadFile(filepath.Join(dir, "config.local.yml"), cfg)

	cfg.ApplyDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	return cfg
}

func loadFile(filename string, cfg *Config) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return // File doesn't exist, skip
		}
		log.Printf("Warning: Error reading %s: %v", filename, err)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Printf("Warning: Error parsing %s: %v", filename, err)
	}
}

// ApplyDefaults fills in missing values with defaults.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()

	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Mongo.URI == "" {
		c.Storage.Mongo.URI = defaults.Storage.Mongo.URI
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = defaults.Storage.Mongo.Database
	}
	if c.Storage.Mongo.RecipesCollection == "" {
		c.Storage.Mongo.RecipesCollection = defaults.Storage.Mongo.RecipesCollection
	}
	if c.Storage.Mongo.UsersCollection == "" {
		c.Storage.Mongo.UsersCollection = defaults.Storage.Mongo.UsersCollection
	}
	if c.Storage.Mongo.ConnectTimeout == 0 {
		c.Storage.Mongo.ConnectTimeout = defaults.Storage.Mongo.ConnectTimeout
	}
	if c.Events.Backend == "" {
		c.Events.Backend = defaults.Events.Backend
	}
	if c.Events.Buffer == 0 {
		c.Events.Buffer = defaults.Events.Buffer
	}
	if c.Events.NATS.URL == "" {
		c.Events.NATS.URL = defaults.Events.NATS.URL
	}
	if c.Events.NATS.SubjectPrefix == "" {
		c.Events.NATS.SubjectPrefix = defaults.Events.NATS.SubjectPrefix
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RECIPEBOX_MONGO_URI"); v != "" {
		c.Storage.Mongo.URI = v
	}
	if v := os.Getenv("RECIPEBOX_MONGO_DB"); v != "" {
		c.Storage.Mongo.Database = v
	}
	if v := os.Getenv("RECIPEBOX_NATS_URL"); v != "" {
		c.Events.NATS.URL = v
	}
	if v := os.Getenv("RECIPEBOX_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		} else {
			log.Printf("Warning: invalid RECIPEBOX_HTTP_PORT %q: %v", v, err)
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "mongo", "memory":
	default:
		return fmt.Errorf("invalid storage backend: %s (must be mongo or memory)", c.Storage.Backend)
	}

	switch c.Events.Backend {
	case "memory", "nats":
	default:
		return fmt.Errorf("invalid events backend: %s (must be memory or nats)", c.Events.Backend)
	}

	if c.Storage.Backend == "mongo" && c.Storage.Mongo.URI == "" {
		return fmt.Errorf("storage.mongo.uri cannot be empty")
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}
