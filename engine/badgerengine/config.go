package badgerengine

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds BadgerDB engine configuration
type Config struct {
	DataDir    string
	SyncWrites bool
	InMemory   bool // run without a data directory, for tests and ephemeral use
	GCEnabled  bool
}

// FromEnv loads configuration from environment variables with defaults
func FromEnv() Config {
	return Config{
		DataDir:    getEnvString("ENTITYSTORE_DATA_DIR", "./data"),
		SyncWrites: getEnvBool("ENTITYSTORE_SYNC_WRITES", true),
		InMemory:   getEnvBool("ENTITYSTORE_IN_MEMORY", false),
		GCEnabled:  getEnvBool("ENTITYSTORE_GC_ENABLED", true),
	}
}

// Validate validates the configuration
func (c Config) Validate() error {
	if !c.InMemory && c.DataDir == "" {
		return fmt.Errorf("data directory must be set unless running in-memory")
	}
	return nil
}

// getEnvString gets a string environment variable with a default value
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
