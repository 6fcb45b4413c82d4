package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DBPath string `mapstructure:"db_path"`
	// Score thresholds per matching policy. The two call paths use
	// different cutoffs on purpose; see the matcher package.
	PrimaryThreshold int  `mapstructure:"primary_threshold"`
	BulkThreshold    int  `mapstructure:"bulk_threshold"`
	LogJSON          bool `mapstructure:"log_json"`
	Debug            bool `mapstructure:"debug"`
}

var AppConfig *Config

// Initialize loads or creates the configuration file
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".kaziflow")
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("db_path", filepath.Join(configDir, "kaziflow.db"))
	viper.SetDefault("primary_threshold", 50)
	viper.SetDefault("bulk_threshold", 60)
	viper.SetDefault("log_json", false)
	viper.SetDefault("debug", false)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Kaziflow Configuration

# Path to the SQLite database
# db_path: /home/you/.kaziflow/kaziflow.db

# Minimum match score for the interactive (primary) matching policy
primary_threshold: 50

# Minimum match score for the bulk auto-matching policy
bulk_threshold: 60

# Logging
log_json: false
debug: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".kaziflow", "config.yaml")
}
