package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CLOSURES_ACCOUNT_INITIAL_BALANCE
const EnvPrefix = "CLOSURES"

// Config holds all configuration for the application
type Config struct {
	// Environment (development, production, test)
	Environment string `mapstructure:"environment" validate:"oneof=development production test"`

	// Log directory; empty keeps logs on stdout only
	LogDir string `mapstructure:"log_dir"`

	// Number of calls made on the first demo counter
	CounterCalls int `mapstructure:"counter_calls" validate:"gte=0,lte=1000"`

	Car     CarConfig     `mapstructure:"car"`
	Account AccountConfig `mapstructure:"account"`

	// Metrics configuration
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsAddr    string `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
	MetricsPath    string `mapstructure:"metrics_path" validate:"required,startswith=/"`
}

// CarConfig holds the fields the demo car is built from
type CarConfig struct {
	Model          string `mapstructure:"model" validate:"required"`
	Name           string `mapstructure:"name" validate:"required"`
	Color          string `mapstructure:"color" validate:"required"`
	ManufacturedAt string `mapstructure:"manufactured_at" validate:"required"`
}

// AccountConfig holds the demo account settings
type AccountConfig struct {
	InitialBalance float64 `mapstructure:"initial_balance" validate:"gte=0"`
	Currency       string  `mapstructure:"currency"`
	StrictDeposits bool    `mapstructure:"strict_deposits"`
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (*Config, error) {
	v := newViper(path)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	return decode(v)
}

// Watch loads the configuration at path and calls onChange with the fresh
// value every time the file is written. A config that fails to decode or
// validate is passed along as an error and the previous one stays in use.
func Watch(path string, onChange func(*Config, error)) (*Config, error) {
	v := newViper(path)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(decode(v))
	})
	v.WatchConfig()

	return cfg, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	// Set default values
	v.SetDefault("environment", "development")
	v.SetDefault("log_dir", "")
	v.SetDefault("counter_calls", 3)

	// Car defaults
	v.SetDefault("car.model", "Model 1")
	v.SetDefault("car.name", "Toyota")
	v.SetDefault("car.color", "Black")
	v.SetDefault("car.manufactured_at", "24/2025")

	// Account defaults
	v.SetDefault("account.initial_balance", 1000)
	v.SetDefault("account.currency", "₹")
	v.SetDefault("account.strict_deposits", false)

	// Metrics defaults
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("metrics_path", "/metrics")

	// Set config file path
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Override with environment variables if they exist
	// Convert format: account.initial_balance -> CLOSURES_ACCOUNT_INITIAL_BALANCE
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, continue with defaults and environment variables
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
