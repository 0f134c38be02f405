package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database     DatabaseConfig     `mapstructure:"database"`
	Session      SessionConfig      `mapstructure:"session"`
	Entitlement  EntitlementConfig  `mapstructure:"entitlement"`
	Import       ImportConfig       `mapstructure:"import"`
	Reminder     ReminderConfig     `mapstructure:"reminder"`
	Outputs      OutputsConfig      `mapstructure:"outputs"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
}

type DatabaseConfig struct {
	Driver               string            `mapstructure:"driver" validate:"oneof=sqlite3 mysql postgres"`
	Path                 string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	Host                 string            `mapstructure:"host"`
	Port                 int               `mapstructure:"port"`
	Database             string            `mapstructure:"database"`
	Username             string            `mapstructure:"username"`
	Password             string            `mapstructure:"password"`
	TLS                  bool              `mapstructure:"tls"`
	Params               map[string]string `mapstructure:"params"`
	MaxOpenConns         int               `mapstructure:"max_open_conns"`
	MaxIdleConns         int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime      int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectRetryAttempts uint              `mapstructure:"connect_retry_attempts" validate:"min=1"`
}

type SessionConfig struct {
	// HistorySize is how many recently shown items are kept out of the next pick.
	HistorySize int `mapstructure:"history_size" validate:"min=1"`
}

type EntitlementConfig struct {
	Tier string `mapstructure:"tier" validate:"oneof=free premium"`
	// UnlockedLevels overrides the levels granted by Tier when not empty.
	UnlockedLevels []string `mapstructure:"unlocked_levels" validate:"dive,oneof=A1 A2 B1 B2"`
}

type ImportConfig struct {
	Source       string `mapstructure:"source" validate:"omitempty,file|url"`
	DefaultLevel string `mapstructure:"default_level" validate:"oneof=A1 A2 B1 B2"`
}

type ReminderConfig struct {
	IntervalMinutes int    `mapstructure:"interval_minutes" validate:"min=1"`
	MetricsAddress  string `mapstructure:"metrics_address"`
	// PushgatewayURL receives the counters of short-lived commands such as study and reset.
	PushgatewayURL string `mapstructure:"pushgateway_url" validate:"omitempty,url"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
	// TemplatePath replaces the embedded progress report template when set.
	TemplatePath string `mapstructure:"template_path" validate:"omitempty,file"`
}

type DictionariesConfig struct {
	RapidAPI RapidAPIConfig `mapstructure:"rapidapi"`
}

type RapidAPIConfig struct {
	CacheDirectory string `mapstructure:"cache_directory"`
	Host           string `mapstructure:"host"`
	Key            string `mapstructure:"key"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordcycle")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "wordcycle.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wordcycle")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_retry_attempts", 3)
	v.SetDefault("session.history_size", 10)
	v.SetDefault("entitlement.tier", "free")
	v.SetDefault("import.default_level", "B2")
	v.SetDefault("reminder.interval_minutes", 60)
	v.SetDefault("reminder.metrics_address", ":9090")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "report"))
	v.SetDefault("dictionaries.rapidapi.cache_directory", filepath.Join("dictionaries", "rapidapi"))
	v.SetDefault("dictionaries.rapidapi.host", "wordsapiv1.p.rapidapi.com")

	// Secrets and deployment switches are read from the environment only
	if err := v.BindEnv("database.password", "WORDCYCLE_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDCYCLE_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("database.driver", "WORDCYCLE_DB_DRIVER"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDCYCLE_DB_DRIVER environment variable: %w", err)
	}
	if err := v.BindEnv("entitlement.tier", "WORDCYCLE_TIER"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDCYCLE_TIER environment variable: %w", err)
	}

	if err := v.BindEnv("dictionaries.rapidapi.host", "RAPID_API_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.rapidapi.key", "RAPID_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
