package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	SourceWiktionary     = "wiktionary"
	SourceFreeDictionary = "free_dictionary"
	SourceWordsAPI       = "words_api"

	BackendFile  = "file"
	BackendRedis = "redis"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Render     RenderConfig     `mapstructure:"render"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

type DictionaryConfig struct {
	Source         string               `mapstructure:"source" validate:"oneof=wiktionary free_dictionary words_api"`
	TimeoutSeconds int                  `mapstructure:"timeout_seconds" validate:"min=1"`
	Wiktionary     WiktionaryConfig     `mapstructure:"wiktionary"`
	FreeDictionary FreeDictionaryConfig `mapstructure:"free_dictionary"`
	RapidAPI       RapidAPIConfig       `mapstructure:"rapidapi"`
}

func (c DictionaryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type WiktionaryConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type FreeDictionaryConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type RapidAPIConfig struct {
	Host string `mapstructure:"host"`
	Key  string `mapstructure:"key"`
}

type CacheConfig struct {
	Backend         string `mapstructure:"backend" validate:"oneof=file redis"`
	File            string `mapstructure:"file" validate:"required_if=Backend file"`
	RequireExisting bool   `mapstructure:"require_existing"`
	LockAttempts    uint   `mapstructure:"lock_attempts" validate:"min=1"`
	RedisURL        string `mapstructure:"redis_url" validate:"required_if=Backend redis,omitempty,redis_url"`
	RedisKeyPrefix  string `mapstructure:"redis_key_prefix"`
}

type RenderConfig struct {
	Color string `mapstructure:"color" validate:"oneof=auto always never"`
}

type TemplatesConfig struct {
	EntryTemplate string `mapstructure:"entry_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	PDFDirectory string `mapstructure:"pdf_directory"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
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
		v.AddConfigPath("$HOME/.config/lookword")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("dictionary.source", SourceWiktionary)
	v.SetDefault("dictionary.timeout_seconds", 10)
	v.SetDefault("dictionary.wiktionary.base_url", "https://en.wiktionary.org")
	v.SetDefault("dictionary.free_dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.file", filepath.Join("dictionaries", "dictionary.json"))
	v.SetDefault("cache.require_existing", false)
	v.SetDefault("cache.lock_attempts", 10)
	v.SetDefault("cache.redis_key_prefix", "lookword:")
	v.SetDefault("render.color", ColorAuto)
	// empty means the embedded template
	v.SetDefault("templates.entry_template", "")
	v.SetDefault("outputs.pdf_directory", filepath.Join("outputs", "pdf"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	// Secrets come from environment variables only
	if err := v.BindEnv("dictionary.rapidapi.host", "RAPID_API_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("dictionary.rapidapi.key", "RAPID_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("cache.redis_url", "LOOKWORD_REDIS_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOOKWORD_REDIS_URL environment variable: %w", err)
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
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validator.Struct > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
