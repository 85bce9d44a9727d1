package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Cleanup   CleanupConfig   `yaml:"cleanup" mapstructure:"cleanup"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CatalogConfig configures the persisted location tree and stage config files.
type CatalogConfig struct {
	TreeFile            string  `yaml:"tree_file" mapstructure:"tree_file"`
	ConfigDir           string  `yaml:"config_dir" mapstructure:"config_dir"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// GeminiConfig holds Google Generative Language API settings. Keys is a
// comma-separated list so several quota pools can be rotated through.
type GeminiConfig struct {
	Keys    string `yaml:"keys" mapstructure:"keys"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// APIKeys splits the comma-separated key list, dropping empty entries.
func (g GeminiConfig) APIKeys() []string {
	var keys []string
	for _, k := range strings.Split(g.Keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// GeneratorConfig configures the generation-merge pipeline.
type GeneratorConfig struct {
	Models        []string `yaml:"models" mapstructure:"models"`
	UnitPauseSecs int      `yaml:"unit_pause_secs" mapstructure:"unit_pause_secs"`
	QuotaWaitMS   int      `yaml:"quota_wait_ms" mapstructure:"quota_wait_ms"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// CleanupConfig configures the provenance cleanup utility.
type CleanupConfig struct {
	ProvenanceMethod string `yaml:"provenance_method" mapstructure:"provenance_method"`
	BatchSize        int    `yaml:"batch_size" mapstructure:"batch_size"`
}

// ServerConfig configures the read-only catalog server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REEFATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.tree_file", "data/locations_seed.json")
	v.SetDefault("catalog.config_dir", "config")
	v.SetDefault("catalog.similarity_threshold", 0.85)
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("generator.models", []string{
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
		"gemma-3-27b-it",
		"gemma-3-12b-it",
		"gemma-3-4b-it",
		"gemma-3-2b-it",
		"gemma-3-1b-it",
	})
	v.SetDefault("generator.unit_pause_secs", 2)
	v.SetDefault("generator.quota_wait_ms", 1000)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "data/reefatlas.db")
	v.SetDefault("cleanup.provenance_method", "gen-batch-v1")
	v.SetDefault("cleanup.batch_size", 500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
