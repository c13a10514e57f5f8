package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Recommend RecommendConfig `yaml:"recommend" mapstructure:"recommend"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// RecommendConfig configures the comparable-property ranking run.
type RecommendConfig struct {
	K              int                `yaml:"k" mapstructure:"k"`
	Output         string             `yaml:"output" mapstructure:"output"`
	CategoryWeight float64            `yaml:"category_weight" mapstructure:"category_weight"`
	Weights        map[string]float64 `yaml:"weights" mapstructure:"weights"` // keys are lowercased by viper
	WeightsFile    string             `yaml:"weights_file" mapstructure:"weights_file"`
	// ClampNegativeAge floors ages from future construction years at 0.
	ClampNegativeAge bool `yaml:"clamp_negative_age" mapstructure:"clamp_negative_age"`
	Concurrency      int  `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from ./config.yaml (if present) and environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory; a named file must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("COMPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("recommend.k", 3)
	v.SetDefault("recommend.output", "recommended_comps.csv")
	v.SetDefault("recommend.category_weight", 0.2)
	v.SetDefault("recommend.weights_file", "")
	v.SetDefault("recommend.clamp_negative_age", false)
	v.SetDefault("recommend.concurrency", 1)

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

// Validate checks the recommend settings.
func (c *Config) Validate() error {
	var errs []string

	r := c.Recommend
	if r.K <= 0 {
		errs = append(errs, fmt.Sprintf("recommend.k must be > 0, got %d", r.K))
	}
	if strings.TrimSpace(r.Output) == "" {
		errs = append(errs, "recommend.output is required")
	}
	if r.CategoryWeight < 0 {
		errs = append(errs, "recommend.category_weight must be >= 0")
	}
	if r.Concurrency < 0 {
		errs = append(errs, "recommend.concurrency must be >= 0")
	}
	for _, name := range slices.Sorted(maps.Keys(r.Weights)) {
		if w := r.Weights[name]; w < 0 {
			errs = append(errs, fmt.Sprintf("recommend.weights.%s must be >= 0", name))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
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
