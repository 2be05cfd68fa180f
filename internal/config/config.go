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
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Geo    GeoConfig    `yaml:"geo" mapstructure:"geo"`
	Chart  ChartConfig  `yaml:"chart" mapstructure:"chart"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the SQLite dataset store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DataConfig configures survey data loading.
type DataConfig struct {
	Delimiter  string   `yaml:"delimiter" mapstructure:"delimiter"`
	Charset    string   `yaml:"charset" mapstructure:"charset"`
	JoinPolicy string   `yaml:"join_policy" mapstructure:"join_policy"`
	RegionMap  string   `yaml:"region_map" mapstructure:"region_map"`
	Variables  []string `yaml:"variables" mapstructure:"variables"`
}

// GeoConfig configures region geometry loading.
type GeoConfig struct {
	Shapefile string `yaml:"shapefile" mapstructure:"shapefile"`
	NameField string `yaml:"name_field" mapstructure:"name_field"`
}

// ChartConfig configures chart output.
type ChartConfig struct {
	OutDir       string  `yaml:"out_dir" mapstructure:"out_dir"`
	WidthInches  float64 `yaml:"width_inches" mapstructure:"width_inches"`
	HeightInches float64 `yaml:"height_inches" mapstructure:"height_inches"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port           int     `yaml:"port" mapstructure:"port"`
	EventRateLimit float64 `yaml:"event_rate_limit" mapstructure:"event_rate_limit"`
	EventBurst     int     `yaml:"event_burst" mapstructure:"event_burst"`
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
	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "atlas.db")
	v.SetDefault("data.delimiter", ",")
	v.SetDefault("data.charset", "")
	v.SetDefault("data.join_policy", "strict")
	v.SetDefault("data.region_map", "regions.yaml")
	v.SetDefault("data.variables", []string{
		"stflife", "happy", "ppltrst", "trstlgl", "stfeco", "sclmeet", "health",
	})
	v.SetDefault("geo.name_field", "NAME")
	v.SetDefault("chart.out_dir", "charts")
	v.SetDefault("chart.width_inches", 12)
	v.SetDefault("chart.height_inches", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.event_rate_limit", 25)
	v.SetDefault("server.event_burst", 50)
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
