package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codemend/codemend/pkg/infra/engines"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Fixer    FixerConfig    `mapstructure:"fixer"`
	Engines  EnginesConfig  `mapstructure:"engines"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// FixerConfig is the orchestrator's configuration surface.
type FixerConfig struct {
	PreferGenerative     bool   `mapstructure:"prefer_generative"`
	DefaultEngine        string `mapstructure:"default_engine"`
	EngineTimeoutSeconds int    `mapstructure:"engine_timeout_seconds"`
}

func (f FixerConfig) EngineTimeout() time.Duration {
	if f.EngineTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(f.EngineTimeoutSeconds) * time.Second
}

// EnginesConfig maps engine id -> backend configuration. Credentials arrive
// as ${VAR} placeholders resolved from the environment at load time; only
// their presence is checked here.
type EnginesConfig struct {
	Engines map[string]engines.Config `mapstructure:"engines"`
}

var globalConfig Config
var enginesConfig EnginesConfig

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	if err := loadConfigFile(configPath, "engines", &enginesConfig); err != nil {
		return fmt.Errorf("could not load engines config file: %w", err)
	}

	// Credentials are referenced as ${VAR} placeholders in the yaml files.
	for id, engine := range enginesConfig.Engines {
		engine.APIKey = os.ExpandEnv(engine.APIKey)
		engine.Region = os.ExpandEnv(engine.Region)
		enginesConfig.Engines[id] = engine
	}

	globalConfig.Engines = enginesConfig

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(out, decodeHook); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Fixer.DefaultEngine == "" {
		globalConfig.Fixer.DefaultEngine = "engineA"
	}
}

func GetConfig() *Config {
	return &globalConfig
}
