package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full service configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// ModelConfig holds the model artifact and label file locations
type ModelConfig struct {
	Path        string `mapstructure:"path"`
	MainClasses string `mapstructure:"main_classes"`
	SubClasses  string `mapstructure:"sub_classes"`
	ONNXLibrary string `mapstructure:"onnx_library"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults and environment variables.
// Every key can be overridden with a FEEDBACK_-prefixed variable, e.g.
// FEEDBACK_MODEL_PATH or FEEDBACK_SERVER_PORT. A .env file in the working
// directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FEEDBACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")

	// Model defaults
	v.SetDefault("model.path", "models/feedback_categorizer.onnx")
	v.SetDefault("model.main_classes", "models/main_category_classes.json")
	v.SetDefault("model.sub_classes", "models/subcategory_classes.json")
	v.SetDefault("model.onnx_library", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
