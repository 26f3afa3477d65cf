package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // file, sqlite, postgres, s3, memory
	Dir         string `mapstructure:"dir"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3Prefix    string `mapstructure:"s3_prefix"`
}

type RecipeConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	BrokerList string `mapstructure:"broker_list"`
	Topic      string `mapstructure:"topic"`
}

type ExportConfig struct {
	Format      string `mapstructure:"format"` // json, csv, parquet, postgres
	Path        string `mapstructure:"path"`
	Bucket      string `mapstructure:"bucket"`
	Region      string `mapstructure:"region"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	Table       string `mapstructure:"table"`
	Progress    bool   `mapstructure:"progress"`
}

type Config struct {
	Storage       StorageConfig `mapstructure:"storage"`
	Recipe        RecipeConfig  `mapstructure:"recipe"`
	Kafka         KafkaConfig   `mapstructure:"kafka"`
	Export        ExportConfig  `mapstructure:"export"`
	LogLevel      string        `mapstructure:"log_level"` // off, normal, verbose
	WeightPerCube int           `mapstructure:"weight_per_cube"`
	TargetCount   int           `mapstructure:"target_count"`
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", home+"/.weaning")
	v.SetDefault("storage.sqlite_path", home+"/.weaning/weaning.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_prefix", "weaning/")
	v.SetDefault("recipe.endpoint", "https://generativelanguage.googleapis.com/v1beta/models")
	v.SetDefault("recipe.api_key", "")
	v.SetDefault("recipe.model", "gemini-2.0-flash")
	v.SetDefault("recipe.temperature", 0.4)
	v.SetDefault("recipe.timeout", "60s")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.broker_list", "localhost:9092")
	v.SetDefault("kafka.topic", "weaning.changes")
	v.SetDefault("export.format", "json")
	v.SetDefault("export.path", "meals.jsonl")
	v.SetDefault("export.bucket", "")
	v.SetDefault("export.region", "us-east-1")
	v.SetDefault("export.postgres_dsn", "")
	v.SetDefault("export.table", "meal_history")
	v.SetDefault("export.progress", true)
	v.SetDefault("log_level", "normal")
	v.SetDefault("weight_per_cube", DefaultWeightPerCube)
	v.SetDefault("target_count", DefaultTargetCount)
}

// LoadConfig reads configuration using Viper. A missing config file is not
// an error; defaults and WEANING_* environment variables still apply. A .env
// file in the working directory fills in variables that are not already set.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}
	if v == nil {
		v = viper.GetViper()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".weaning")
	}

	v.SetEnvPrefix("weaning")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the hosted recipe endpoint's conventional variable also works
	_ = v.BindEnv("recipe.api_key", "WEANING_RECIPE_API_KEY", "GEMINI_API_KEY")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.WeightPerCube <= 0 {
		config.WeightPerCube = DefaultWeightPerCube
	}
	if config.TargetCount <= 0 {
		config.TargetCount = DefaultTargetCount
	}
	return &config, nil
}
