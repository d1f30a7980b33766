package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values come from a config file or environment variables via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects and configures the photo/measurement record store.
// Driver "mongo" is the real backend; "memory" is the in-process double
// used for local development and tests.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// StorageConfig selects and configures the object store. Provider "s3"
// covers any S3-compatible endpoint (Cloudflare R2, MinIO, AWS itself);
// "memory" is the in-process double.
type StorageConfig struct {
	Provider        string `mapstructure:"provider"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// AuthConfig configures the token verifier. Provider "jwt" verifies HS256
// tokens minted by the auth service; "static" maps fixed bearer tokens to
// user ids (local development only).
type AuthConfig struct {
	Provider        string            `mapstructure:"provider"`
	JWTSecret       string            `mapstructure:"jwt_secret"`
	TokenExpiration time.Duration     `mapstructure:"token_expiration"`
	StaticTokens    map[string]string `mapstructure:"static_tokens"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys map to env vars: storage.access_key_id -> STORAGE_ACCESS_KEY_ID
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.driver", "mongo")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fittrack")
	viper.SetDefault("storage.provider", "s3")
	viper.SetDefault("storage.region", "auto")
	viper.SetDefault("storage.use_ssl", true)
	viper.SetDefault("auth.provider", "jwt")
	viper.SetDefault("auth.token_expiration", "24h")

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file is fine; env vars and defaults carry the load.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
