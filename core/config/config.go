package config

import (
	"reflect"
	"strings"

	"resource-union/core/database"
	"resource-union/core/logger"
	"resource-union/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Stores holds configuration for the union store composition.
	Stores Stores `mapstructure:"stores"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// Stores configures which member stores make up the union and in which
// order. The order is the fallback search order.
type Stores struct {
	// Order is a comma-separated list of store kinds (local, archive, s3, db).
	Order string `mapstructure:"order" default:"local"`
	// LocalRoot is the root directory of the local store.
	LocalRoot string `mapstructure:"local_root" default:"./data"`
	// ArchivePath is the zip archive backing the archive store.
	ArchivePath string `mapstructure:"archive_path" default:"./resources.zip"`
}

// Kinds returns the configured store kinds in declared order.
func (s Stores) Kinds() []string {
	var kinds []string
	for _, kind := range strings.Split(s.Order, ",") {
		kind = strings.TrimSpace(kind)
		if kind != "" {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. STORES_ORDER -> stores.order)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
