package config

import (
	"reflect"
	"strings"

	"stocktake/core/auth"
	"stocktake/core/cache"
	"stocktake/core/database"
	"stocktake/core/logger"
	"stocktake/core/server"
	"stocktake/core/storage"
	"stocktake/feature/stocktake/registry"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Each section is owned by the package that consumes it.
type Config struct {
	// Server holds HTTP server settings and engine policies.
	Server server.Config `mapstructure:"server"`
	// Auth holds bearer token settings.
	Auth auth.Config `mapstructure:"auth"`
	// Storage holds configuration for the export archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Redis holds configuration for the operator feedback cache.
	Redis cache.Config `mapstructure:"redis"`
	// Registry selects and configures the tool registry backend.
	Registry registry.Config `mapstructure:"registry"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load the .env file next to the working directory, if any
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is normal in production (plain environment variables)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Register every key with its default from the struct tags
	bindValues(v, Config{}, "")

	// 3. Let environment variables override nested keys (e.g. REGISTRY_BASE_URL -> registry.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Decode into the typed sections
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key in Viper
// with the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// Accept a pointer to the struct as well
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Untagged fields are not configuration
		if tag == "" {
			continue
		}

		// Dotted key, e.g. database.max_open_conns
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Nested section: recurse with the extended prefix
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Register even an empty default, otherwise AutomaticEnv never sees the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
