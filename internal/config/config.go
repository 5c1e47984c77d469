package config

import "github.com/spf13/viper"

// Config holds all runtime settings. Values come from environment variables
// with sensible defaults so the service starts with zero configuration on
// SQLite.
type Config struct {
	AppPort      string
	DBDriver     string // "sqlite" or "postgres"
	DBDSN        string
	RabbitMQURL  string // empty disables event publishing
	LogLevel     string
	TemplatesDir string
	SeedAdmin    bool
}

// Load reads configuration from the environment via viper.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "userhub.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TEMPLATES_DIR", "./web/templates")
	viper.SetDefault("SEED_ADMIN", true)
	viper.AutomaticEnv()

	return Config{
		AppPort:      viper.GetString("APP_PORT"),
		DBDriver:     viper.GetString("DB_DRIVER"),
		DBDSN:        viper.GetString("DB_DSN"),
		RabbitMQURL:  viper.GetString("RABBITMQ_URL"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		TemplatesDir: viper.GetString("TEMPLATES_DIR"),
		SeedAdmin:    viper.GetBool("SEED_ADMIN"),
	}
}
