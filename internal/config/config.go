package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Catalog    CatalogConfig
	Summarizer SummarizerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CatalogConfig struct {
	RelatedLimit       int // products returned by the related-product query
	DescriptionPreview int // characters shown before the expand affordance
}

type SummarizerConfig struct {
	BaseURL           string
	APIKey            string
	Model             string
	RequestsPerMinute int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_RELATED_LIMIT", 3)
	viper.SetDefault("CATALOG_DESCRIPTION_PREVIEW", 200)
	viper.SetDefault("SUMMARIZER_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("SUMMARIZER_MODEL", "gemini-pro")
	viper.SetDefault("SUMMARIZER_REQUESTS_PER_MINUTE", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			RelatedLimit:       viper.GetInt("CATALOG_RELATED_LIMIT"),
			DescriptionPreview: viper.GetInt("CATALOG_DESCRIPTION_PREVIEW"),
		},
		Summarizer: SummarizerConfig{
			BaseURL:           viper.GetString("SUMMARIZER_BASE_URL"),
			APIKey:            viper.GetString("SUMMARIZER_API_KEY"),
			Model:             viper.GetString("SUMMARIZER_MODEL"),
			RequestsPerMinute: viper.GetInt("SUMMARIZER_REQUESTS_PER_MINUTE"),
		},
	}
}
