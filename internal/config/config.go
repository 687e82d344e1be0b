package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port int
	}
	Database struct {
		Path string
	}
	Uploads struct {
		Dir string
	}
	Templates struct {
		Dir string
	}
	PDF struct {
		WkhtmltopdfPath string
	}
	Auth struct {
		JWTSecret string
	}
	Log struct {
		Mode string
	}
}

// LoadConfig loads the configuration from config.yaml, writing a
// default file on first run.
func LoadConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "data/reportpilot.db")
	viper.SetDefault("uploads.dir", "data/uploads")
	viper.SetDefault("templates.dir", "templates")
	viper.SetDefault("pdf.wkhtmltopdfpath", "")
	viper.SetDefault("auth.jwtsecret", "change-me")
	viper.SetDefault("log.mode", "dev")

	var config Config

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := os.MkdirAll("data", 0755); err != nil {
				fmt.Printf("Warning: Failed to create data directory: %v\n", err)
			}
			if err := viper.SafeWriteConfig(); err != nil {
				fmt.Printf("Warning: Failed to write default config: %v\n", err)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Printf("Error unmarshaling config: %v\n", err)
	}

	return &config
}
