package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"`
}

// LoadConfig reads configuration from the environment, with .env taking
// precedence over defaults but not over already-exported variables.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	viper.SetDefault("MONGO_DB", "twitter")
	viper.SetDefault("PORT", "4000")
	viper.SetDefault("APP_ENV", "development")

	return Config{
		MongoURI: viper.GetString("MONGO_URI"),
		MongoDB:  viper.GetString("MONGO_DB"),
		Port:     viper.GetString("PORT"),
		Env:      viper.GetString("APP_ENV"),
	}
}
