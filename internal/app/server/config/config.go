package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env       string
	DB        DB
	Server    Server
	Broadcast Broadcast
	AutoGen   AutoGen
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"SERVER_ADDRESS"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// Broadcast настройки рассылки событий подписчикам.
type Broadcast struct {
	Buffer int `env:"BROADCAST_BUFFER"`
}

// AutoGen периодическое создание тестовых записей, 0 отключает генератор.
type AutoGen struct {
	Interval time.Duration `env:"AUTOGEN_INTERVAL"`
}

// UsesPostgres сообщает, настроено ли внешнее хранилище.
func (c *Config) UsesPostgres() bool {
	return c.DB.DatabaseURI != ""
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("env", EnvLocal)
	viper.SetDefault("server_address", ":8080")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("http_read_timeout", 10*time.Second)
	viper.SetDefault("http_write_timeout", 10*time.Second)
	viper.SetDefault("http_shutdown_timeout", 5*time.Second)
	viper.SetDefault("broadcast_buffer", 256)
	viper.SetDefault("autogen_interval", time.Duration(0))

	return &Config{
		Env: viper.GetString("env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      viper.GetString("server_address"),
			ReadTimeout:     viper.GetDuration("http_read_timeout"),
			WriteTimeout:    viper.GetDuration("http_write_timeout"),
			ShutdownTimeout: viper.GetDuration("http_shutdown_timeout"),
		},
		Broadcast: Broadcast{
			Buffer: viper.GetInt("broadcast_buffer"),
		},
		AutoGen: AutoGen{
			Interval: viper.GetDuration("autogen_interval"),
		},
	}
}
