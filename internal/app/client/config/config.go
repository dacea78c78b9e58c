package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = EnvLocal
	defaultConfigDir     = ".hospitalsched"
	defaultSyncPolicy    = "append"
)

type Config struct {
	Env            string
	ServerAddress  string
	ConfigDir      string
	DataPath       string
	TokenPath      string
	Token          string
	HealthInterval time.Duration
	HealthTimeout  time.Duration
	SyncInterval   time.Duration
	SyncPolicy     string
	// QueuePassphrase включает шифрование очереди на диске.
	QueuePassphrase string
	// Ephemeral очередь только в памяти, задается флагом CLI.
	Ephemeral bool
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("HEALTH_INTERVAL", 30*time.Second)
	viper.SetDefault("HEALTH_TIMEOUT", 5*time.Second)
	viper.SetDefault("SYNC_INTERVAL", time.Duration(0))
	viper.SetDefault("SYNC_POLICY", defaultSyncPolicy)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	dataPath := viper.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, "queue.db")
	}

	config := &Config{
		Env:             viper.GetString("ENV"),
		ServerAddress:   viper.GetString("SERVER_ADDRESS"),
		ConfigDir:       configDir,
		DataPath:        dataPath,
		TokenPath:       filepath.Join(configDir, "token"),
		Token:           viper.GetString("TOKEN"),
		HealthInterval:  viper.GetDuration("HEALTH_INTERVAL"),
		HealthTimeout:   viper.GetDuration("HEALTH_TIMEOUT"),
		SyncInterval:    viper.GetDuration("SYNC_INTERVAL"),
		SyncPolicy:      strings.ToLower(viper.GetString("SYNC_POLICY")),
		QueuePassphrase: viper.GetString("QUEUE_PASSPHRASE"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.HealthTimeout <= 0 {
		return fmt.Errorf("health_timeout должен быть положительным")
	}
	switch c.SyncPolicy {
	case "append", "halt":
	default:
		return fmt.Errorf("sync_policy: неизвестное значение %q", c.SyncPolicy)
	}
	return nil
}

// BaseURL адрес сервера со схемой.
func (c *Config) BaseURL() string {
	addr := strings.TrimRight(c.ServerAddress, "/")
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "http://" + addr
}

// WebSocketURL адрес канала событий.
func (c *Config) WebSocketURL() string {
	base := c.BaseURL()
	if strings.HasPrefix(base, "https://") {
		return "wss://" + strings.TrimPrefix(base, "https://") + "/ws"
	}
	return "ws://" + strings.TrimPrefix(base, "http://") + "/ws"
}

// LoadToken возвращает TOKEN из окружения или сохраненный после login.
func (c *Config) LoadToken() string {
	if c.Token != "" {
		return c.Token
	}
	raw, err := os.ReadFile(c.TokenPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (c *Config) SaveToken(token string) error {
	if err := os.WriteFile(c.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	c.Token = token
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
