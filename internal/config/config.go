package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the key/value connection string understood by the GORM postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// DatabaseURL returns the URL form used by golang-migrate.
func (c DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// KafkaConfig holds broker settings. An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers []string
}

// ServiceConfig holds all configuration for the rental server.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MigrationsDir string
	DBConfig      DatabaseConfig
	KafkaConfig   KafkaConfig
}

// GatewayConfig holds configuration for the validating gateway.
type GatewayConfig struct {
	Port      string
	AppEnv    string
	ServerURL string
}

// Load reads server configuration from the environment (prefix SHAREIT_) and an optional .env file.
func Load() (*ServiceConfig, error) {
	v := newViper("SHAREIT")
	v.SetDefault("SERVICE_PORT", "9090")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "shareit")
	v.SetDefault("DB_PASSWORD", "shareit")
	v.SetDefault("DB_NAME", "shareit")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "")

	cfg := &ServiceConfig{
		Port:          servicePort(v.GetString("SERVICE_PORT")),
		AppEnv:        v.GetString("APP_ENV"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
		},
	}
	if cfg.DBConfig.Port <= 0 {
		return nil, fmt.Errorf("invalid SHAREIT_DB_PORT: %d", cfg.DBConfig.Port)
	}
	return cfg, nil
}

// LoadGateway reads gateway configuration from the environment (prefix GATEWAY_).
func LoadGateway() (*GatewayConfig, error) {
	v := newViper("GATEWAY")
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("SERVER_URL", "http://localhost:9090")

	cfg := &GatewayConfig{
		Port:      servicePort(v.GetString("SERVICE_PORT")),
		AppEnv:    v.GetString("APP_ENV"),
		ServerURL: v.GetString("SERVER_URL"),
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("GATEWAY_SERVER_URL is required")
	}
	return cfg, nil
}

func newViper(prefix string) *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	return v
}

func servicePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
