package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Empty(t, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "host=localhost port=5432 user=shareit password=shareit dbname=shareit sslmode=disable", cfg.DBConfig.DSN())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SHAREIT_SERVICE_PORT", ":7000")
	t.Setenv("SHAREIT_DB_HOST", "db")
	t.Setenv("SHAREIT_DB_PORT", "6543")
	t.Setenv("SHAREIT_KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "postgres://shareit:shareit@db:6543/shareit?sslmode=disable", cfg.DBConfig.DatabaseURL())
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("SHAREIT_DB_PORT", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadGateway(t *testing.T) {
	t.Setenv("GATEWAY_SERVER_URL", "http://server:9090")
	cfg, err := LoadGateway()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "http://server:9090", cfg.ServerURL)
}
