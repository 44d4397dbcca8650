package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "booking"
password = "secret"
dbname = "detailing"

[customer_service]
url = "http://customer-service:8081"

[metrics]
enabled = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Contains(t, cfg.Database.DSN(), "host=localhost")
	assert.Contains(t, cfg.Database.DSN(), "dbname=detailing")
}

func TestLoad_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "booking"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "booking"
dbname = "detailing"

[customer_service]
url = "http://customer-service:8081"
`)

	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_RedisRequiresAddr(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "booking"
dbname = "detailing"

[customer_service]
url = "http://customer-service:8081"

[redis]
enabled = true
`)

	_, err := Load(path)
	assert.Error(t, err)
}
