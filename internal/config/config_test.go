package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "postgres"
host = "db"
dbname = "therapy"
user = "booking"

[logs]
level = "debug"

[engine]
tx_timeout_ms = 2500
isolation_level = "read_committed"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, 2500, cfg.Engine.TxTimeoutMs)
	assert.Equal(t, IsolationReadCommitted, cfg.Engine.IsolationLevel)
	assert.Equal(t, 2500*time.Millisecond, cfg.Engine.TxTimeout())
	assert.True(t, cfg.Engine.RecordPayments)
	assert.Equal(t, "host=db port=5432 user=booking password= dbname=therapy sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "therapy"
`)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "[database]\ndriver = \"mysql\""},
		{"serializable isolation", "[database]\ndriver = \"memory\"\n[engine]\nisolation_level = \"serializable\""},
		{"repeatable read isolation", "[database]\ndriver = \"memory\"\n[engine]\nisolation_level = \"repeatable_read\""},
		{"bad port", "[server]\nhttp_port = 70000\n[database]\ndriver = \"memory\""},
		{"broken toml", "[server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_MemoryDriver(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"
host = ""
seed_file = "seed/slots.json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "seed/slots.json", cfg.Database.SeedFile)
	assert.Equal(t, IsolationReadCommitted, cfg.Engine.IsolationLevel)
}
