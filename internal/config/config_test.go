package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  type: memory
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DatabaseTypeMemory, cfg.Database.Type)
	assert.Equal(t, "IDEA", cfg.Idea.ReferencePrefix)
	assert.Equal(t, 5, cfg.Idea.IDMaxAttempts)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ClassificationKeywords(t *testing.T) {
	path := writeConfig(t, `
database:
  type: memory
idea:
  classification:
    automation_keywords: ["macro", "bot"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"macro", "bot"}, cfg.Idea.Classification.AutomationKeywords)
	assert.Empty(t, cfg.Idea.Classification.ProcessKeywords)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  type: sqlite
  path: ideas.sqlite
`)
	t.Setenv("IDEA_MGT_DATABASE_TYPE", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DatabaseTypeMemory, cfg.Database.Type)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "invalid port",
			body:    "server:\n  port: 70000\ndatabase:\n  type: memory\n",
			message: "invalid server port",
		},
		{
			name:    "mysql without hostname",
			body:    "database:\n  type: mysql\n  database: ideas\n",
			message: "database hostname is required",
		},
		{
			name:    "unknown database type",
			body:    "database:\n  type: oracle\n",
			message: "unsupported database type",
		},
		{
			name:    "events without url",
			body:    "database:\n  type: memory\nevents:\n  enabled: true\n",
			message: "nats_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	mysql := DatabaseConfig{
		Type:     DatabaseTypeMySQL,
		User:     "user",
		Password: "pass",
		Hostname: "db",
		Port:     3306,
		Database: "ideas",
	}
	assert.Equal(t, "user:pass@tcp(db:3306)/ideas?parseTime=true&multiStatements=true", mysql.GetDSN())
	assert.Equal(t, "mysql", mysql.DriverName())

	sqlite := DatabaseConfig{Type: DatabaseTypeSQLite, Path: "/tmp/ideas.sqlite"}
	assert.Contains(t, sqlite.GetDSN(), "file:/tmp/ideas.sqlite?")
	assert.Equal(t, "sqlite", sqlite.DriverName())
}

func TestServerConfig_GetServerAddress(t *testing.T) {
	s := ServerConfig{Hostname: "localhost", Port: 8080}
	assert.Equal(t, "localhost:8080", s.GetServerAddress())
}

func TestLoad_JWTEnabledByDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  type: memory\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Security.JWT.Enabled)
	assert.Equal(t, "idea-identity-provider", cfg.Security.JWT.Issuer)
	assert.Error(t, cfg.Security.JWT.Validate())

	t.Setenv("IDEA_MGT_SECURITY_JWT_SECRET", strings.Repeat("s", MinJWTSecretLength))
	cfg, err = Load(writeConfig(t, "database:\n  type: memory\n"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Security.JWT.Validate())
}

func TestJWTConfig_Validate(t *testing.T) {
	assert.Error(t, JWTConfig{Enabled: true, Secret: "short"}.Validate())
	assert.NoError(t, JWTConfig{Enabled: true, Secret: strings.Repeat("s", MinJWTSecretLength)}.Validate())
}
