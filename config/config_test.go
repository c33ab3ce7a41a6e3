package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTConfig_ParseTTLs(t *testing.T) {
	cfg := JWTConfig{
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "24h",
	}

	access, err := cfg.ParseAccessTokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, access)

	refresh, err := cfg.ParseRefreshTokenTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, refresh)
}

func TestJWTConfig_RefreshRecordTTLDefaultsToSevenDays(t *testing.T) {
	ttl, err := JWTConfig{}.ParseRefreshRecordTTL()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)
}

func TestJWTConfig_RejectsInvalidTTL(t *testing.T) {
	_, err := JWTConfig{AccessTokenTTL: "soon"}.ParseAccessTokenTTL()
	assert.Error(t, err)

	_, err = JWTConfig{AccessTokenTTL: "-5m"}.ParseAccessTokenTTL()
	assert.Error(t, err)
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_MalformedServerAddressRejected(t *testing.T) {
	path := writeConfigFile(t, "server:\n  host: \"0.0.0.0\"\n  port: \"8080\"\n")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SERVER_ADDRESS", "no-port-here")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_ADDRESS")
}

func TestLoad_ServerAddressOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  host: \"0.0.0.0\"\n  port: \"8080\"\n")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
}
