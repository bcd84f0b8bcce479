package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "APP_ENV", "PORT", "DB_DRIVER", "DB_DSN", "SESSION_SECRET",
		"SESSION_COOKIE", "SESSION_TTL", "SESSION_TOKEN_FORMAT", "BCRYPT_COST",
		"RATE_LIMIT_ATTEMPTS", "RATE_LIMIT_WINDOW", "REDIS_ADDR", "REDIS_DB",
		"TIMEZONE", "CORS_ORIGINS", "TRUSTED_PROXIES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dinedash_session", cfg.Auth.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "jwt", cfg.Auth.TokenFormat)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Auth.SessionSecret)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_SECRET", "x")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "dinedash.yaml")
	yml := "server:\n  port: \"9000\"\nauth:\n  cookie_name: from_file\n  session_ttl: 1h\nrate_limit:\n  attempts: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "from_file", cfg.Auth.CookieName)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 3, cfg.RateLimit.Attempts)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "ten")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("SESSION_TOKEN_FORMAT", "xml")
	_, err = Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_ServerExtras(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://dinedash.example ,")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.2")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://dinedash.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.2"}, cfg.Server.TrustedProxies)
}

func TestString_MasksSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "super-secret-value")
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotContains(t, cfg.String(), "super-secret-value")
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Contains(t, sqliteDSN("app.db"), "app.db?_pragma=")
	assert.Contains(t, sqliteDSN("file:app.db?cache=shared"), "&_pragma=")
}

func TestOpenDB_MigratesSchema(t *testing.T) {
	db, err := OpenDB(DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	for _, table := range []string{"users", "feedback", "menu_items", "orders", "order_items"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}
