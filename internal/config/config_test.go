package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/safari_test?retryWrites=true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "safari_test", cfg.MongoDB)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
	assert.Len(t, cfg.CORSOrigins, 3)
	assert.False(t, cfg.TrustProxy)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_EXPIRES_IN", "24h")
	t.Setenv("CORS_ORIGIN", "https://umzulu.example, https://admin.umzulu.example")
	t.Setenv("MONGO_DB", "override")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"https://umzulu.example", "https://admin.umzulu.example"}, cfg.CORSOrigins)
	assert.Equal(t, "override", cfg.MongoDB)
	assert.True(t, cfg.TrustProxy)
}

func TestMongoDBFromURI(t *testing.T) {
	assert.Equal(t, "wildtrack", mongoDBFromURI("mongodb://localhost:27017/wildtrack"))
	assert.Equal(t, "a", mongoDBFromURI("mongodb://localhost:27017/a/b"))
	assert.Equal(t, "", mongoDBFromURI("mongodb://localhost:27017"))
}
