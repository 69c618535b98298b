package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("POS_DB_DSN", "")
	t.Setenv("POS_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POS_DB_DSN", "user:pass@tcp(localhost:3306)/pos")
	t.Setenv("POS_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.False(t, cfg.AllowRegistration)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}
