package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 30, cfg.BanTimerSeconds)
	assert.Equal(t, 30, cfg.PickTimerSeconds)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("BAN_TIMER_SECONDS", "20")
	t.Setenv("PICK_TIMER_SECONDS", "45")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 20, cfg.BanTimerSeconds)
	assert.Equal(t, 45, cfg.PickTimerSeconds)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveTimers(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BAN_TIMER_SECONDS", "0")

	_, err := Load()
	assert.Error(t, err)
}
