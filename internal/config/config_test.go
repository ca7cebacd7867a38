package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 8, cfg.Schedule.StartHour)
	assert.Equal(t, 18, cfg.Schedule.EndHour)
	assert.Equal(t, 30, cfg.Schedule.SlotMinutes)
	assert.False(t, cfg.IsProduction())
	assert.Contains(t, cfg.Database.DSN, "parseTime=True")
}

func TestLoadConfigInvalidScheduleWindow(t *testing.T) {
	t.Setenv("SCHEDULE_START_HOUR", "18")
	t.Setenv("SCHEDULE_END_HOUR", "8")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigInvalidSlotMinutes(t *testing.T) {
	t.Setenv("SCHEDULE_SLOT_MINUTES", "zero")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
