package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvBool(t *testing.T) {
	t.Run("unset uses fallback", func(t *testing.T) {
		assert.False(t, getEnvBool("REMINDER_AUTO_SEND_TEST", false))
		assert.True(t, getEnvBool("REMINDER_AUTO_SEND_TEST", true))
	})

	t.Run("set value wins", func(t *testing.T) {
		t.Setenv("REMINDER_AUTO_SEND_TEST", "true")
		assert.True(t, getEnvBool("REMINDER_AUTO_SEND_TEST", false))
	})

	t.Run("garbage falls back", func(t *testing.T) {
		t.Setenv("REMINDER_AUTO_SEND_TEST", "yes please")
		assert.True(t, getEnvBool("REMINDER_AUTO_SEND_TEST", true))
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("parses numeric value", func(t *testing.T) {
		t.Setenv("REMINDER_OVERDUE_DAYS_TEST", "7")
		assert.Equal(t, 7, getEnvInt("REMINDER_OVERDUE_DAYS_TEST", 1))
	})

	t.Run("non-numeric falls back", func(t *testing.T) {
		t.Setenv("REMINDER_OVERDUE_DAYS_TEST", "week")
		assert.Equal(t, 1, getEnvInt("REMINDER_OVERDUE_DAYS_TEST", 1))
	})
}
