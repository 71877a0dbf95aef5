package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	t.Run("should display every setting", func(t *testing.T) {
		cfg, translations, path := setupConfigTest(t)
		factory := NewConfigCommandFactory()

		out, err := runConfig(t, factory.CreateCommand(translations, cfg), "config", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "language: en")
		assert.Contains(t, out, "page_retries: 20")
		assert.Contains(t, out, "page_delay_ms: 500")
		assert.Contains(t, out, path)
	})
}
