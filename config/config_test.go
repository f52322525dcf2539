package config_test

import (
	"testing"

	"code.wagernet.io/wager/config"
	"code.wagernet.io/wager/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("Write then read round trips", testRoundTrip)
	t.Run("Write refuses to overwrite", testNoOverwrite)
}

func testRoundTrip(t *testing.T) {
	home := t.TempDir()
	cfg := config.NewDefaultConfig()
	cfg.Owner = "the-owner"
	cfg.Match.Level.Level = logging.DebugLevel

	path, err := config.Write(home, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	got, err := config.Read(home)
	require.NoError(t, err)
	assert.Equal(t, "the-owner", got.Owner)
	assert.Equal(t, logging.DebugLevel, got.Match.Level.Get())
	assert.Equal(t, logging.InfoLevel, got.Ledger.Level.Get())
}

func testNoOverwrite(t *testing.T) {
	home := t.TempDir()
	_, err := config.Write(home, config.NewDefaultConfig())
	require.NoError(t, err)
	_, err = config.Write(home, config.NewDefaultConfig())
	assert.ErrorIs(t, err, config.ErrConfigExists)
}
