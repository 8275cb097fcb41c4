package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagesvc/internal/config"
	"imagesvc/internal/logger"
)

func TestNew_Level(t *testing.T) {
	log, err := logger.New(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestNew_DefaultLevel(t *testing.T) {
	log, err := logger.New(config.LogConfig{Format: "console"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagesvc.log")
	log, err := logger.New(config.LogConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	log.Info().Str("category", "pets").Msg("imageService.UploadSingle: stored")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"pets"`)
	assert.Contains(t, string(data), "imageService.UploadSingle: stored")
}
