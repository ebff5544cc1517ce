package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	cfg.Paths.InputDir = "/in"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory")

	cfg.Paths.OutputDir = "/out"
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("INPUT_DIR", "/data/in")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()
	assert.Equal(t, "/data/in", cfg.Paths.InputDir)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("INPUT_DIR", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := LoadConfig()
	assert.Equal(t, "", cfg.Paths.InputDir)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("CONFIG_ERROR", "bad input", cause)
	assert.Equal(t, "CONFIG_ERROR: bad input: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewAppError("DECODE_ERROR", "no pages", nil)
	assert.Equal(t, "DECODE_ERROR: no pages", bare.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ctx"))

	inner := errors.New("inner")
	wrapped := WrapError(inner, "reading file")
	assert.ErrorIs(t, wrapped, inner)
	assert.Equal(t, "reading file: inner", wrapped.Error())
}
