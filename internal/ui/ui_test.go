package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestIsTTY_Nil(t *testing.T) {
	assert.False(t, IsTTY(nil))
}

func TestUseInteractive_ForcePlain(t *testing.T) {
	cfg := NewConfig(&bytes.Buffer{}, WithForcePlain(true))
	assert.False(t, UseInteractive(cfg))
}

func TestUseInteractive_NonTTY(t *testing.T) {
	cfg := NewConfig(&bytes.Buffer{})
	assert.False(t, UseInteractive(cfg))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, DetectCI())
}

func TestNewConfig_Options(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig(&buf, WithForcePlain(true), WithNoColor(true))

	assert.Equal(t, &buf, cfg.Output)
	assert.True(t, cfg.ForcePlain)
	assert.True(t, cfg.NoColor)
}
