package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Load(nil))
	assert.Equal(t, 5*time.Second, c.TimeLimit)
	assert.Equal(t, 10, c.DepthLimit)
	assert.False(t, c.Interactive)
}

func TestLoadFlags(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Load([]string{
		"-time-limit", "250ms",
		"-depth-limit", "0",
		"-debug",
	}))
	assert.Equal(t, 250*time.Millisecond, c.TimeLimit)
	assert.Equal(t, 0, c.DepthLimit)
	assert.True(t, c.Debug)
}
