package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_ParsesKnownLevel(t *testing.T) {
	logger := New("warn")
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNew_FallsBackToInfoOnUnknownLevel(t *testing.T) {
	logger := New("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
