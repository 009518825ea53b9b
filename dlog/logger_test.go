package dlog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())

	prev := logger
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
