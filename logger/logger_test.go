package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.InfoLevel, ParseLevel("4"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("5"))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("6"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("2"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("not-a-number"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("42"))
}
