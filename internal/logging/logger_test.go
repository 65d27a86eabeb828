package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/gotanda-lunch/internal/logging"
)

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf, "warn", "json")

	logger.Info().Msg("hidden")
	logger.Warn().Str("restaurant_id", "abc").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"restaurant_id":"abc"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf, "chatty", "json")

	logger.Debug().Msg("debug line")
	logger.Info().Msg("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf, "info", "json")
	ctx := logging.WithLogger(context.Background(), &logger)

	logging.FromContext(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	// A bare context falls back to a logger that discards everything.
	assert.NotPanics(t, func() {
		logging.FromContext(context.Background()).Info().Msg("dropped")
	})
}
