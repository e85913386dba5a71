package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warning"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel(""))
}

func TestLogBookingCreated_JSON(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")
	l.LogBookingCreated(context.Background(), "b-1", "u-1", 4, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Booking Created", entry["msg"])
	assert.Equal(t, "b-1", entry["booking_id"])
	assert.Equal(t, float64(4), entry["seats"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestLevelFiltering(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")
	l.LogBookingsCancelled(context.Background(), "u-1", 1, 3)
	assert.Empty(t, buf.String())

	l.LogBookingConflict(context.Background(), "u-1", 1, errors.New("lost race"))
	assert.Contains(t, buf.String(), "lost race")
}
