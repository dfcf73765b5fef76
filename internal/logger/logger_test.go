package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewWith("local", "debug", &bytes.Buffer{}).Logger.GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewWith("local", "warn", &bytes.Buffer{}).Logger.GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWith("local", "", &bytes.Buffer{}).Logger.GetLevel())
}

func TestJSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWith("production", "info", &buf).Component("aggregator")

	log.WithError(errors.New("boom")).Info("fetch failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "aggregator", line["component"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "fetch failed", line["msg"])
}

func TestWithRequest(t *testing.T) {
	log := NewWith("production", "info", &bytes.Buffer{})

	t.Run("keeps client id", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/dashboard", nil)
		r.Header.Set("X-Request-ID", "abc")
		entry := log.WithRequest(r)
		assert.Equal(t, "abc", entry.Data["req_id"])
		assert.Equal(t, "/api/dashboard", entry.Data["path"])
	})

	t.Run("generates id", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		entry := log.WithRequest(r)
		id, _ := entry.Data["req_id"].(string)
		assert.Len(t, id, 36)
		assert.Equal(t, id, RequestID(r))
	})
}
