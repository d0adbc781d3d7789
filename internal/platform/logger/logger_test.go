package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("whatever"))
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: logrus.InfoLevel, Format: FormatJSON, App: "equine-clinic", Output: &buf})

	log.With(map[string]any{"request_id": "r-1"}).Info("invoice issued", map[string]any{
		"number": "F-2024-0001",
		"err":    errors.New("boom"),
		"":       "dropped",
	})
	log.Debug("hidden", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "invoice issued", entry["msg"])
	assert.Equal(t, "equine-clinic", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "F-2024-0001", entry["number"])
	assert.Equal(t, "boom", entry["err"])
	_, hasEmpty := entry[""]
	assert.False(t, hasEmpty)
}
