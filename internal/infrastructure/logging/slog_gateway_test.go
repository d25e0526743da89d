package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilometers.ai/edit/internal/core/ports"
)

func TestSlogGateway_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	gateway := NewSlogGateway(&buf, ports.LogLevelWarn, "text")

	gateway.Log(ports.LogLevelDebug, "hidden debug", nil)
	gateway.Log(ports.LogLevelInfo, "hidden info", nil)
	gateway.Log(ports.LogLevelWarn, "unable to load plugins", map[string]interface{}{"kind": "plugin_load"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=plugin_load")
}

func TestSlogGateway_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	gateway := NewSlogGateway(&buf, ports.LogLevelDebug, "json")

	gateway.LogError(errors.New("disk full"), "Edit failed", map[string]interface{}{"path": "/w"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "Edit failed", entry["msg"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "/w", entry["path"])
}
