package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isolated.log")
	l := NewIsolatedLogger(path)

	l.Info("RESOLVER", "cache miss", map[string]interface{}{"user_id": "u-1"})
	l.Debug("RESOLVER", "below file level", nil)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "cache miss", entry["message"])
	assert.Equal(t, "RESOLVER", entry["module"])
	assert.Equal(t, "u-1", entry["details"].(map[string]interface{})["user_id"])
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Error("RELAY", "boom", nil)
		l.Warn("RELAY", "careful", nil)
	})
}
