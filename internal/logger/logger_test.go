package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/staffboard/internal/config"
)

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.WithField("person_id", 3).Warn("drift")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "drift", entry["msg"])
	assert.EqualValues(t, 3, entry["person_id"])
}

func TestNew_AppendsToErrorLog(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STAFFBOARD_HOME", home)

	log, closer, err := New(config.DefaultConfig())
	require.NoError(t, err)
	log.Error("import failed")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(filepath.Join(home, "errors.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "import failed")
}
