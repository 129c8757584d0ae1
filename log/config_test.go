package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "log.yml")
	content := `
defaultLevel: debug
filters: "debug:ingest.* info+:*"
`
	assert.NoError(t, os.WriteFile(fn, []byte(content), 0o600))

	cfg, err := LoadConfig(fn)
	assert.NoError(t, err)
	assert.Equal(t, "debug", cfg.DefaultLevel)
	assert.Equal(t, "debug:ingest.* info+:*", cfg.Filters)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("does-not-exist.yml")
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestWithFilters(t *testing.T) {
	filterOpt, err := WithFilters("debug:ingest.* info+:*")
	assert.NoError(t, err)

	var buf bytes.Buffer
	logger := New(&buf, DebugLevel, filterOpt)

	logger.Named("ingest").Named("laps").Debug("kept debug")
	logger.Named("db").Named("docs").Debug("dropped debug")
	logger.Named("db").Named("docs").Info("kept info")

	out := buf.String()
	assert.Contains(t, out, "kept debug")
	assert.NotContains(t, out, "dropped debug")
	assert.Contains(t, out, "kept info")
}

func TestWithFiltersInvalidRules(t *testing.T) {
	_, err := WithFilters("nonsense:")
	assert.Error(t, err)
}
