package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug().Msg("filtered")
	log.Info().Msg("filtered")
	assert.Empty(t, buf.String())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestSubTagsSubsystem(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug").Sub("dispatch")

	log.Info().Msg("tagged")
	out := buf.String()
	assert.Contains(t, out, "tagged")
	assert.Contains(t, out, "dispatch")
}

func TestFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := FileWriter(dir, "gh-manager.log")
	require.NoError(t, err)

	log := New(w, "info")
	log.Info().Msg("to file")

	data, err := os.ReadFile(filepath.Join(dir, "gh-manager.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "nonsense")

	log.Debug().Msg("filtered")
	assert.Empty(t, buf.String())
	log.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}
