package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inventaris.log")

	log, err := New("production", file)
	require.NoError(t, err)
	log.Info("inventaris created")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "inventaris created")
}

func TestNewDevelopment(t *testing.T) {
	log, err := New("development", "")
	require.NoError(t, err)
	assert.NotNil(t, log)
}
