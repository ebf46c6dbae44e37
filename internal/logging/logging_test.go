package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskwave/internal/logging"
)

func TestSetup_FileReceivesComponentLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskwave.log")
	logging.Setup(logging.Options{Debug: true, File: path})
	t.Cleanup(func() { logging.Setup(logging.Options{}) })

	logging.Component("tasklist").WithField("count", 2).Debug("fetched tasks")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=tasklist")
	assert.Contains(t, string(data), `msg="fetched tasks"`)
	assert.Contains(t, string(data), "count=2")
}

func TestSetup_Levels(t *testing.T) {
	logging.Setup(logging.Options{Debug: true})
	assert.Equal(t, logrus.DebugLevel, logging.Logger.GetLevel())

	logging.Setup(logging.Options{})
	assert.Equal(t, logrus.InfoLevel, logging.Logger.GetLevel())
}
