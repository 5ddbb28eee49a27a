package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fwojciec/compass/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON lines to the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logs", "compass.log")
		logger, cleanup, err := logging.New(path, false)
		require.NoError(t, err)

		logger.Info("session started", zap.String("session_id", "s1"))
		cleanup()

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		line := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)[0]
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "session started", entry["msg"])
		assert.Equal(t, "s1", entry["session_id"])
	})

	t.Run("debug level gated by flag", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "compass.log")
		logger, cleanup, err := logging.New(path, false)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		cleanup()

		logger, cleanup, err = logging.New(path, true)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
		cleanup()
	})
}
