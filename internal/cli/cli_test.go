package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"topiclab/internal/config"
)

func TestLoadAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  dir: from-file\nlog:\n  level: warn\n"), 0644))

	var o Options
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	o.Register(cmd)
	cmd.SetArgs([]string{"--config", path, "--models", "from-flag", "-v"})
	require.NoError(t, cmd.Execute())

	cfg, logger, err := o.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Models.Dir)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "verbose enables debug")
}

func TestLoadDefaults(t *testing.T) {
	o := Options{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")}
	cfg, logger, err := o.Load()
	require.NoError(t, err)
	assert.Equal(t, "models", cfg.Models.Dir)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestLoadBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("training:\n  topics: 0\n"), 0644))

	_, _, err := (&Options{ConfigPath: path}).Load()
	assert.ErrorIs(t, err, config.ErrInvalid)
}
