//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func (tf *TUITestFramework) waitExit(t *testing.T) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after quit")
	}
}

func TestConfigSave(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateDeck(3))

	configPath := filepath.Join(workspace, ".config", "pageloop", "config.toml")

	err = tf.StartApp(workspace)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Slide 1 of 3"))

	tf.Next()
	require.True(t, tf.SeePlain("Slide 2 of 3"))
	tf.SendKeys(KeyWrap)
	tf.SendKeys(KeySave)
	require.True(t, tf.SeePlain("Config saved to"), "Should confirm the save")

	tf.Quit()
	tf.waitExit(t)

	configContent, err := os.ReadFile(configPath)
	require.NoError(t, err, "Config file should be created")
	configStr := string(configContent)
	require.Contains(t, configStr, "version = 1")
	require.Contains(t, configStr, "start_page = 1")
	require.Contains(t, configStr, "wrap = false")
}

func TestConfigFileIsUsed(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateDeck(3))

	configPath := filepath.Join(workspace, "custom.toml")
	initialConfig := `version = 1

[deck]
dir = "` + workspace + `"

[scroll]
orientation = "vertical"
start_page = 2
wrap = true
`
	require.NoError(t, os.WriteFile(configPath, []byte(initialConfig), 0644))

	err = tf.StartApp("--config", configPath)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("vertical"), "Title bar should show the orientation")
	require.True(t, tf.SeePlain("Slide 3 of 3"), "Should start on the configured page")

	tf.Quit()
	tf.waitExit(t)

	configContent, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, initialConfig, string(configContent), "Quitting without saving leaves the file alone")
}
