//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory to hold a deck
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateSlide writes a markdown slide titled title into the workspace.
// name may contain subdirectories.
func (tf *TUITestFramework) CreateSlide(name, title, body string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create slide directory: %w", err)
	}
	content := fmt.Sprintf("# %s\n\n%s\n", title, body)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write slide: %w", err)
	}
	return path, nil
}

// CreateDeck writes n slides named 01.md, 02.md, ... titled "Slide 1", "Slide 2", ...
func (tf *TUITestFramework) CreateDeck(n int) error {
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("%02d.md", i)
		if _, err := tf.CreateSlide(name, fmt.Sprintf("Slide %d", i), fmt.Sprintf("body of slide %d", i)); err != nil {
			return err
		}
	}
	return nil
}
