//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// seeAfter waits until later is printed after the last occurrence of earlier
func (tf *TUITestFramework) seeAfter(earlier, later string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.LastIndex(plain, later) > strings.LastIndex(plain, earlier)
	}, 3*time.Second)
}

func TestKeyboardNavigation(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateDeck(3))

	require.NoError(t, tf.StartApp(workspace), "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("pageloop"), "Should show pageloop title")
	require.True(t, tf.SeePlain("Slide 1 of 3"))

	tf.Next()
	require.True(t, tf.SeePlain("Slide 2 of 3"), "Next should move one page")
	require.True(t, tf.SeePlain("body of slide 2"))

	tf.Next()
	require.True(t, tf.SeePlain("Slide 3 of 3"))
	tf.Next()
	require.True(t, tf.seeAfter("Slide 3 of 3", "Slide 1 of 3"), "Should wrap from the last page to the first")
}

func TestKeyboardNavigationNoWrap(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateDeck(3))

	require.NoError(t, tf.StartApp("--no-wrap", workspace), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("no-wrap"), "Title bar should show the wrap mode")
	require.True(t, tf.SeePlain("Slide 1 of 3"))

	tf.SendKeys(KeyLast)
	require.True(t, tf.SeePlain("Slide 3 of 3"))

	tf.Next()
	tf.Previous()
	require.True(t, tf.SeePlain("Slide 2 of 3"), "Next at the last page should do nothing")
}

func TestAutoScroll(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.CreateDeck(3))

	require.NoError(t, tf.StartApp("--interval", "300ms", workspace), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Slide 1 of 3"))

	tf.ToggleAutoScroll()
	require.True(t, tf.SeePlain("▶ auto"), "Title bar should show auto-scrolling")
	require.True(t, tf.SeePlain("Slide 2 of 3"), "Should advance on its own")
}
