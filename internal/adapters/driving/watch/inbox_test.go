package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, in *Inbox) Event {
	t.Helper()

	select {
	case ev := <-in.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for inbox event")
		return Event{}
	}
}

func TestNewInbox_MissingDir(t *testing.T) {
	_, err := NewInbox(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestNewInbox_NotADir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := NewInbox(file)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestInbox_EmitsCreatedPDF(t *testing.T) {
	tmpDir := t.TempDir()
	in, err := NewInbox(tmpDir)
	require.NoError(t, err)
	defer in.Close()

	path := filepath.Join(tmpDir, "dropped.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))

	ev := waitForEvent(t, in)
	require.NoError(t, ev.Err)
	assert.Equal(t, path, ev.Path)
}

func TestInbox_IgnoresNonPDF(t *testing.T) {
	tmpDir := t.TempDir()
	in, err := NewInbox(tmpDir)
	require.NoError(t, err)
	defer in.Close()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "scan.PDF"), []byte("%PDF-1.4"), 0600))

	// Only the PDF should come through, uppercase extension included.
	ev := waitForEvent(t, in)
	require.NoError(t, ev.Err)
	assert.Equal(t, filepath.Join(tmpDir, "scan.PDF"), ev.Path)
}

func TestInbox_CloseIdempotent(t *testing.T) {
	in, err := NewInbox(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, in.Close())
	assert.NoError(t, in.Close())

	// Channel drains and closes after shutdown.
	for range in.Events() {
	}
}

func TestInbox_Dir(t *testing.T) {
	tmpDir := t.TempDir()
	in, err := NewInbox(tmpDir)
	require.NoError(t, err)
	defer in.Close()

	assert.Equal(t, tmpDir, in.Dir())
}
