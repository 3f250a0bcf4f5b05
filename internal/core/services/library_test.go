package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{
		{ID: "d1", Name: "a.pdf", Status: domain.StatusReady},
		{ID: "d2", Name: "b.pdf", Status: domain.StatusProcessing},
	}}
	lib := NewLibrary(remote)

	docs, err := lib.Refresh(context.Background())

	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Len(t, lib.Snapshot(), 2)

	// A shrunk listing replaces the snapshot wholesale.
	remote.docs = []domain.Document{{ID: "d1", Name: "a.pdf", Status: domain.StatusReady}}
	_, err = lib.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, lib.Snapshot(), 1)
}

func TestRefresh_FailureRetainsSnapshot(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{{ID: "d1", Status: domain.StatusReady}}}
	lib := NewLibrary(remote)
	_, err := lib.Refresh(context.Background())
	require.NoError(t, err)

	remote.listErr = errors.New("connection refused")
	_, err = lib.Refresh(context.Background())

	require.Error(t, err)
	assert.Len(t, lib.Snapshot(), 1, "previous snapshot should survive a failed refresh")
}

func TestUpload_RejectsNonPDFWithoutNetworkCall(t *testing.T) {
	remote := &mockRemote{}
	lib := NewLibrary(remote)

	err := lib.Upload(context.Background(), "notes.txt", []byte("hello"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotPDF)
	assert.Zero(t, remote.uploadCalls)
}

func TestUpload_RejectsEmptyFileWithoutNetworkCall(t *testing.T) {
	remote := &mockRemote{}
	lib := NewLibrary(remote)

	err := lib.Upload(context.Background(), "empty.pdf", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
	assert.Zero(t, remote.uploadCalls)
}

func TestUpload_SendsBaseNameAndRefreshes(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{{ID: "new-doc", Status: domain.StatusUploading}}}
	lib := NewLibrary(remote)

	err := lib.Upload(context.Background(), "/home/me/papers/paper.PDF", []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, 1, remote.uploadCalls)
	assert.Equal(t, "paper.PDF", remote.uploadedName)
	assert.Equal(t, 1, remote.listCalls, "upload should refresh the snapshot")
	assert.Len(t, lib.Snapshot(), 1)
}

func TestRename_BlankNameFailsValidation(t *testing.T) {
	remote := &mockRemote{}
	lib := NewLibrary(remote)

	err := lib.Rename(context.Background(), "d1", "   ")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyName)
	assert.Zero(t, remote.renameCalls)
}

func TestRename_UnchangedNameIsNoOp(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{{ID: "d1", Name: "report.pdf", Status: domain.StatusReady}}}
	lib := NewLibrary(remote)
	_, err := lib.Refresh(context.Background())
	require.NoError(t, err)

	err = lib.Rename(context.Background(), "d1", "report.pdf")

	require.NoError(t, err)
	assert.Zero(t, remote.renameCalls)
}

func TestRename_TrimsAndRefreshes(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{{ID: "d1", Name: "old.pdf", Status: domain.StatusReady}}}
	lib := NewLibrary(remote)

	err := lib.Rename(context.Background(), "d1", "  new.pdf  ")

	require.NoError(t, err)
	assert.Equal(t, "new.pdf", remote.renamedTo)
	assert.Equal(t, 1, remote.listCalls)
}

func TestDelete_NotFoundConverges(t *testing.T) {
	remote := &mockRemote{deleteErr: domain.ErrNotFound}
	lib := NewLibrary(remote)

	err := lib.Delete(context.Background(), "gone")

	require.NoError(t, err, "deleting an already-deleted document is convergence, not failure")
	assert.Equal(t, 1, remote.listCalls)
}

func TestDelete_OtherErrorSurfaces(t *testing.T) {
	remote := &mockRemote{deleteErr: errors.New("boom")}
	lib := NewLibrary(remote)

	err := lib.Delete(context.Background(), "d1")

	require.Error(t, err)
	assert.Zero(t, remote.listCalls, "no refresh after a failed delete")
}

func TestNeedsPolling(t *testing.T) {
	tests := []struct {
		name string
		docs []domain.Document
		want bool
	}{
		{"empty", nil, false},
		{"all terminal", []domain.Document{
			{ID: "a", Status: domain.StatusReady},
			{ID: "b", Status: domain.StatusError},
		}, false},
		{"one processing", []domain.Document{
			{ID: "a", Status: domain.StatusReady},
			{ID: "b", Status: domain.StatusProcessing},
		}, true},
		{"one uploading", []domain.Document{
			{ID: "a", Status: domain.StatusUploading},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &mockRemote{docs: tt.docs}
			lib := NewLibrary(remote)
			_, err := lib.Refresh(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, lib.NeedsPolling())
		})
	}
}

func TestHasReady(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{
		{ID: "a", Status: domain.StatusProcessing},
	}}
	lib := NewLibrary(remote)
	_, err := lib.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, lib.HasReady())

	remote.docs = append(remote.docs, domain.Document{ID: "b", Status: domain.StatusReady})
	_, err = lib.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, lib.HasReady())
}

func TestPollInterval(t *testing.T) {
	lib := NewLibrary(&mockRemote{})
	assert.Equal(t, 3*time.Second, lib.PollInterval())

	lib.SetPollInterval(10 * time.Second)
	assert.Equal(t, 10*time.Second, lib.PollInterval())

	// Sub-second intervals are ignored.
	lib.SetPollInterval(100 * time.Millisecond)
	assert.Equal(t, 10*time.Second, lib.PollInterval())
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	remote := &mockRemote{docs: []domain.Document{{ID: "d1", Name: "a.pdf", Status: domain.StatusReady}}}
	lib := NewLibrary(remote)
	_, err := lib.Refresh(context.Background())
	require.NoError(t, err)

	snap := lib.Snapshot()
	snap[0].Name = "mutated"

	assert.Equal(t, "a.pdf", lib.Snapshot()[0].Name)
}
