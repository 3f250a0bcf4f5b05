package services

import (
	"context"
	"sync"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
)

// mockRemote implements driven.RemoteService for testing. Fields set
// the canned results; call counters record what was exercised.
type mockRemote struct {
	mu sync.Mutex

	docs      []domain.Document
	listErr   error
	listCalls int

	uploadReceipt *driven.UploadReceipt
	uploadErr     error
	uploadCalls   int
	uploadedName  string

	renameReceipt *driven.UploadReceipt
	renameErr     error
	renameCalls   int
	renamedTo     string

	deleteErr   error
	deleteCalls int

	queryResult *driven.QueryResult
	queryErr    error
	queryCalls  int
	lastQuery   driven.QueryRequest
	queryHook   func()

	viewable    *driven.ViewableDocument
	viewableErr error

	pageImageURL string
	pageImageErr error
}

var _ driven.RemoteService = (*mockRemote)(nil)

func (m *mockRemote) ListDocuments(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.docs, nil
}

func (m *mockRemote) UploadDocument(_ context.Context, filename string, _ []byte) (*driven.UploadReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadCalls++
	m.uploadedName = filename
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	if m.uploadReceipt != nil {
		return m.uploadReceipt, nil
	}
	return &driven.UploadReceipt{DocID: "new-doc", Name: filename, Status: domain.StatusUploading}, nil
}

func (m *mockRemote) RenameDocument(_ context.Context, docID, name string) (*driven.UploadReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renameCalls++
	m.renamedTo = name
	if m.renameErr != nil {
		return nil, m.renameErr
	}
	if m.renameReceipt != nil {
		return m.renameReceipt, nil
	}
	return &driven.UploadReceipt{DocID: docID, Name: name, Status: domain.StatusReady}, nil
}

func (m *mockRemote) DeleteDocument(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockRemote) Query(_ context.Context, req driven.QueryRequest) (*driven.QueryResult, error) {
	m.mu.Lock()
	m.queryCalls++
	m.lastQuery = req
	hook := m.queryHook
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if m.queryResult != nil {
		return m.queryResult, nil
	}
	return &driven.QueryResult{Answer: "an answer"}, nil
}

func (m *mockRemote) ViewableDocument(_ context.Context, _ string) (*driven.ViewableDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewableErr != nil {
		return nil, m.viewableErr
	}
	if m.viewable != nil {
		return m.viewable, nil
	}
	return &driven.ViewableDocument{URL: "https://signed.example/doc.pdf", Name: "doc.pdf", TotalPages: 10}, nil
}

func (m *mockRemote) PageImage(_ context.Context, _ string, _ int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pageImageErr != nil {
		return "", m.pageImageErr
	}
	if m.pageImageURL != "" {
		return m.pageImageURL, nil
	}
	return "https://signed.example/page.png", nil
}

// alwaysReady satisfies ReadinessSource.
type alwaysReady struct{ ready bool }

func (a alwaysReady) HasReady() bool { return a.ready }
