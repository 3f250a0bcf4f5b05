package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", client.baseURL)
}

func TestListDocuments_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/documents", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"doc_id": "d1", "name": "report.pdf", "status": "ready", "total_chunks": 12, "total_pages": 4, "upload_date": "2026-08-01T10:00:00Z"},
			{"doc_id": "d2", "name": "notes.pdf", "status": "processing", "total_chunks": 0, "total_pages": 0, "upload_date": "2026-08-02T11:00:00Z"}
		]`))
	})

	docs, err := client.ListDocuments(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "report.pdf", docs[0].Name)
	assert.Equal(t, domain.StatusReady, docs[0].Status)
	assert.Equal(t, 12, docs[0].TotalChunks)
	assert.Equal(t, 4, docs[0].TotalPages)
	assert.Equal(t, domain.StatusProcessing, docs[1].Status)
}

func TestListDocuments_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	docs, err := client.ListDocuments(context.Background())

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUploadDocument_MultipartForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/documents/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "paper.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), content)

		_, _ = w.Write([]byte(`{"doc_id": "d9", "name": "paper.pdf", "status": "uploading"}`))
	})

	receipt, err := client.UploadDocument(context.Background(), "paper.pdf", []byte("%PDF-1.4 fake"))

	require.NoError(t, err)
	assert.Equal(t, "d9", receipt.DocID)
	assert.Equal(t, domain.StatusUploading, receipt.Status)
}

func TestRenameDocument_SendsName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/documents/d1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "renamed.pdf", body["name"])

		_, _ = w.Write([]byte(`{"doc_id": "d1", "name": "renamed.pdf", "status": "ready"}`))
	})

	receipt, err := client.RenameDocument(context.Background(), "d1", "renamed.pdf")

	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", receipt.Name)
}

func TestDeleteDocument_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Document not found"}`))
	})

	err := client.DeleteDocument(context.Background(), "gone")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Document not found")
}

func TestQuery_RoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/query", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is the refund policy?", body["question"])
		assert.Equal(t, "gpt-4o-mini", body["model"])

		history, ok := body["conversation_history"].([]any)
		require.True(t, ok)
		require.Len(t, history, 2)
		first, ok := history[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "user", first["role"])
		// Role and content only on the wire.
		assert.Len(t, first, 2)

		_, _ = w.Write([]byte(`{
			"answer": "Refunds are issued within 30 days.",
			"sources": [
				{"doc_name": "policy.pdf", "doc_id": "d1", "chunk_sequence": 3, "heading_path": "Refunds > Timing", "source_pages": "5-6"}
			]
		}`))
	})

	result, err := client.Query(context.Background(), driven.QueryRequest{
		Question: "What is the refund policy?",
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "hi"},
			{Role: domain.RoleAssistant, Content: "hello"},
		},
		Model: domain.ModelGPT4oMini,
	})

	require.NoError(t, err)
	assert.Equal(t, "Refunds are issued within 30 days.", result.Answer)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "policy.pdf", result.Citations[0].DocName)
	assert.Equal(t, 3, result.Citations[0].ChunkSequence)
	assert.Equal(t, "5-6", result.Citations[0].SourcePages)
}

func TestViewableDocument_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/d1/pdf", r.URL.Path)
		_, _ = w.Write([]byte(`{"url": "https://signed.example/d1.pdf", "name": "report.pdf", "total_pages": 9}`))
	})

	handle, err := client.ViewableDocument(context.Background(), "d1")

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/d1.pdf", handle.URL)
	assert.Equal(t, 9, handle.TotalPages)
}

func TestPageImage_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/d1/page/3/image", r.URL.Path)
		_, _ = w.Write([]byte(`{"url": "https://signed.example/d1-p3.png"}`))
	})

	url, err := client.PageImage(context.Background(), "d1", 3)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/d1-p3.png", url)
}

func TestStatusError_ClientErrorWrapsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Only PDF files are supported"}`))
	})

	_, err := client.UploadDocument(context.Background(), "notes.txt", []byte("x"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRejected)
	assert.Contains(t, err.Error(), "Only PDF files are supported")
}

func TestStatusError_ServerErrorIsTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "boom"}`))
	})

	_, err := client.ListDocuments(context.Background())

	require.Error(t, err)
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrRejected)
}

func TestDo_NetworkFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.ListDocuments(context.Background())

	require.Error(t, err)
	var terr *TransportError
	assert.True(t, errors.As(err, &terr))
}

func TestDo_MalformedBodyIsTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.ListDocuments(context.Background())

	require.Error(t, err)
	var terr *TransportError
	assert.True(t, errors.As(err, &terr))
}

func TestErrorDetail_FallsBackToBody(t *testing.T) {
	assert.Equal(t, "plain failure", errorDetail([]byte("plain failure")))
	assert.Equal(t, "no error detail", errorDetail(nil))
	assert.Equal(t, "bad input", errorDetail([]byte(`{"detail": "bad input"}`)))
}
