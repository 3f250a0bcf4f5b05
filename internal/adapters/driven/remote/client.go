// Package remote provides the HTTP client for the document QA
// service's REST API. It is a driven adapter implementing
// driven.RemoteService; it translates domain operations into
// request/response exchanges and owns no state beyond its transport.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
	"github.com/docuquery-labs/docuquery-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RemoteService = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	// Conservative pacing; polling plus user actions stay well under it.
	defaultRequestsPerSecond = 10
	defaultBurst             = 5

	userAgent = "docuquery-cli"
)

// Config holds configuration for the remote service client.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8000
	// (required, environment-provided; no production default).
	BaseURL string

	// Timeout bounds each exchange (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained request rate (default: 10).
	RequestsPerSecond float64

	// Burst is the token bucket burst size (default: 5).
	Burst int
}

// Client talks to the document QA service over REST.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a remote service client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote: base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}
	if cfg.Burst == 0 {
		cfg.Burst = defaultBurst
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// documentPayload is the wire shape of a document listing entry.
type documentPayload struct {
	DocID       string `json:"doc_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	TotalChunks int    `json:"total_chunks"`
	TotalPages  int    `json:"total_pages"`
	UploadDate  string `json:"upload_date"`
}

func (p documentPayload) toDomain() domain.Document {
	return domain.Document{
		ID:          p.DocID,
		Name:        p.Name,
		Status:      domain.DocStatus(p.Status),
		TotalChunks: p.TotalChunks,
		TotalPages:  p.TotalPages,
		UploadDate:  p.UploadDate,
	}
}

// ListDocuments returns the full authoritative document listing.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var payload []documentPayload
	if err := c.do(ctx, http.MethodGet, "/api/documents", nil, "", &payload); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(payload))
	for i, p := range payload {
		docs[i] = p.toDomain()
	}
	return docs, nil
}

// uploadResponse is the wire shape of upload and rename results.
type uploadResponse struct {
	DocID  string `json:"doc_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// UploadDocument stores a new PDF via multipart form upload.
func (c *Client) UploadDocument(ctx context.Context, filename string, content []byte) (*driven.UploadReceipt, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form writer: %w", err)
	}

	var payload uploadResponse
	err = c.do(ctx, http.MethodPost, "/api/documents/upload", &body, writer.FormDataContentType(), &payload)
	if err != nil {
		return nil, err
	}

	return &driven.UploadReceipt{
		DocID:  payload.DocID,
		Name:   payload.Name,
		Status: domain.DocStatus(payload.Status),
	}, nil
}

// RenameDocument changes a document's display name.
func (c *Client) RenameDocument(ctx context.Context, docID, name string) (*driven.UploadReceipt, error) {
	reqBody, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("marshal rename request: %w", err)
	}

	var payload uploadResponse
	err = c.do(ctx, http.MethodPatch, "/api/documents/"+docID, bytes.NewReader(reqBody), "application/json", &payload)
	if err != nil {
		return nil, err
	}

	return &driven.UploadReceipt{
		DocID:  payload.DocID,
		Name:   payload.Name,
		Status: domain.DocStatus(payload.Status),
	}, nil
}

// DeleteDocument removes a document and all derived data.
func (c *Client) DeleteDocument(ctx context.Context, docID string) error {
	var payload struct {
		Success bool `json:"success"`
	}
	return c.do(ctx, http.MethodDelete, "/api/documents/"+docID, nil, "", &payload)
}

// queryRequest is the wire shape of a query.
type queryRequest struct {
	Question string      `json:"question"`
	History  []queryTurn `json:"conversation_history"`
	Model    string      `json:"model"`
}

// queryTurn carries role and content only; citations never go back.
type queryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// queryResponse is the wire shape of a query result.
type queryResponse struct {
	Answer  string `json:"answer"`
	Sources []struct {
		DocName       string `json:"doc_name"`
		DocID         string `json:"doc_id"`
		ChunkSequence int    `json:"chunk_sequence"`
		HeadingPath   string `json:"heading_path"`
		SourcePages   string `json:"source_pages"`
	} `json:"sources"`
}

// Query asks a question over the ready documents.
func (c *Client) Query(ctx context.Context, req driven.QueryRequest) (*driven.QueryResult, error) {
	wire := queryRequest{
		Question: req.Question,
		History:  make([]queryTurn, len(req.History)),
		Model:    string(req.Model),
	}
	for i, turn := range req.History {
		wire.History[i] = queryTurn{Role: string(turn.Role), Content: turn.Content}
	}

	reqBody, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal query request: %w", err)
	}

	var payload queryResponse
	err = c.do(ctx, http.MethodPost, "/api/query", bytes.NewReader(reqBody), "application/json", &payload)
	if err != nil {
		return nil, err
	}

	result := &driven.QueryResult{
		Answer:    payload.Answer,
		Citations: make([]domain.Citation, len(payload.Sources)),
	}
	for i, s := range payload.Sources {
		result.Citations[i] = domain.Citation{
			DocName:       s.DocName,
			DocID:         s.DocID,
			ChunkSequence: s.ChunkSequence,
			HeadingPath:   s.HeadingPath,
			SourcePages:   s.SourcePages,
		}
	}
	return result, nil
}

// ViewableDocument returns a short-lived handle for displaying a PDF.
func (c *Client) ViewableDocument(ctx context.Context, docID string) (*driven.ViewableDocument, error) {
	var payload struct {
		URL        string `json:"url"`
		Name       string `json:"name"`
		TotalPages int    `json:"total_pages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/documents/"+docID+"/pdf", nil, "", &payload); err != nil {
		return nil, err
	}

	return &driven.ViewableDocument{
		URL:        payload.URL,
		Name:       payload.Name,
		TotalPages: payload.TotalPages,
	}, nil
}

// PageImage returns a short-lived URL for a page preview image.
func (c *Client) PageImage(ctx context.Context, docID string, page int) (string, error) {
	var payload struct {
		URL string `json:"url"`
	}
	path := fmt.Sprintf("/api/documents/%s/page/%d/image", docID, page)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &payload); err != nil {
		return "", err
	}
	return payload.URL, nil
}

// do performs one exchange: rate limit, send, classify failures, and
// decode the body into out when provided.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	logger.Debug("remote: %s", op)
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 400 {
		return statusError(op, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// statusError classifies a non-success response. Not-found and other
// client errors are domain outcomes; everything else is transport.
func statusError(op string, code int, body []byte) error {
	detail := errorDetail(body)

	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%s: %s: %w", op, detail, domain.ErrNotFound)
	case code >= 400 && code < 500:
		return fmt.Errorf("%s: %s: %w", op, detail, domain.ErrRejected)
	default:
		return &TransportError{Op: op, StatusCode: code, Err: errors.New(detail)}
	}
}

// errorDetail extracts the service's {"detail": ...} message, falling
// back to the raw body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = "no error detail"
	}
	return detail
}
