package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/clinisys/labreports/internal/extract"
	"github.com/clinisys/labreports/internal/report"
)

// Client calls a remote parse endpoint (`POST <base>/extract-<type>`,
// multipart field `file`). Responses are either the draft object itself or
// `{"error": "..."}`; both are handled here so the pipeline only ever sees
// a draft or an error.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a parse client. The timeout bounds the whole request;
// a hung parse service fails that file instead of stalling the batch.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Parse submits the PDF to the remote endpoint and decodes the draft.
func (c *Client) Parse(ctx context.Context, t report.Type, fileName string, data []byte) (extract.Draft, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/extract-%s", c.baseURL, t)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse request for %s: %w", fileName, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read parse response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("parse service returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode parse response: %w", err)
	}
	if msg, ok := payload["error"].(string); ok && msg != "" {
		return nil, fmt.Errorf("parse service error: %s", msg)
	}

	// Some deployments nest the draft under "data"; others return it flat.
	if data, ok := payload["data"].(map[string]any); ok {
		return extract.Draft(data), nil
	}
	return extract.Draft(payload), nil
}
