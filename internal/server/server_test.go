package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinisys/labreports/internal/config"
	"github.com/clinisys/labreports/internal/extract"
	"github.com/clinisys/labreports/internal/ingest"
	"github.com/clinisys/labreports/internal/pdftext"
	"github.com/clinisys/labreports/internal/report"
	"github.com/clinisys/labreports/internal/store"
)

// fakeParser serves canned drafts so handler tests do not need real PDFs.
// When drafts is set the draft is looked up by file name, otherwise every
// parse returns the single draft.
type fakeParser struct {
	draft  extract.Draft
	drafts map[string]extract.Draft
	err    error
}

func (p *fakeParser) Parse(ctx context.Context, t report.Type, fileName string, data []byte) (extract.Draft, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.drafts != nil {
		return p.drafts[fileName], nil
	}
	return p.draft, nil
}

func testServer(t *testing.T, parser *fakeParser, st store.Store) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StoreBackend = config.StoreMemory
	cfg.DataDirectory = t.TempDir()

	files, err := NewFileStore(cfg.DataDirectory)
	require.NoError(t, err)

	ing := ingest.New(parser, st, nil, time.Second, zerolog.Nop())
	return New(cfg, parser, ing, st, files, zerolog.Nop())
}

func multipartBody(t *testing.T, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestExtractEndpoint(t *testing.T) {
	parser := &fakeParser{draft: extract.Draft{"patientName": "Maria Santos"}}
	srv := testServer(t, parser, store.NewMemory())

	body, contentType := multipartBody(t, "scan.pdf", []byte("%PDF-1.4"), nil)
	req := httptest.NewRequest(http.MethodPost, "/extract-cbc", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Maria Santos", payload.Data["patientName"])
}

func TestExtractEndpointNoUsableData(t *testing.T) {
	parser := &fakeParser{err: extract.ErrNoUsableData}
	srv := testServer(t, parser, store.NewMemory())

	body, contentType := multipartBody(t, "scan.pdf", []byte("%PDF-1.4"), nil)
	req := httptest.NewRequest(http.MethodPost, "/extract-cbc", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestExtractEndpointMissingFile(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/extract-cbc", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadAndStore(t *testing.T) {
	parser := &fakeParser{draft: extract.Draft{"patientName": "Maria Santos", "uniqueId": "ORD-1"}}
	st := store.NewMemory()
	srv := testServer(t, parser, st)

	body, contentType := multipartBody(t, "scan.pdf", []byte("%PDF-1.4"), map[string]string{"type": "cbc"})
	req := httptest.NewRequest(http.MethodPost, "/upload-and-store", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data     ingest.BatchResult `json:"data"`
		Messages []string           `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Data.Uploaded)
	require.Len(t, payload.Data.Records, 1)
	assert.Contains(t, payload.Messages, "Saved Maria Santos")

	// The stored record links back to the retained PDF.
	pdfURL, _ := payload.Data.Records[0].Data["pdfUrl"].(string)
	assert.Contains(t, pdfURL, "/view-pdf/")
}

func TestUploadAndStoreUnknownType(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	body, contentType := multipartBody(t, "scan.pdf", []byte("%PDF-1.4"), map[string]string{"type": "mri"})
	req := httptest.NewRequest(http.MethodPost, "/upload-and-store", body)
	req.Header.Set(echoContentType, contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDeleteRecords(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	id, err := st.Insert(ctx, "cbcRecords", map[string]any{"uniqueId": "ORD-1", "firstname": "Maria"})
	require.NoError(t, err)

	srv := testServer(t, &fakeParser{}, st)

	req := httptest.NewRequest(http.MethodGet, "/records/cbc", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORD-1")

	req = httptest.NewRequest(http.MethodDelete, "/records/cbc/"+id, nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	docs, err := st.List(ctx, "cbcRecords")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestListRecordsPatientFilter(t *testing.T) {
	// Records enter through the upload pipeline so the filter sees the
	// field names the builders actually write.
	parser := &fakeParser{drafts: map[string]extract.Draft{
		"maria.pdf": {"patientName": "Maria Santos", "uniqueId": "ORD-1"},
		"jose.pdf":  {"patientName": "Jose Ramos", "uniqueId": "ORD-2"},
	}}
	srv := testServer(t, parser, store.NewMemory())

	for _, name := range []string{"maria.pdf", "jose.pdf"} {
		body, contentType := multipartBody(t, name, []byte("%PDF-1.4"), map[string]string{"type": "cbc"})
		req := httptest.NewRequest(http.MethodPost, "/upload-and-store", body)
		req.Header.Set(echoContentType, contentType)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/records/cbc?patient=maria", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria Santos")
	assert.NotContains(t, rec.Body.String(), "Jose Ramos")
}

func TestListRecordsPatientFilterSnakeCaseField(t *testing.T) {
	// ECG records store the patient under patient_name rather than
	// patientName; the filter has to match both spellings.
	parser := &fakeParser{drafts: map[string]extract.Draft{
		"maria.pdf": {"patient_name": "Maria Santos", "pid_no": "PID-1"},
		"jose.pdf":  {"patient_name": "Jose Ramos", "pid_no": "PID-2"},
	}}
	srv := testServer(t, parser, store.NewMemory())

	for _, name := range []string{"maria.pdf", "jose.pdf"} {
		body, contentType := multipartBody(t, name, []byte("%PDF-1.4"), map[string]string{"type": "ecg"})
		req := httptest.NewRequest(http.MethodPost, "/upload-and-store", body)
		req.Header.Set(echoContentType, contentType)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/records/ecg?patient=santos", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maria Santos")
	assert.NotContains(t, rec.Body.String(), "Jose Ramos")
}

func TestListRecordsUnknownType(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/records/mri", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewPDF(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	content := []byte("%PDF-1.4 test")
	token, err := srv.files.Save(content)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/view-pdf/"+token, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, pdftext.MIMEPDF, rec.Header().Get("Content-Type"))
}

func TestViewPDFUnknownToken(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/view-pdf/0b7a1ce2-0000-4000-8000-000000000000", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestViewPDFRejectsMalformedToken(t *testing.T) {
	srv := testServer(t, &fakeParser{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/view-pdf/..%2F..%2Fetc%2Fpasswd", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const echoContentType = "Content-Type"
