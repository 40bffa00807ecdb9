package parse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinisys/labreports/internal/report"
)

func TestClientParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/extract-cbc", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "scan.pdf", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"patientName": "Maria Santos", "age": 34},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	draft, err := c.Parse(context.Background(), report.TypeCBC, "scan.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "Maria Santos", draft.String("patientName"))
	assert.Equal(t, 34, draft.Int("age"))
}

func TestClientParseFlatPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"patientName": "Jose Ramos"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	draft, err := c.Parse(context.Background(), report.TypeChem, "x.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "Jose Ramos", draft.String("patientName"))
}

func TestClientParseErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "no usable data"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Parse(context.Background(), report.TypeCBC, "x.pdf", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable data")
}

func TestClientParseNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Parse(context.Background(), report.TypeCBC, "x.pdf", nil)
	assert.Error(t, err)
}

func TestClientParseTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.Parse(context.Background(), report.TypeCBC, "x.pdf", nil)
	assert.Error(t, err)
}
