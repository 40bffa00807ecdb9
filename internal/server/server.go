// Package server exposes the report pipeline over HTTP: draft-only
// extraction endpoints, the upload-and-store batch endpoint, record
// listing and deletion, and retrieval of stored PDF files.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/clinisys/labreports/internal/config"
	"github.com/clinisys/labreports/internal/ingest"
	"github.com/clinisys/labreports/internal/parse"
	"github.com/clinisys/labreports/internal/pdftext"
	"github.com/clinisys/labreports/internal/report"
	"github.com/clinisys/labreports/internal/store"
)

// Server wires the HTTP surface to the pipeline components.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	parser   parse.Parser
	ingestor *ingest.Ingestor
	store    store.Store
	files    *FileStore
	log      zerolog.Logger
}

// New builds a Server with routes registered.
func New(cfg *config.Config, parser parse.Parser, ingestor *ingest.Ingestor, st store.Store, files *FileStore, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		cfg:      cfg,
		parser:   parser,
		ingestor: ingestor,
		store:    st,
		files:    files,
		log:      log.With().Str("component", "server").Logger(),
	}

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.MaxFileSize*2)))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	for _, t := range report.Types() {
		s.echo.POST("/extract-"+string(t), s.handleExtract(t))
	}

	s.echo.POST("/upload-and-store", s.handleUploadAndStore)
	s.echo.GET("/records/:type", s.handleListRecords)
	s.echo.DELETE("/records/:type/:id", s.handleDeleteRecord)
	s.echo.GET("/view-pdf/:token", s.handleViewPDF)
}

// Start runs the server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("address", s.cfg.Address()).Msg("server listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.cfg.Version,
	})
}

// handleExtract parses one uploaded PDF into a draft for the given type
// without touching the record store.
func (s *Server) handleExtract(t report.Type) echo.HandlerFunc {
	return func(c echo.Context) error {
		name, data, err := s.readUpload(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		draft, err := s.parser.Parse(c.Request().Context(), t, name, data)
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, pdftext.ErrNotPDF) {
				status = http.StatusBadRequest
			}
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{"data": draft})
	}
}

// handleUploadAndStore runs a full batch: every part named "file" in the
// multipart form is parsed, deduplicated and stored. The report type
// comes from the "type" form value or query parameter.
func (s *Server) handleUploadAndStore(c echo.Context) error {
	typeName := c.FormValue("type")
	if typeName == "" {
		typeName = c.QueryParam("type")
	}
	t, err := report.ParseType(typeName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	desc, ok := report.DescriptorFor(t)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown report type %q", typeName)})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "expected a multipart form"})
	}
	parts := form.File["file"]
	if len(parts) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no files in upload"})
	}

	files := make([]ingest.File, 0, len(parts))
	for _, part := range parts {
		if part.Size > s.cfg.MaxFileSize {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{
				"error": fmt.Sprintf("file %s exceeds the %d byte limit", part.Filename, s.cfg.MaxFileSize),
			})
		}

		src, err := part.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("failed to open %s", part.Filename)})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("failed to read %s", part.Filename)})
		}

		f := ingest.File{
			Name:        part.Filename,
			ContentType: partContentType(part.Header.Get(echo.HeaderContentType), part.Filename),
			Data:        data,
		}

		// Keep the original PDF so stored records can link back to it.
		if f.ContentType == pdftext.MIMEPDF && s.files != nil {
			if token, err := s.files.Save(data); err == nil {
				f.PDFURL = "/view-pdf/" + token
			} else {
				s.log.Warn().Err(err).Str("file", f.Name).Msg("failed to keep uploaded PDF")
			}
		}
		files = append(files, f)
	}

	var messages []string
	result, err := s.ingestor.IngestBatch(c.Request().Context(), files, desc, func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":     result,
		"messages": messages,
	})
}

func (s *Server) handleListRecords(c echo.Context) error {
	desc, ok := s.descriptorFromPath(c)
	if !ok {
		return nil
	}

	docs, err := s.store.List(c.Request().Context(), desc.Collection)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list records"})
	}

	if patient := c.QueryParam("patient"); patient != "" {
		docs = filterByPatient(docs, patient)
	}

	return c.JSON(http.StatusOK, map[string]any{"data": docs})
}

func (s *Server) handleDeleteRecord(c echo.Context) error {
	desc, ok := s.descriptorFromPath(c)
	if !ok {
		return nil
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "record id is required"})
	}

	if err := s.store.Delete(c.Request().Context(), desc.Collection, id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete record"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleViewPDF(c echo.Context) error {
	path, err := s.files.Path(c.Param("token"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "file not found"})
	}
	c.Response().Header().Set(echo.HeaderContentType, pdftext.MIMEPDF)
	return c.File(path)
}

// descriptorFromPath resolves the :type path parameter, writing the 400
// response itself when the type is unknown.
func (s *Server) descriptorFromPath(c echo.Context) (report.Descriptor, bool) {
	t, err := report.ParseType(c.Param("type"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		return report.Descriptor{}, false
	}
	desc, ok := report.DescriptorFor(t)
	if !ok {
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown report type"})
		return report.Descriptor{}, false
	}
	return desc, true
}

// readUpload pulls the single "file" part out of a multipart request.
func (s *Server) readUpload(c echo.Context) (string, []byte, error) {
	part, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("expected a multipart form with a 'file' part")
	}
	if part.Size > s.cfg.MaxFileSize {
		return "", nil, fmt.Errorf("file %s exceeds the %d byte limit", part.Filename, s.cfg.MaxFileSize)
	}
	src, err := part.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open %s", part.Filename)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s", part.Filename)
	}
	return part.Filename, data, nil
}

// partContentType falls back on the file extension when the part carries
// no content type or only the generic octet-stream default.
func partContentType(header, filename string) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return pdftext.MIMEPDF
	}
	if header != "" {
		return header
	}
	return "application/octet-stream"
}

// filterByPatient keeps documents whose patient name matches the query,
// case-insensitively.
func filterByPatient(docs []store.Document, patient string) []store.Document {
	want := strings.ToLower(patient)
	var out []store.Document
	for _, d := range docs {
		if strings.Contains(strings.ToLower(recordPatientName(d.Data)), want) {
			out = append(out, d)
		}
	}
	return out
}

// recordPatientName pulls the patient's name out of a stored record. The
// field name varies by report type: patientName on the lab panels,
// patient_name on ECG and medical exams, name on chemistry.
func recordPatientName(data map[string]any) string {
	for _, key := range []string{"patientName", "patient_name", "name"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
