package terminology

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// Handler provides REST endpoints for the NAMASTE/ICD-11 crosswalk.
type Handler struct {
	svc      *Service
	dataFile string // default dataset for /ingest-default
}

// NewHandler creates a new terminology handler.
func NewHandler(svc *Service, dataFile string) *Handler {
	return &Handler{svc: svc, dataFile: dataFile}
}

// RegisterRoutes registers crosswalk routes on the root group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/ingest-csv", h.IngestCSV)
	g.POST("/ingest-default", h.IngestDefault)
	g.GET("/codesystem", h.GetCodeSystem)
	g.GET("/conceptmap", h.GetConceptMap)
	g.GET("/search", h.Search)
	g.GET("/translate", h.Translate)
	g.GET("/suggest", h.Suggest)
}

// IngestCSV handles POST /ingest-csv with a multipart CSV upload.
func (h *Handler) IngestCSV(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file upload 'file' is required")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only CSV files are supported")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot open upload: "+err.Error())
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read upload: "+err.Error())
	}

	count, err := h.svc.Ingest(content)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome("file", verr.Reason))
		}
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]int{"ingested": count})
}

// IngestDefault handles POST /ingest-default, loading the configured dataset.
func (h *Handler) IngestDefault(c echo.Context) error {
	if h.dataFile == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Default dataset not configured")
	}
	content, err := os.ReadFile(h.dataFile)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Default dataset not found")
	}
	count, err := h.svc.Ingest(content)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome("file", verr.Reason))
		}
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ingested": count,
		"source":   filepath.Base(h.dataFile),
	})
}

// GetCodeSystem handles GET /codesystem.
func (h *Handler) GetCodeSystem(c echo.Context) error {
	return c.JSON(http.StatusOK, BuildCodeSystem(h.svc.Index()))
}

// GetConceptMap handles GET /conceptmap.
func (h *Handler) GetConceptMap(c echo.Context) error {
	return c.JSON(http.StatusOK, BuildConceptMap(h.svc.Index()))
}

// Search handles GET /search?q=...
func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	result, err := h.svc.Search(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// Translate handles GET /translate?code=...&system=namaste|icd11
func (h *Handler) Translate(c echo.Context) error {
	code := c.QueryParam("code")
	system := c.QueryParam("system")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'code' is required")
	}
	if system != SystemNAMASTE && system != SystemICD11 {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'system' must be 'namaste' or 'icd11'")
	}
	resp, err := h.svc.Translate(code, system)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// Suggest handles GET /suggest?q=...
func (h *Handler) Suggest(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	result, err := h.svc.Suggest(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
