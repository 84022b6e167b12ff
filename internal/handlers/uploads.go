package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/content"
	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/importer"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/metadata"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/uploads"
)

const maxImportBytes = 20 << 20

// Presigner issues direct-upload URLs.
type Presigner interface {
	Presign(ctx context.Context, req models.PresignRequest) (*models.PresignResponse, error)
}

// MediaHandler serves the upload, scrape and import endpoints under /contents.
type MediaHandler struct {
	presigner Presigner
	content   *content.Service
	importer  *importer.Importer
	hooks     *Hooks
	log       logger.Logger
}

func NewMediaHandler(
	presigner Presigner,
	svc *content.Service,
	imp *importer.Importer,
	hooks *Hooks,
	log logger.Logger,
) *MediaHandler {
	return &MediaHandler{presigner: presigner, content: svc, importer: imp, hooks: hooks, log: log}
}

// Presign answers {fileName,fileType} with a signed PUT URL.
func (h *MediaHandler) Presign(c *gin.Context) {
	req, err := bindJSON[models.PresignRequest](c)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	resp, err := h.presigner.Presign(c.Request.Context(), *req)
	switch {
	case errors.Is(err, uploads.ErrDisabled):
		respondError(c, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	case errors.Is(err, uploads.ErrNotImage):
		respondError(c, http.StatusBadRequest, "Only image uploads are allowed")
		return
	case err != nil:
		logger.FromContext(c.Request.Context(), h.log).Error("Failed to presign upload",
			logger.String("file_name", req.FileName),
			logger.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	h.hooks.meter().RecordPresign()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Scrape fetches name, description, screenshot and logo for a tool URL.
func (h *MediaHandler) Scrape(c *gin.Context) {
	req, err := bindJSON[models.ScrapeRequest](c)
	if err != nil {
		handleRequestError(c, err)
		return
	}

	resp, err := h.content.Lookup(c.Request.Context(), req.ToolURL)
	switch {
	case errors.Is(err, metadata.ErrInvalidURL), errors.Is(err, metadata.ErrBlockedHost):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.FromContext(c.Request.Context(), h.log).Warn("Tool page scrape failed",
			logger.String("tool_url", req.ToolURL),
			logger.Error(err),
		)
		respondError(c, http.StatusBadGateway, "Failed to fetch tool details")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Import creates content from an uploaded .xlsx file in the "file" field.
func (h *MediaHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A spreadsheet must be uploaded in the \"file\" field")
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		respondError(c, http.StatusBadRequest, "Only .xlsx files can be imported")
		return
	}
	if file.Size > maxImportBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "Spreadsheet is too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read upload")
		return
	}
	defer f.Close()

	res, err := h.importer.Import(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid spreadsheet", "details": err.Error()})
		return
	}

	h.hooks.meter().RecordImport(res.Created, res.Failed)
	if res.Created > 0 {
		h.hooks.written(c, events.Imported, models.ResourceContents, "", file.Filename, events.ImportedPayload{
			FileName: file.Filename,
			Created:  res.Created,
			Failed:   res.Failed,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}
