// Package handlers implements the admin REST endpoints.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/activity"
	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/events"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/metrics"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// BindError wraps a request that could not be decoded.
type BindError struct{ Err error }

func (e *BindError) Error() string { return e.Err.Error() }
func (e *BindError) Unwrap() error { return e.Err }

func bindJSON[R any](c *gin.Context) (*R, error) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, &BindError{Err: err}
	}
	return &req, nil
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// handleRequestError answers decode and validation failures. It reports
// false when err is neither.
func handleRequestError(c *gin.Context, err error) bool {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verrs})
		return true
	}
	var bindErr *BindError
	if errors.As(err, &bindErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": bindErr.Error()})
		return true
	}
	return false
}

// handleRepositoryError maps storage errors onto status codes.
func handleRepositoryError(c *gin.Context, err error, entity, operation string) {
	switch {
	case handleRequestError(c, err):
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, entity+" not found")
	case errors.Is(err, models.ErrAlreadyExists):
		respondError(c, http.StatusConflict, entity+" already exists")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to "+operation+" "+entity)
	}
}

// actor names the signed-in staff member for activity entries.
func actor(c *gin.Context) string {
	claims, ok := auth.GetClaims(c)
	if !ok {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.UserID
}

// Invalidator drops cached dashboard stats.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Hooks run after every successful mutation. All fields are optional.
type Hooks struct {
	Recorder  *activity.Recorder
	Metrics   *metrics.Metrics
	Dashboard Invalidator
	Log       logger.Logger
}

func (h *Hooks) log() logger.Logger {
	if h == nil || h.Log == nil {
		return logger.NewNop()
	}
	return h.Log
}

// written records a mutation of resource item id.
func (h *Hooks) written(c *gin.Context, eventType events.EventType, resource, id, name string, payload any) {
	if h == nil {
		return
	}
	ctx := c.Request.Context()

	h.Recorder.Record(ctx, eventType, resource, id, name, actor(c), payload)
	h.Metrics.RecordWrite(resource, strings.ToLower(string(eventType)))
	h.Metrics.RecordEvent(string(eventType))
	if h.Dashboard != nil && (resource == models.ResourceContents || resource == models.ResourceUsers) {
		h.Dashboard.Invalidate(ctx)
	}

	logger.FromContext(ctx, h.log()).Info("Record written",
		logger.Resource(resource),
		logger.String("id", id),
		logger.String("event_type", string(eventType)),
	)
}

func (h *Hooks) meter() *metrics.Metrics {
	if h == nil {
		return nil
	}
	return h.Metrics
}
