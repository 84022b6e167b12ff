package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/dashboard"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
)

type DashboardHandler struct {
	svc *dashboard.Service
	log logger.Logger
}

func NewDashboardHandler(svc *dashboard.Service, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	dash, err := h.svc.Get(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context(), h.log).Error("Failed to build dashboard", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dash})
}
