package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/rbac"
)

type AuthHandler struct {
	svc     *auth.Service
	limiter *auth.LoginLimiter
	log     logger.Logger
}

// NewAuthHandler accepts a nil limiter.
func NewAuthHandler(svc *auth.Service, limiter *auth.LoginLimiter, log logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, limiter: limiter, log: log}
}

func (h *AuthHandler) Signin(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		respondError(c, http.StatusTooManyRequests, "Too many signin attempts, try again later")
		return
	}

	req, err := bindJSON[models.SigninRequest](c)
	if err != nil {
		handleRequestError(c, err)
		return
	}
	if h.limiter != nil && !h.limiter.Allow("email:"+strings.ToLower(strings.TrimSpace(req.Email))) {
		respondError(c, http.StatusTooManyRequests, "Too many signin attempts, try again later")
		return
	}

	resp, err := h.svc.Signin(c.Request.Context(), *req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error("Signin failed", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Me returns the current account, reloaded from storage.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.svc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "account no longer exists")
			return
		}
		handleRepositoryError(c, err, "Staff user", "get")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.Summary()})
}

// Menu lists the sidebar entries the caller's role may see.
func (h *AuthHandler) Menu(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rbac.VisibleMenu(claims.Role)})
}
