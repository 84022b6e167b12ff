// Package api wires handlers onto the /api/v1 route tree.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/handlers"
	"github.com/vinodtana/ai-tools-admin-web/internal/metrics"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/rbac"
)

// Handlers bundles everything the router mounts. Metrics may be nil.
type Handlers struct {
	JWT        *auth.JWTManager
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Media      *handlers.MediaHandler
	Contents   *handlers.Resource[models.Content]
	Categories *handlers.Resource[models.Category]
	Staff      *handlers.Resource[models.ManageUser]
	Users      *handlers.Resource[models.User]
	Contacts   *handlers.Resource[models.Contact]
	Metrics    *metrics.Metrics
}

// Routes returns the setup function for server.Builder.WithRoutes.
func Routes(h Handlers) func(*gin.Engine) {
	return func(router *gin.Engine) {
		if h.Metrics != nil {
			router.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
		}

		v1 := router.Group("/api/v1")
		v1.POST("/auth/signin", h.Auth.Signin)

		protected := v1.Group("")
		protected.Use(auth.Middleware(h.JWT))

		protected.GET("/auth/me", h.Auth.Me)
		protected.GET("/menu", h.Auth.Menu)
		protected.GET("/dashboard", h.Dashboard.Get)

		contents := protected.Group("/contents")
		write := auth.RequirePermission(models.ResourceContents, rbac.ActionWrite)
		contents.POST("/get-presigned-url", write, h.Media.Presign)
		contents.POST("/scrape", write, h.Media.Scrape)
		contents.POST("/import", auth.RequireRole(models.RoleOwner, models.RoleAdmin), h.Media.Import)
		mount(contents, models.ResourceContents, h.Contents)

		mount(protected.Group("/categories"), models.ResourceCategories, h.Categories)
		mount(protected.Group("/manage-users"), models.ResourceStaff, h.Staff)
		mount(protected.Group("/users"), models.ResourceUsers, h.Users)
		mount(protected.Group("/contacts"), models.ResourceContacts, h.Contacts)
	}
}

// mount registers the CRUD routes of r, guarded by the rbac policy for resource.
func mount[T any](g *gin.RouterGroup, resource string, r *handlers.Resource[T]) {
	read := auth.RequirePermission(resource, rbac.ActionRead)
	write := auth.RequirePermission(resource, rbac.ActionWrite)
	del := auth.RequirePermission(resource, rbac.ActionDelete)

	g.GET("", read, r.List)
	g.GET("/:id", read, r.Get)
	g.POST("", write, r.Create)
	g.PUT("/:id", write, r.Update)
	// Toggle answers 405 for resources without an isActive flag.
	g.PATCH("/:id/toggle-status", write, r.Toggle)
	g.DELETE("/:id", del, r.Delete)
}
