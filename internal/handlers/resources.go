package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vinodtana/ai-tools-admin-web/internal/content"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/records"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// NewContentResource serves tools, prompts, articles, news and influencers.
func NewContentResource(repo repository.ContentRepository, svc *content.Service, hooks *Hooks) *Resource[models.Content] {
	return NewResource[models.Content]("Content", models.ResourceContents, repo, bindWith(svc.Prepare),
		func(rec *models.Content) (string, string) { return rec.ID, rec.Name }, hooks).
		WithActive(func(rec *models.Content) bool { return rec.IsActive }).
		WithFilter(contentFilter)
}

func contentFilter(c *gin.Context, f *repository.ListFilter) error {
	var cf models.ContentFilter
	if err := c.ShouldBindQuery(&cf); err != nil {
		return err
	}
	if cf.Type != "" && !cf.Type.Valid() {
		return fmt.Errorf("unknown content type %q", cf.Type)
	}
	if cf.Status != "" && !cf.Status.Valid() {
		return fmt.Errorf("unknown status %q", cf.Status)
	}
	f.Type = cf.Type
	f.Status = string(cf.Status)
	f.IsActive = cf.IsActive
	return nil
}

func activeFilter(c *gin.Context, f *repository.ListFilter) error {
	var q struct {
		Status   models.Status `form:"status"`
		IsActive *bool         `form:"isActive"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		return err
	}
	f.Status = string(q.Status)
	f.IsActive = q.IsActive
	return nil
}

// NewCategoryResource serves categories.
func NewCategoryResource(repo repository.CategoryRepository, hooks *Hooks) *Resource[models.Category] {
	return NewResource[models.Category]("Category", models.ResourceCategories, repo, bindWith(records.Category),
		func(rec *models.Category) (string, string) { return rec.ID, rec.Name }, hooks).
		WithActive(func(rec *models.Category) bool { return rec.IsActive }).
		WithFilter(activeFilter)
}

// NewStaffResource serves back-office accounts. A password is required on
// create and optional on update.
func NewStaffResource(repo repository.StaffRepository, hooks *Hooks) *Resource[models.ManageUser] {
	return NewResource[models.ManageUser]("Staff user", models.ResourceStaff, repo, bindWith(records.Staff),
		func(rec *models.ManageUser) (string, string) { return rec.ID, rec.Name }, hooks).
		WithActive(func(rec *models.ManageUser) bool { return rec.IsActive })
}

// NewUserResource serves site members.
func NewUserResource(repo repository.UserRepository, hooks *Hooks) *Resource[models.User] {
	return NewResource[models.User]("User", models.ResourceUsers, repo, bindWith(records.User),
		func(rec *models.User) (string, string) { return rec.ID, rec.Email }, hooks)
}

// NewContactResource serves "Get In Touch" submissions.
func NewContactResource(repo repository.ContactRepository, hooks *Hooks) *Resource[models.Contact] {
	return NewResource[models.Contact]("Contact", models.ResourceContacts, repo, bindWith(records.Contact),
		func(rec *models.Contact) (string, string) { return rec.ID, rec.Email }, hooks)
}

// bindWith decodes the JSON body into Req and hands it to build.
func bindWith[Req, T any](build records.Builder[Req, T]) BuildFunc[T] {
	return func(c *gin.Context, existing *T) (*T, error) {
		req, err := bindJSON[Req](c)
		if err != nil {
			return nil, err
		}
		return build(c.Request.Context(), req, existing)
	}
}
