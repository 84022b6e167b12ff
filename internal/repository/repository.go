// Package repository defines persistence for admin records and implements it on PostgreSQL.
package repository

import (
	"context"
	"time"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// ListFilter narrows and pages a list query.
type ListFilter struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
	Search    string
	IsActive  *bool
	Status    string
	Type      models.ContentType
}

// FilterFromParams builds a filter for the page described by p.
func FilterFromParams(p models.ListParams) ListFilter {
	p.Normalize()
	return ListFilter{
		Limit:     p.Limit,
		Offset:    p.Offset(),
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Search:    p.Search,
	}
}

// Repository is the CRUD contract shared by every resource.
type Repository[T any] interface {
	Create(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter ListFilter) ([]T, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
}

// ToggleRepository adds the isActive flip.
type ToggleRepository[T any] interface {
	Repository[T]
	ToggleStatus(ctx context.Context, id string) (*T, error)
}

// ContentRepository persists tools, prompts, articles, news and influencers.
type ContentRepository interface {
	ToggleRepository[models.Content]
	CountByType(ctx context.Context) (map[models.ContentType]int, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// StaffRepository persists back-office accounts.
type StaffRepository interface {
	ToggleRepository[models.ManageUser]
	GetByEmail(ctx context.Context, email string) (*models.ManageUser, error)
}

type (
	CategoryRepository = ToggleRepository[models.Category]
	UserRepository     = Repository[models.User]
	ContactRepository  = Repository[models.Contact]
)

// Set bundles one repository per resource.
type Set struct {
	Contents   ContentRepository
	Categories CategoryRepository
	Staff      StaffRepository
	Users      UserRepository
	Contacts   ContactRepository
}
