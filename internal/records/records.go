// Package records turns request payloads into records ready to store. The
// API handlers and the console's local backend both build through here, so
// the same cleanup, validation and defaults apply on every write path.
package records

import (
	"context"

	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// Builder cleans and validates req and returns the record to store. A nil
// existing record means create.
type Builder[Req, T any] func(ctx context.Context, req *Req, existing *T) (*T, error)

// Category builds an active category on create.
func Category(_ context.Context, req *models.CategoryRequest, existing *models.Category) (*models.Category, error) {
	req.Clean()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if existing == nil {
		return req.NewCategory(), nil
	}
	rec := *existing
	req.ApplyTo(&rec)
	return &rec, nil
}

// Staff requires a password on create; on update an empty password keeps
// the stored hash.
func Staff(_ context.Context, req *models.ManageUserRequest, existing *models.ManageUser) (*models.ManageUser, error) {
	req.Clean()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := &models.ManageUser{IsActive: true}
	if existing != nil {
		copied := *existing
		rec = &copied
	} else if req.Password == "" {
		return nil, models.ValidationErrors{{Field: "password", Message: "is required"}}
	}
	req.ApplyTo(rec)

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		rec.PasswordHash = hash
	}
	return rec, nil
}

func User(_ context.Context, req *models.UserRequest, existing *models.User) (*models.User, error) {
	req.Clean()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := &models.User{}
	if existing != nil {
		copied := *existing
		rec = &copied
	}
	req.ApplyTo(rec)

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		rec.PasswordHash = hash
	}
	return rec, nil
}

func Contact(_ context.Context, req *models.ContactRequest, existing *models.Contact) (*models.Contact, error) {
	req.Clean()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec := &models.Contact{}
	if existing != nil {
		copied := *existing
		rec = &copied
	}
	req.ApplyTo(rec)
	return rec, nil
}
