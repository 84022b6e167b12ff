package models

import (
	"strings"
	"time"
)

// Category groups catalog content.
type Category struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Tagline   string    `db:"tagline"    json:"tagline,omitempty"`
	Logo      string    `db:"logo"       json:"logo,omitempty"`
	Status    Status    `db:"status"     json:"status"`
	IsActive  bool      `db:"is_active"  json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (c *Category) GetID() string { return c.ID }

func (c *Category) Init(id string, now time.Time) {
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Category) Touch(now time.Time) { c.UpdatedAt = now }

func (c *Category) ToggleActive() { c.IsActive = !c.IsActive }

func (c *Category) MatchesSearch(q string) bool {
	return containsFold(c.Name, q) || containsFold(c.Tagline, q)
}

// CategoryRequest is the create/replace payload for categories.
type CategoryRequest struct {
	Name     string `binding:"required,max=255" json:"name"`
	Tagline  string `json:"tagline"`
	Logo     string `json:"logo"`
	Status   Status `json:"status"`
	IsActive *bool  `json:"isActive"`
}

func (r *CategoryRequest) Clean() {
	r.Name = strings.TrimSpace(r.Name)
	r.Tagline = strings.TrimSpace(r.Tagline)
	r.Logo = strings.TrimSpace(r.Logo)
	if r.Status == "" {
		r.Status = StatusPublished
	}
}

func (r *CategoryRequest) Validate() error {
	var errs ValidationErrors
	if r.Name == "" {
		errs.add("name", "is required")
	}
	if !r.Status.Valid() {
		errs.add("status", "must be one of Draft, Published, Unpublished")
	}
	return errs.orNil()
}

// NewCategory builds an active category.
func (r *CategoryRequest) NewCategory() *Category {
	c := &Category{}
	r.ApplyTo(c)
	c.IsActive = true
	return c
}

func (r *CategoryRequest) ApplyTo(c *Category) {
	c.Name = r.Name
	c.Tagline = r.Tagline
	c.Logo = r.Logo
	c.Status = r.Status
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
}
