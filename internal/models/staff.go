package models

import (
	"net/mail"
	"strings"
	"time"
)

// ManageUser is a back-office staff account. Only staff can sign in.
type ManageUser struct {
	ID           string    `db:"id"            json:"id"`
	Name         string    `db:"name"          json:"name"`
	Email        string    `db:"email"         json:"email"`
	PhNumber     string    `db:"ph_number"     json:"phNumber,omitempty"`
	Status       string    `db:"status"        json:"status"`
	IsActive     bool      `db:"is_active"     json:"isActive"`
	Role         Role      `db:"role"          json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}

func (u *ManageUser) GetID() string { return u.ID }

func (u *ManageUser) Init(id string, now time.Time) {
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
}

func (u *ManageUser) Touch(now time.Time) { u.UpdatedAt = now }

func (u *ManageUser) ToggleActive() { u.IsActive = !u.IsActive }

func (u *ManageUser) MatchesSearch(q string) bool {
	return containsFold(u.Name, q) || containsFold(u.Email, q)
}

// ManageUserRequest is the create/replace payload for staff. Password is
// optional on update; an empty value keeps the stored hash.
type ManageUserRequest struct {
	Name     string `binding:"required,max=255"       json:"name"`
	Email    string `binding:"required,email"         json:"email"`
	PhNumber string `json:"phNumber"`
	Status   string `json:"status"`
	Role     Role   `json:"role"`
	Password string `binding:"omitempty,min=8,max=72" json:"password"`
	IsActive *bool  `json:"isActive"`
}

func (r *ManageUserRequest) Clean() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhNumber = strings.TrimSpace(r.PhNumber)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = "Active"
	}
	if r.Role == "" {
		r.Role = RoleViewer
	}
}

func (r *ManageUserRequest) Validate() error {
	var errs ValidationErrors
	if r.Name == "" {
		errs.add("name", "is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs.add("email", "must be a valid email address")
	}
	if _, err := ParseRole(string(r.Role)); err != nil {
		errs.add("role", "must be one of Admin, Editor, Viewer, Owner")
	}
	errs.checkPassword(r.Password)
	return errs.orNil()
}

// ApplyTo copies the request onto u. The password is hashed by the caller.
func (r *ManageUserRequest) ApplyTo(u *ManageUser) {
	u.Name = r.Name
	u.Email = r.Email
	u.PhNumber = r.PhNumber
	u.Status = r.Status
	u.Role = r.Role
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
}
