package models

import (
	"net/mail"
	"strings"
	"time"
)

// Contact is a "Get In Touch" submission.
type Contact struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Email     string    `db:"email"      json:"email"`
	Phone     string    `db:"phone"      json:"phone,omitempty"`
	Subject   string    `db:"subject"    json:"subject,omitempty"`
	Message   string    `db:"message"    json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (c *Contact) GetID() string { return c.ID }

func (c *Contact) Init(id string, now time.Time) {
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Contact) Touch(now time.Time) { c.UpdatedAt = now }

func (c *Contact) MatchesSearch(q string) bool {
	return containsFold(c.Name, q) || containsFold(c.Email, q) || containsFold(c.Subject, q)
}

// ContactRequest is the create/replace payload for contact submissions.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `binding:"required,email" json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `binding:"required"       json:"message"`
}

func (r *ContactRequest) Clean() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *ContactRequest) Validate() error {
	var errs ValidationErrors
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs.add("email", "must be a valid email address")
	}
	if r.Message == "" {
		errs.add("message", "is required")
	}
	return errs.orNil()
}

func (r *ContactRequest) ApplyTo(c *Contact) {
	c.Name = r.Name
	c.Email = r.Email
	c.Phone = r.Phone
	c.Subject = r.Subject
	c.Message = r.Message
}
