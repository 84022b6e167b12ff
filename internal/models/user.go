package models

import (
	"net/mail"
	"strings"
	"time"
)

// User is a member of the public catalog site.
type User struct {
	ID                       string    `db:"id"                         json:"id"`
	Email                    string    `db:"email"                      json:"email"`
	Phone                    string    `db:"phone"                      json:"phone,omitempty"`
	EnableEmailNotifications bool      `db:"enable_email_notifications" json:"enableEmailNotifications"`
	EnableWeeklyNewsletter   bool      `db:"enable_weekly_newsletter"   json:"enableWeeklyNewsletter"`
	Source                   string    `db:"source"                     json:"source,omitempty"`
	PasswordHash             string    `db:"password_hash"              json:"-"`
	CreatedAt                time.Time `db:"created_at"                 json:"createdAt"`
	UpdatedAt                time.Time `db:"updated_at"                 json:"updatedAt"`
}

func (u *User) GetID() string { return u.ID }

func (u *User) Init(id string, now time.Time) {
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
}

func (u *User) Touch(now time.Time) { u.UpdatedAt = now }

func (u *User) MatchesSearch(q string) bool {
	return containsFold(u.Email, q) || containsFold(u.Phone, q)
}

// UserRequest is the create/replace payload for site users.
type UserRequest struct {
	Email                    string `binding:"required,email"         json:"email"`
	Phone                    string `json:"phone"`
	EnableEmailNotifications bool   `json:"enableEmailNotifications"`
	EnableWeeklyNewsletter   bool   `json:"enableWeeklyNewsletter"`
	Source                   string `json:"source"`
	Password                 string `binding:"omitempty,min=8,max=72" json:"password"`
}

func (r *UserRequest) Clean() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Source = strings.TrimSpace(r.Source)
	if r.Source == "" {
		r.Source = "admin"
	}
}

func (r *UserRequest) Validate() error {
	var errs ValidationErrors
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs.add("email", "must be a valid email address")
	}
	errs.checkPassword(r.Password)
	return errs.orNil()
}

func (r *UserRequest) ApplyTo(u *User) {
	u.Email = r.Email
	u.Phone = r.Phone
	u.EnableEmailNotifications = r.EnableEmailNotifications
	u.EnableWeeklyNewsletter = r.EnableWeeklyNewsletter
	u.Source = r.Source
}
