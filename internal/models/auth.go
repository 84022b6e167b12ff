package models

// SigninRequest is the body of POST /auth/signin.
type SigninRequest struct {
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required"       json:"password"`
}

// SessionUser is the staff summary returned on signin and stored by the console.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// SigninResponse is wrapped in {"data": ...} by the handler.
type SigninResponse struct {
	User  SessionUser `json:"user"`
	Token string      `json:"token"`
}

// Summary strips a staff account down to what the session needs.
func (u *ManageUser) Summary() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
