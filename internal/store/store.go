package store

import (
	"context"
	"sync"

	"github.com/vinodtana/ai-tools-admin-web/internal/client"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/rbac"
	"github.com/vinodtana/ai-tools-admin-web/internal/records"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// Authenticator signs staff in. Both the REST client and auth.Service satisfy it.
type Authenticator interface {
	Signin(ctx context.Context, req models.SigninRequest) (*models.SigninResponse, error)
}

// DashboardSource loads the dashboard.
type DashboardSource func(ctx context.Context) (*models.Dashboard, error)

// Store is the console's centralized state.
type Store struct {
	Contents   *Slice[models.Content]
	Categories *Slice[models.Category]
	Staff      *Slice[models.ManageUser]
	Users      *Slice[models.User]
	Contacts   *Slice[models.Contact]

	auth      Authenticator
	dashboard DashboardSource

	mu      sync.Mutex
	session *models.SessionUser
	token   string
	toasts  []Toast
}

// Backends bundles one backend per resource.
type Backends struct {
	Contents   Backend[models.Content]
	Categories Backend[models.Category]
	Staff      Backend[models.ManageUser]
	Users      Backend[models.User]
	Contacts   Backend[models.Contact]
}

func New(b Backends, auth Authenticator, dashboard DashboardSource) *Store {
	s := &Store{auth: auth, dashboard: dashboard}
	s.Contents = newSlice("Content", b.Contents, func(r *models.Content) string { return r.ID }, s.push)
	s.Categories = newSlice("Category", b.Categories, func(r *models.Category) string { return r.ID }, s.push)
	s.Staff = newSlice("Staff user", b.Staff, func(r *models.ManageUser) string { return r.ID }, s.push)
	s.Users = newSlice("User", b.Users, func(r *models.User) string { return r.ID }, s.push)
	s.Contacts = newSlice("Contact", b.Contacts, func(r *models.Contact) string { return r.ID }, s.push)
	return s
}

// NewREST builds a store backed by the admin API.
func NewREST(c *client.Client) *Store {
	return New(Backends{
		Contents:   client.NewResource[models.Content](c, "/contents"),
		Categories: client.NewResource[models.Category](c, "/categories"),
		Staff:      client.NewResource[models.ManageUser](c, "/manage-users"),
		Users:      client.NewResource[models.User](c, "/users"),
		Contacts:   client.NewResource[models.Contact](c, "/contacts"),
	}, c, c.Dashboard)
}

// NewLocalStore builds a store that reads and writes repos directly.
// prepare builds content records, normally content.Service.Prepare.
func NewLocalStore(
	repos repository.Set,
	prepare records.Builder[models.ContentRequest, models.Content],
	auth Authenticator,
	dashboard DashboardSource,
) *Store {
	return New(Backends{
		Contents:   NewLocal[models.ContentRequest, models.Content](repos.Contents, prepare, ContentFilters),
		Categories: NewLocal[models.CategoryRequest, models.Category](repos.Categories, records.Category, ActiveFilters),
		Staff:      NewLocal[models.ManageUserRequest, models.ManageUser](repos.Staff, records.Staff, nil),
		Users:      NewLocal[models.UserRequest, models.User](repos.Users, records.User, nil),
		Contacts:   NewLocal[models.ContactRequest, models.Contact](repos.Contacts, records.Contact, nil),
	}, auth, dashboard)
}

func (s *Store) push(t Toast) {
	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()
}

// Toasts returns and clears pending notifications.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.toasts
	s.toasts = nil
	return out
}

// Signin authenticates and remembers the session.
func (s *Store) Signin(ctx context.Context, req models.SigninRequest) (*models.SigninResponse, error) {
	resp, err := s.auth.Signin(ctx, req)
	if err != nil {
		s.push(ErrorToast(err))
		return nil, err
	}
	s.Restore(resp.User, resp.Token)
	s.push(SuccessToast("Welcome back, " + resp.User.Name))
	return resp, nil
}

// Restore reinstates a saved session.
func (s *Store) Restore(user models.SessionUser, token string) {
	s.mu.Lock()
	s.session = &user
	s.token = token
	s.mu.Unlock()
}

// Session returns the signed-in user, or nil.
func (s *Store) Session() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// Token is the bearer token of the current session.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Menu is the sidebar for the signed-in role; empty when signed out.
func (s *Store) Menu() []rbac.MenuItem {
	user := s.Session()
	if user == nil {
		return []rbac.MenuItem{}
	}
	return rbac.VisibleMenu(rbac.NormalizeRole(string(user.Role)))
}

// Dashboard loads the stat cards and recent activity.
func (s *Store) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	dash, err := s.dashboard(ctx)
	if err != nil {
		s.push(ErrorToast(err))
		return nil, err
	}
	return dash, nil
}
