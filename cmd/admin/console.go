// Package admin is the operator console: it signs in against the admin API
// (or the local blob store) and manages catalog records from the terminal.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/internal/activity"
	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/bootstrap"
	"github.com/vinodtana/ai-tools-admin-web/internal/client"
	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/dashboard"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/rbac"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
	"github.com/vinodtana/ai-tools-admin-web/internal/store"
)

const backendLocal = config.StorageDriverLocal

var errForbidden = errors.New("your role does not allow this action")

// Console is one console invocation: the store plus where to print.
type Console struct {
	Store       *store.Store
	Out         io.Writer
	Err         io.Writer
	SessionPath string
	BaseURL     string
	log         logger.Logger
}

// Open builds the console for the configured backend and restores the
// saved session, if any.
func Open(ctx context.Context, opts *common.Options, out, errOut io.Writer) (*Console, error) {
	cfg, log, err := opts.Setup()
	if err != nil {
		return nil, err
	}

	c := &Console{
		Out:         out,
		Err:         errOut,
		SessionPath: cfg.Console.SessionFile,
		BaseURL:     cfg.Console.BaseURL,
		log:         log,
	}

	sess, err := client.LoadSession(c.SessionPath)
	if err != nil && !errors.Is(err, client.ErrNoSession) {
		return nil, err
	}

	if cfg.Console.Backend == backendLocal {
		if c.Store, err = localStore(ctx, cfg, log); err != nil {
			return nil, err
		}
	} else {
		api := client.New(cfg.Console.BaseURL, nil, log)
		if sess != nil {
			api.SetToken(sess.Token)
		}
		c.Store = store.NewREST(api)
	}

	if sess != nil {
		c.Store.Restore(sess.User, sess.Token)
	}
	return c, nil
}

func localStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*store.Store, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required for the local console backend")
	}
	blob, err := local.Open(cfg.Storage.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	repos := local.NewSet(blob)

	svc, _, err := bootstrap.SetupContent(ctx, cfg, nil, log)
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(repos.Staff, auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), log)
	dash := dashboard.NewService(repos.Contents, repos.Users, activity.NewMemoryFeed(), nil, 0, log)
	return store.NewLocalStore(repos, svc.Prepare, authSvc, dash.Get), nil
}

// requireSession fails with client.ErrNoSession when signed out.
func (c *Console) requireSession() (*models.SessionUser, error) {
	user := c.Store.Session()
	if user == nil {
		return nil, client.ErrNoSession
	}
	return user, nil
}

// authorize checks the role locally. The API enforces the same policy, so
// REST consoles only fail early here.
func (c *Console) authorize(resource string, action rbac.Action) error {
	user, err := c.requireSession()
	if err != nil {
		return err
	}
	if !rbac.Can(rbac.NormalizeRole(string(user.Role)), resource, action) {
		return fmt.Errorf("%w: %s on %s", errForbidden, action, resource)
	}
	return nil
}

// Flush prints pending toasts.
func (c *Console) Flush() {
	for _, t := range c.Store.Toasts() {
		if t.Kind == store.ToastError {
			t.Print(c.Err)
		} else {
			t.Print(c.Out)
		}
	}
}

// Login signs in and saves the session.
func (c *Console) Login(ctx context.Context, email, password string) error {
	defer c.Flush()
	resp, err := c.Store.Signin(ctx, models.SigninRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err = client.SaveSession(c.SessionPath, client.Session{User: resp.User, Token: resp.Token, BaseURL: c.BaseURL}); err != nil {
		return err
	}
	c.log.Debug("Session saved", logger.String("path", c.SessionPath), logger.String("email", resp.User.Email))
	return nil
}

// Logout forgets the saved session.
func (c *Console) Logout() error {
	if err := client.ClearSession(c.SessionPath); err != nil {
		return err
	}
	store.SuccessToast("Signed out").Print(c.Out)
	return nil
}
