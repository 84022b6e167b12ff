// Package seed creates the first back-office account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/bootstrap"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

const minPasswordLength = models.MinPasswordLength

// Account describes the staff account to seed.
type Account struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Command returns `seed`.
func Command(opts *common.Options) *cobra.Command {
	var acct Account
	var role string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial admin account",
		Long: `Creates a staff account unless one with the same email exists.
Flags fall back to ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acct.Name = orEnv(acct.Name, "ADMIN_NAME")
			acct.Email = orEnv(acct.Email, "ADMIN_EMAIL")
			acct.Password = orEnv(acct.Password, "ADMIN_PASSWORD")
			acct.Role = models.Role(role)

			cfg, log, err := opts.Setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, err := bootstrap.SetupStorage(cmd.Context(), cfg, log, true)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			created, err := Run(cmd.Context(), store.Repos.Staff, acct, log)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s account %s\n", acct.Role, acct.Email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Account %s already exists\n", acct.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&acct.Name, "name", "", "display name (default \"Administrator\")")
	cmd.Flags().StringVar(&acct.Email, "email", "", "sign-in email")
	cmd.Flags().StringVar(&acct.Password, "password", "", "sign-in password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "Owner, Admin, Editor or Viewer")

	return cmd
}

// Run creates acct in repo. It reports false when the email is taken.
func Run(ctx context.Context, repo repository.StaffRepository, acct Account, log logger.Logger) (bool, error) {
	if acct.Name == "" {
		acct.Name = "Administrator"
	}
	req := models.ManageUserRequest{Name: acct.Name, Email: acct.Email, Role: acct.Role, Password: acct.Password}
	req.Clean()
	if err := req.Validate(); err != nil {
		return false, err
	}
	if len(req.Password) < minPasswordLength {
		return false, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := repo.GetByEmail(ctx, req.Email); err == nil {
		log.Info("Seed account exists", logger.String("email", req.Email))
		return false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("look up %s: %w", req.Email, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return false, err
	}

	acctRec := &models.ManageUser{IsActive: true, PasswordHash: hash}
	req.ApplyTo(acctRec)
	if err = repo.Create(ctx, acctRec); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("create account: %w", err)
	}

	log.Info("Seed account created",
		logger.String("email", acctRec.Email),
		logger.String("role", string(acctRec.Role)),
	)
	return true, nil
}

func orEnv(v, key string) string {
	if v != "" {
		return v
	}
	return os.Getenv(key)
}
