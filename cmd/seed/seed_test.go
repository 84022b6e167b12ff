package seed_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/cmd/seed"
	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
)

func newRepo(t *testing.T) *local.StaffRepository {
	t.Helper()
	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return local.NewStaffRepository(blob)
}

func TestRun_CreatesOnce(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	ctx := context.Background()
	acct := seed.Account{Email: " Admin@Example.com ", Password: "correct-horse", Role: models.RoleAdmin}

	created, err := seed.Run(ctx, repo, acct, logger.NewNop())
	require.NoError(t, err)
	assert.True(t, created)

	rec, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", rec.Name)
	assert.Equal(t, models.RoleAdmin, rec.Role)
	assert.True(t, rec.IsActive)
	assert.True(t, auth.CheckPassword(rec.PasswordHash, "correct-horse"))

	created, err = seed.Run(ctx, repo, acct, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRun_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		acct seed.Account
		want string
	}{
		{"bad email", seed.Account{Email: "nope", Password: "correct-horse", Role: models.RoleAdmin}, "email"},
		{"short password", seed.Account{Email: "a@example.com", Password: "short", Role: models.RoleAdmin}, "at least 8"},
		{"unknown role", seed.Account{Email: "a@example.com", Password: "correct-horse", Role: "Root"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := seed.Run(context.Background(), newRepo(t), tt.acct, logger.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
