package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/content"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
	"github.com/vinodtana/ai-tools-admin-web/internal/store"
)

type fakeAuth struct{ err error }

func (f fakeAuth) Signin(_ context.Context, req models.SigninRequest) (*models.SigninResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SigninResponse{
		User:  models.SessionUser{ID: "1", Name: "Ada", Email: req.Email, Role: "ROLE_VIEWER"},
		Token: "tok",
	}, nil
}

func newStore(t *testing.T, auth store.Authenticator) *store.Store {
	t.Helper()
	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	dash := func(context.Context) (*models.Dashboard, error) { return &models.Dashboard{}, nil }
	svc := content.NewService(nil, nil, nil, 10, logger.NewNop())
	return store.NewLocalStore(local.NewSet(blob), svc.Prepare, auth, dash)
}

func TestStripEmpty(t *testing.T) {
	t.Parallel()

	out, err := store.StripEmpty(json.RawMessage(`{
		"type": "prompts", "name": "x", "tagline": " ", "logo": null,
		"images": [], "categories": ["a", ""], "planType": "paid", "rating": 0
	}`))
	require.NoError(t, err)

	var obj map[string]any
	require.NoError(t, json.Unmarshal(out, &obj))
	assert.Equal(t, map[string]any{
		"type": "prompts", "name": "x", "categories": []any{"a"}, "rating": float64(0),
	}, obj)

	out, err = store.StripEmpty(json.RawMessage(`{"type":"tools","planType":"free"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"tools","planType":"free"}`, string(out))

	_, err = store.StripEmpty(json.RawMessage(`[1,2]`))
	require.Error(t, err)
}

func TestSliceCRUDAndToasts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, fakeAuth{})

	rec, err := s.Categories.Create(ctx, json.RawMessage(`{"name":"Writing","isActive":true,"tagline":""}`))
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	require.NoError(t, s.Categories.Fetch(ctx, models.ListParams{}, nil))
	st := s.Categories.Snapshot()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 1, st.Pagination.Total)
	assert.Equal(t, models.DefaultLimit, st.Params.Limit)

	toggled, err := s.Categories.Toggle(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.False(t, s.Categories.Snapshot().Items[0].IsActive)

	require.NoError(t, s.Categories.Fetch(ctx, models.ListParams{}, map[string]string{"isActive": "true"}))
	assert.Empty(t, s.Categories.Snapshot().Items)

	require.NoError(t, s.Categories.Delete(ctx, rec.ID))
	_, err = s.Categories.Get(ctx, rec.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, err.Error(), s.Categories.Snapshot().Error)

	toasts := s.Toasts()
	require.Len(t, toasts, 4)
	assert.Equal(t, store.SuccessToast("Category created successfully"), toasts[0])
	assert.Equal(t, store.ToastError, toasts[3].Kind)
	assert.Empty(t, s.Toasts(), "toasts are drained")
}

func TestLocalWritesAreValidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, fakeAuth{})

	images := make([]string, 11)
	for i := range images {
		images[i] = fmt.Sprintf(`"https://cdn.example/%d.png"`, i)
	}

	tests := []struct {
		name   string
		create func() error
		field  string
	}{
		{"content without required fields", func() error {
			_, err := s.Contents.Create(ctx, json.RawMessage(`{"type":"tools"}`))
			return err
		}, "name"},
		{"content with too many images", func() error {
			body := `{"type":"tools","name":"n","tagline":"t","overview":"o","images":[` + strings.Join(images, ",") + `]}`
			_, err := s.Contents.Create(ctx, json.RawMessage(body))
			return err
		}, "images"},
		{"category without name", func() error {
			_, err := s.Categories.Create(ctx, json.RawMessage(`{"tagline":"no name"}`))
			return err
		}, "name"},
		{"empty contact", func() error {
			_, err := s.Contacts.Create(ctx, json.RawMessage(`{}`))
			return err
		}, "email"},
		{"staff without password", func() error {
			_, err := s.Staff.Create(ctx, json.RawMessage(`{"name":"Sam","email":"sam@example.com"}`))
			return err
		}, "password"},
		{"user with short password", func() error {
			_, err := s.Users.Create(ctx, json.RawMessage(`{"email":"u@example.com","password":"short"}`))
			return err
		}, "password"},
	}

	for _, tt := range tests {
		err := tt.create()
		var verrs models.ValidationErrors
		require.ErrorAs(t, err, &verrs, tt.name)
		assert.Equal(t, tt.field, verrs[0].Field, tt.name)
	}

	for _, n := range []int{
		s.Contents.Snapshot().Pagination.Total,
		s.Categories.Snapshot().Pagination.Total,
		s.Contacts.Snapshot().Pagination.Total,
	} {
		assert.Zero(t, n)
	}
	require.NoError(t, s.Contents.Fetch(ctx, models.ListParams{}, nil))
	assert.Empty(t, s.Contents.Snapshot().Items)
}

func TestLocalCreateAppliesDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, fakeAuth{})

	rec, err := s.Contents.Create(ctx, json.RawMessage(
		`{"type":"prompts","name":"Summarizer","tagline":"t","overview":"o","planType":"paid","isActive":false}`))
	require.NoError(t, err)
	assert.True(t, rec.IsActive)
	assert.Equal(t, models.StatusDraft, rec.Status)
	assert.Empty(t, rec.PlanType)

	updated, err := s.Contents.Update(ctx, rec.ID, json.RawMessage(`{"tagline":"Shorter"}`))
	require.NoError(t, err)
	assert.Equal(t, "Summarizer", updated.Name)
	assert.Equal(t, "Shorter", updated.Tagline)

	_, err = s.Contents.Update(ctx, rec.ID, json.RawMessage(`{"viewsCount":-1}`))
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "viewsCount", verrs[0].Field)

	staff, err := s.Staff.Create(ctx, json.RawMessage(`{"name":"Sam","email":"Sam@Example.com","password":"long-enough"}`))
	require.NoError(t, err)
	assert.True(t, staff.IsActive)
	assert.Equal(t, "sam@example.com", staff.Email)
	assert.Equal(t, models.RoleViewer, staff.Role)
	assert.NotEmpty(t, staff.PasswordHash)
}

func TestToggleUnsupported(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, fakeAuth{})

	rec, err := s.Contacts.Create(ctx, json.RawMessage(`{"email":"a@example.com","message":"hi"}`))
	require.NoError(t, err)
	_, err = s.Contacts.Toggle(ctx, rec.ID)
	require.ErrorIs(t, err, store.ErrNotToggleable)
}

func TestContentFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, fakeAuth{})
	for _, body := range []string{
		`{"type":"tools","name":"Chat","tagline":"t","overview":"o","isActive":true}`,
		`{"type":"news","name":"Daily","tagline":"t","overview":"o","isActive":true}`,
	} {
		_, err := s.Contents.Create(ctx, json.RawMessage(body))
		require.NoError(t, err)
	}

	require.NoError(t, s.Contents.Fetch(ctx, models.ListParams{}, map[string]string{"type": "news"}))
	items := s.Contents.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "Daily", items[0].Name)

	require.NoError(t, s.Contents.Search(ctx, "chat"))
	assert.Empty(t, s.Contents.Snapshot().Items, "search keeps the type filter")

	err := s.Contents.Fetch(ctx, models.ListParams{}, map[string]string{"type": "gadgets"})
	require.Error(t, err)
}

func TestSigninAndMenu(t *testing.T) {
	t.Parallel()

	s := newStore(t, fakeAuth{})
	assert.Empty(t, s.Menu())

	_, err := s.Signin(context.Background(), models.SigninRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token())

	var ids []string
	for _, item := range s.Menu() {
		ids = append(ids, item.ID)
	}
	assert.Contains(t, ids, "dashboard")
	assert.NotContains(t, ids, "manage-users")

	failing := newStore(t, fakeAuth{err: models.ErrInvalidCredentials})
	_, err = failing.Signin(context.Background(), models.SigninRequest{})
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Equal(t, store.ToastError, failing.Toasts()[0].Kind)
	assert.Nil(t, failing.Session())
}

func TestConcurrentActions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, fakeAuth{})

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := fmt.Sprintf(`{"email":"u%d@example.com"}`, i)
			_, err := s.Users.Create(ctx, json.RawMessage(body))
			assert.NoError(t, err)
			assert.NoError(t, s.Users.Fetch(ctx, models.ListParams{}, nil))
		}()
	}
	wg.Wait()

	require.NoError(t, s.Users.Fetch(ctx, models.ListParams{Limit: 100}, nil))
	assert.Len(t, s.Users.Snapshot().Items, 10)
}

func TestErrorToast(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Record not found", store.ErrorToast(models.ErrNotFound).Message)
	assert.Equal(t, "boom", store.ErrorToast(errors.New("boom")).Message)
}
