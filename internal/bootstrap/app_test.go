package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/bootstrap"
	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	cfg.Storage.Driver = config.StorageDriverLocal
	cfg.Storage.LocalPath = filepath.Join(t.TempDir(), "store.json")
	cfg.Auth.JWTSecret = "bootstrap-test-secret-0123456789"
	cfg.Server.Metrics = true
	require.NoError(t, cfg.Validate())
	return cfg
}

func seedAdmin(t *testing.T, app *bootstrap.App) {
	t.Helper()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, app.Storage.Repos.Staff.Create(context.Background(), &models.ManageUser{
		Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true, PasswordHash: hash,
	}))
}

func TestNewApp_LocalWithRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)

	cfg := localConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Address = mr.Addr()

	app, err := bootstrap.NewApp(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	require.NotNil(t, app.Redis)
	assert.Nil(t, app.Storage.DB)
	assert.Nil(t, app.Search)
	seedAdmin(t, app)

	router := app.Server.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status string                     `json:"status"`
		Checks map[string]json.RawMessage `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Checks, "redis")

	w = httptest.NewRecorder()
	body := `{"email":"admin@example.com","password":"s3cret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var signin struct {
		Data models.SigninResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signin))

	w = httptest.NewRecorder()
	body = `{"type":"tools","name":"Chatty","tagline":"Talks","overview":"<p>Hi</p>","planType":"free"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/contents", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signin.Data.Token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.True(t, mr.Exists(cfg.Redis.ActivityKey))
	assert.Eventually(t, func() bool { return mr.Exists(cfg.Redis.EventStream) }, 2*time.Second, 20*time.Millisecond)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ai_tools_admin_record_writes_total")
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := localConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Address = "127.0.0.1:1"

	app, err := bootstrap.NewApp(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	assert.Nil(t, app.Redis)
}

func TestLoadConfig_DebugOverride(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "env-secret-0123456789abcdef")
	t.Setenv("STORAGE_DRIVER", "local")

	cfg, err := bootstrap.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"), true)
	require.NoError(t, err)
	assert.True(t, cfg.Service.Debug)

	log, err := bootstrap.CreateLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := bootstrap.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
}
