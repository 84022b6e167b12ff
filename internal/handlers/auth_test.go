package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/auth"
	"github.com/vinodtana/ai-tools-admin-web/internal/handlers"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository/local"
)

func TestSigninLimitsPerEmail(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	blob, err := local.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	log := logger.NewNop()
	svc := auth.NewService(local.NewStaffRepository(blob), auth.NewJWTManager("handler-test-secret-0123456789ab", time.Hour), log)
	h := handlers.NewAuthHandler(svc, auth.NewLoginLimiter(1, 2), log)

	router := gin.New()
	router.POST("/signin", h.Signin)

	signin := func(ip, email string) int {
		raw, err := json.Marshal(models.SigninRequest{Email: email, Password: "guess-guess"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/signin", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, signin("10.0.0.1", "ada@example.com"))
	assert.Equal(t, http.StatusUnauthorized, signin("10.0.0.2", "Ada@Example.com"))
	assert.Equal(t, http.StatusTooManyRequests, signin("10.0.0.3", "ada@example.com"),
		"rotating addresses does not reset the per-email budget")
	assert.Equal(t, http.StatusUnauthorized, signin("10.0.0.4", "bob@example.com"))
}
