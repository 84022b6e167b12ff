package uploads_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/uploads"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1700000000123)
	tests := map[string]string{
		"My Logo (1).PNG":   "1700000000123_mylogo1.png",
		"banner.jpg":        "1700000000123_banner.jpg",
		"ünïcode-name_.gif": "1700000000123_ncodename.gif",
		"???":               "1700000000123_file",
	}
	for in, want := range tests {
		assert.Equal(t, want, uploads.ObjectKey(in, at), in)
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://ai-assets.s3.us-east-1.amazonaws.com/1_logo.png",
		uploads.PublicURL("ai-assets", "us-east-1", "", "1_logo.png"))
	assert.Equal(t,
		"http://localhost:9000/ai-assets/1_logo.png",
		uploads.PublicURL("ai-assets", "us-east-1", "http://localhost:9000/", "1_logo.png"))
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	svc, err := uploads.New(context.Background(), config.UploadsConfig{}, nil, logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, svc)

	_, err = svc.Presign(context.Background(), models.PresignRequest{FileName: "a.png", FileType: "image/png"})
	require.ErrorIs(t, err, uploads.ErrDisabled)
	_, err = svc.Rehost(context.Background(), "https://example.com/a.png")
	require.ErrorIs(t, err, uploads.ErrDisabled)
}

func newService(t *testing.T, endpoint string) *uploads.Service {
	t.Helper()
	svc, err := uploads.New(context.Background(), config.UploadsConfig{
		Bucket:          "ai-assets",
		Region:          "us-east-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		Endpoint:        endpoint,
		PresignExpiry:   15 * time.Minute,
	}, http.DefaultClient, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, svc)
	return svc
}

func TestPresign(t *testing.T) {
	t.Parallel()

	svc := newService(t, "")
	resp, err := svc.Presign(context.Background(), models.PresignRequest{FileName: "Hero Shot.PNG", FileType: "image/png"})
	require.NoError(t, err)

	assert.Regexp(t, `^\d+_heroshot\.png$`, resp.Key)
	assert.Equal(t, "https://ai-assets.s3.us-east-1.amazonaws.com/"+resp.Key, resp.PublicURL)

	signed, err := url.Parse(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, "ai-assets.s3.us-east-1.amazonaws.com", signed.Host)
	assert.Equal(t, "/"+resp.Key, signed.Path)
	assert.NotEmpty(t, signed.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "900", signed.Query().Get("X-Amz-Expires"))

	_, err = svc.Presign(context.Background(), models.PresignRequest{FileName: "notes.txt", FileType: "text/plain"})
	require.ErrorIs(t, err, uploads.ErrNotImage)
}

type fakeBucket struct {
	mu   sync.Mutex
	puts []string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPut {
		f.mu.Lock()
		f.puts = append(f.puts, r.URL.Path)
		f.mu.Unlock()
	}
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func (f *fakeBucket) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.puts...)
}

func TestRehost(t *testing.T) {
	t.Parallel()

	bucket := &fakeBucket{}
	s3srv := httptest.NewServer(bucket)
	t.Cleanup(s3srv.Close)

	images := http.NewServeMux()
	images.HandleFunc("/assets/logo.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake"))
	})
	images.HandleFunc("/page.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})
	imgsrv := httptest.NewServer(images)
	t.Cleanup(imgsrv.Close)

	svc := newService(t, s3srv.URL)

	public, err := svc.Rehost(context.Background(), imgsrv.URL+"/assets/logo.png")
	require.NoError(t, err)
	assert.Regexp(t, `^`+s3srv.URL+`/ai-assets/\d+_logo\.png$`, public)

	puts := bucket.paths()
	require.Len(t, puts, 1)
	assert.Regexp(t, `^/ai-assets/\d+_logo\.png$`, puts[0])

	_, err = svc.Rehost(context.Background(), imgsrv.URL+"/page.html")
	require.ErrorIs(t, err, uploads.ErrNotImage)

	_, err = svc.Rehost(context.Background(), imgsrv.URL+"/missing.png")
	require.Error(t, err)
}
