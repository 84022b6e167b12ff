package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

const maxImageBytes = 10 << 20

var (
	// ErrDisabled is returned when no bucket is configured.
	ErrDisabled = errors.New("uploads are not configured")
	// ErrNotImage rejects non-image uploads and downloads.
	ErrNotImage = errors.New("file is not an image")
	// ErrTooLarge rejects remote images over the size limit.
	ErrTooLarge = errors.New("image exceeds size limit")
)

// Service talks to the bucket. A nil *Service reports ErrDisabled.
type Service struct {
	client   *s3.Client
	presign  *s3.PresignClient
	cfg      config.UploadsConfig
	download *http.Client
	log      logger.Logger
	now      func() time.Time
}

// New returns nil, nil when cfg has no bucket. download fetches remote
// images for re-hosting and should refuse private networks.
func New(ctx context.Context, cfg config.UploadsConfig, download *http.Client, log logger.Logger) (*Service, error) {
	if !cfg.Enabled() {
		return nil, nil //nolint:nilnil // disabled is not an error
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	if download == nil {
		download = http.DefaultClient
	}

	log.Info("Object storage configured",
		logger.String("bucket", cfg.Bucket),
		logger.String("region", cfg.Region),
	)

	return &Service{
		client:   client,
		presign:  s3.NewPresignClient(client),
		cfg:      cfg,
		download: download,
		log:      log,
		now:      time.Now,
	}, nil
}

// PublicURL returns where key is served from.
func (s *Service) PublicURL(key string) string {
	return PublicURL(s.cfg.Bucket, s.cfg.Region, s.cfg.Endpoint, key)
}

// Presign signs a PUT for an image the browser uploads directly.
func (s *Service) Presign(ctx context.Context, req models.PresignRequest) (*models.PresignResponse, error) {
	if s == nil {
		return nil, ErrDisabled
	}
	if !isImage(req.FileType) {
		return nil, ErrNotImage
	}

	key := ObjectKey(req.FileName, s.now())
	signed, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.FileType),
	}, s3.WithPresignExpires(s.cfg.PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &models.PresignResponse{URL: signed.URL, Key: key, PublicURL: s.PublicURL(key)}, nil
}

// Rehost downloads an image and stores a copy in the bucket, returning its public URL.
func (s *Service) Rehost(ctx context.Context, srcURL string) (string, error) {
	if s == nil {
		return "", ErrDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := s.download.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isImage(contentType) {
		return "", fmt.Errorf("%w: %q", ErrNotImage, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(body) > maxImageBytes {
		return "", ErrTooLarge
	}

	key := ObjectKey(fileNameFor(resp.Request.URL.Path, contentType), s.now())
	if err = s.Put(ctx, key, contentType, body); err != nil {
		return "", err
	}

	s.log.Info("Image re-hosted",
		logger.String("source", srcURL),
		logger.String("key", key),
		logger.Int("bytes", len(body)),
	)
	return s.PublicURL(key), nil
}

// Put stores body under key.
func (s *Service) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func isImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.HasPrefix(mediaType, "image/")
}

// fileNameFor keeps the remote base name, adding an extension when the URL has none.
func fileNameFor(urlPath, contentType string) string {
	name := path.Base(urlPath)
	if name == "." || name == "/" {
		name = "image"
	}
	if path.Ext(name) == "" {
		mediaType, _, _ := mime.ParseMediaType(contentType)
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			name += exts[0]
		}
	}
	return name
}
