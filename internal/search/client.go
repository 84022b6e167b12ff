// Package search mirrors catalog content into Elasticsearch and serves
// free-text list queries from it.
package search

import (
	"context"
	"fmt"
	"io"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/vinodtana/ai-tools-admin-web/internal/config"
	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/retry"
)

const pingTimeout = 5 * time.Second

// NewClient connects and pings with backoff.
func NewClient(ctx context.Context, cfg config.SearchConfig, log logger.Logger) (*es.Client, error) {
	client, err := es.NewClient(es.Config{
		Addresses: cfg.URLs,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	log.Info("Verifying Elasticsearch connection", logger.Strings("urls", cfg.URLs))
	if err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		return Ping(ctx, client)
	}); err != nil {
		return nil, fmt.Errorf("connect to elasticsearch: %w", err)
	}

	log.Info("Elasticsearch connection established")
	return client, nil
}

// Ping checks the cluster answers.
func Ping(ctx context.Context, client *es.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	res, err := client.Ping(client.Ping.WithContext(pingCtx))
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("ping returned error [%s]: %s", res.Status(), body)
	}
	return nil
}
