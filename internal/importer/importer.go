package importer

import (
	"context"
	"io"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// Creator persists one content record.
type Creator interface {
	Create(ctx context.Context, c *models.Content) error
}

// Preparer turns a row into a storable record. The content service
// implements it so imported rows get the same cleanup as form submissions.
type Preparer interface {
	Prepare(ctx context.Context, req *models.ContentRequest, existing *models.Content) (*models.Content, error)
}

// Result summarizes an import.
type Result struct {
	Created int           `json:"created"`
	Failed  int           `json:"failed"`
	Errors  []ImportError `json:"errors"`
	IDs     []string      `json:"ids"`
}

// Importer validates parsed rows and creates content.
type Importer struct {
	repo      Creator
	prepare   Preparer
	maxImages int
	log       logger.Logger
}

func New(repo Creator, maxImages int, log logger.Logger) *Importer {
	return &Importer{repo: repo, maxImages: maxImages, log: log}
}

// WithPreparer routes every row through p instead of plain validation.
func (im *Importer) WithPreparer(p Preparer) *Importer {
	im.prepare = p
	return im
}

func (im *Importer) build(ctx context.Context, req *models.ContentRequest) (*models.Content, error) {
	if im.prepare != nil {
		return im.prepare.Prepare(ctx, req, nil)
	}
	req.Clean()
	if err := req.Validate(im.maxImages); err != nil {
		return nil, err
	}
	return req.NewContent(), nil
}

// Import parses r and creates every valid row. Row failures are collected,
// not returned; only an unreadable file is an error.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	rows, parseErrs, err := Parse(r)
	if err != nil {
		return nil, err
	}

	res := &Result{Errors: append([]ImportError{}, parseErrs...), IDs: []string{}}
	for _, row := range rows {
		req := row.Request
		c, buildErr := im.build(ctx, &req)
		if buildErr != nil {
			res.Errors = append(res.Errors, ImportError{Row: row.Number, Error: buildErr.Error()})
			continue
		}

		if err = im.repo.Create(ctx, c); err != nil {
			res.Errors = append(res.Errors, ImportError{Row: row.Number, Error: err.Error()})
			continue
		}
		res.Created++
		res.IDs = append(res.IDs, c.ID)
	}
	res.Failed = len(res.Errors)

	im.log.Info("Spreadsheet import finished",
		logger.Int("created", res.Created),
		logger.Int("failed", res.Failed),
	)
	return res, nil
}
