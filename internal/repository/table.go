package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

const pqUniqueViolation = "23505"

// tableSpec describes how a record type maps onto a table.
type tableSpec struct {
	name          string
	entity        string
	columns       []string
	searchColumns []string
	// sortColumns maps API sort keys (camelCase) to column names.
	sortColumns map[string]string
	hasType     bool
	hasStatus   bool
	hasActive   bool
}

// table implements Repository[T] for any record whose pointer type is a models.Record.
type table[T any, PT interface {
	*T
	models.Record
}] struct {
	db     *sqlx.DB
	logger logger.Logger
	spec   tableSpec
	now    func() time.Time

	selectCols  string
	insertQuery string
	updateQuery string
}

func newTable[T any, PT interface {
	*T
	models.Record
}](db *sqlx.DB, log logger.Logger, spec tableSpec) *table[T, PT] {
	sets := make([]string, 0, len(spec.columns))
	for _, col := range spec.columns {
		if col == "id" || col == "created_at" {
			continue
		}
		sets = append(sets, col+" = :"+col)
	}

	return &table[T, PT]{
		db:         db,
		logger:     log,
		spec:       spec,
		now:        func() time.Time { return time.Now().UTC() },
		selectCols: strings.Join(spec.columns, ", "),
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)",
			spec.name, strings.Join(spec.columns, ", "), strings.Join(spec.columns, ", :")),
		updateQuery: fmt.Sprintf("UPDATE %s SET %s WHERE id = :id",
			spec.name, strings.Join(sets, ", ")),
	}
}

func (t *table[T, PT]) Create(ctx context.Context, rec *T) error {
	PT(rec).Init(uuid.NewString(), t.now())

	if _, err := t.db.NamedExecContext(ctx, t.insertQuery, rec); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create %s: %w", t.spec.entity, models.ErrAlreadyExists)
		}
		return fmt.Errorf("create %s: %w", t.spec.entity, err)
	}

	t.logger.Debug("Record created",
		logger.Resource(t.spec.name),
		logger.String("id", PT(rec).GetID()),
	)
	return nil
}

func (t *table[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	query := `SELECT ` + t.selectCols + ` FROM ` + t.spec.name + ` WHERE id = $1`

	var rec T
	if err := t.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", t.spec.entity, err)
	}
	return &rec, nil
}

func (t *table[T, PT]) List(ctx context.Context, filter ListFilter) ([]T, error) {
	where, args := t.buildListWhere(filter)
	// #nosec G202 -- column names come from tableSpec, values are bound
	query := `SELECT ` + t.selectCols + ` FROM ` + t.spec.name + ` WHERE 1=1` + where + t.buildListOrder(filter)
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	recs := make([]T, 0)
	if err := t.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.spec.name, err)
	}
	return recs, nil
}

func (t *table[T, PT]) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := t.buildListWhere(filter)
	query := `SELECT COUNT(*) FROM ` + t.spec.name + ` WHERE 1=1` + where

	var count int
	if err := t.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.spec.name, err)
	}
	return count, nil
}

func (t *table[T, PT]) Update(ctx context.Context, rec *T) error {
	PT(rec).Touch(t.now())

	result, err := t.db.NamedExecContext(ctx, t.updateQuery, rec)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update %s: %w", t.spec.entity, models.ErrAlreadyExists)
		}
		return fmt.Errorf("update %s: %w", t.spec.entity, err)
	}
	return requireAffected(result, t.spec.entity)
}

func (t *table[T, PT]) Delete(ctx context.Context, id string) error {
	result, err := t.db.ExecContext(ctx, `DELETE FROM `+t.spec.name+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.spec.entity, err)
	}
	if err = requireAffected(result, t.spec.entity); err != nil {
		return err
	}

	t.logger.Debug("Record deleted", logger.Resource(t.spec.name), logger.String("id", id))
	return nil
}

// ToggleStatus flips is_active in a single statement and returns the new row.
func (t *table[T, PT]) ToggleStatus(ctx context.Context, id string) (*T, error) {
	if !t.spec.hasActive {
		return nil, fmt.Errorf("toggle %s: no is_active column", t.spec.entity)
	}

	query := `UPDATE ` + t.spec.name + ` SET is_active = NOT is_active, updated_at = $2 WHERE id = $1 RETURNING ` + t.selectCols

	var rec T
	if err := t.db.GetContext(ctx, &rec, query, id, t.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("toggle %s: %w", t.spec.entity, err)
	}
	return &rec, nil
}

func (t *table[T, PT]) buildListWhere(filter ListFilter) (whereClause string, args []any) {
	var clauses []string
	args = make([]any, 0)
	pos := 1

	if search := strings.TrimSpace(filter.Search); search != "" && len(t.spec.searchColumns) > 0 {
		ors := make([]string, 0, len(t.spec.searchColumns))
		for _, col := range t.spec.searchColumns {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, pos))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		args = append(args, "%"+search+"%")
		pos++
	}
	if t.spec.hasType && filter.Type != "" {
		clauses = append(clauses, fmt.Sprintf("type = $%d", pos))
		args = append(args, string(filter.Type))
		pos++
	}
	if t.spec.hasStatus && filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", pos))
		args = append(args, filter.Status)
		pos++
	}
	if t.spec.hasActive && filter.IsActive != nil {
		clauses = append(clauses, fmt.Sprintf("is_active = $%d", pos))
		args = append(args, *filter.IsActive)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

func (t *table[T, PT]) buildListOrder(filter ListFilter) string {
	column, ok := t.spec.sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	return " ORDER BY " + column + " " + order
}

func requireAffected(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
