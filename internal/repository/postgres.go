package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vinodtana/ai-tools-admin-web/internal/logger"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

var contentSpec = tableSpec{
	name:   "contents",
	entity: "content",
	columns: []string{
		"id", "type", "name", "tagline", "logo", "banner_image", "images", "categories",
		"plan_type", "users_count", "rating", "views_count", "author_by", "author_link",
		"author_role", "author_location", "company_name", "tool_url", "price", "readtime",
		"launch_date", "status", "is_active", "overview", "description", "how_to_use",
		"prompt_template", "review", "recent_activities", "features", "use_cases",
		"tool_pros", "tool_cons", "key_achievements", "social_media_links", "news_link",
		"video_url", "created_at", "updated_at",
	},
	searchColumns: []string{"name", "tagline"},
	sortColumns: map[string]string{
		"name": "name", "rating": "rating", "usersCount": "users_count",
		"viewsCount": "views_count", "status": "status", "createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	hasType:   true,
	hasStatus: true,
	hasActive: true,
}

var categorySpec = tableSpec{
	name:          "categories",
	entity:        "category",
	columns:       []string{"id", "name", "tagline", "logo", "status", "is_active", "created_at", "updated_at"},
	searchColumns: []string{"name", "tagline"},
	sortColumns:   map[string]string{"name": "name", "status": "status", "createdAt": "created_at"},
	hasStatus:     true,
	hasActive:     true,
}

var staffSpec = tableSpec{
	name:   "manage_users",
	entity: "manage user",
	columns: []string{
		"id", "name", "email", "ph_number", "status", "is_active", "role",
		"password_hash", "created_at", "updated_at",
	},
	searchColumns: []string{"name", "email"},
	sortColumns:   map[string]string{"name": "name", "email": "email", "role": "role", "createdAt": "created_at"},
	hasStatus:     true,
	hasActive:     true,
}

var userSpec = tableSpec{
	name:   "users",
	entity: "user",
	columns: []string{
		"id", "email", "phone", "enable_email_notifications", "enable_weekly_newsletter",
		"source", "password_hash", "created_at", "updated_at",
	},
	searchColumns: []string{"email", "phone"},
	sortColumns:   map[string]string{"email": "email", "source": "source", "createdAt": "created_at"},
}

var contactSpec = tableSpec{
	name:          "contacts",
	entity:        "contact",
	columns:       []string{"id", "name", "email", "phone", "subject", "message", "created_at", "updated_at"},
	searchColumns: []string{"name", "email", "subject"},
	sortColumns:   map[string]string{"name": "name", "email": "email", "createdAt": "created_at"},
}

// PostgresContentRepository stores every content type in the contents table.
type PostgresContentRepository struct {
	*table[models.Content, *models.Content]
}

func NewContentRepository(db *sqlx.DB, log logger.Logger) *PostgresContentRepository {
	return &PostgresContentRepository{newTable[models.Content](db, log, contentSpec)}
}

// CountByType returns the number of records of each content type.
func (r *PostgresContentRepository) CountByType(ctx context.Context) (map[models.ContentType]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM contents GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("count contents by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ContentType]int, len(models.ContentTypes))
	for rows.Next() {
		var (
			contentType string
			count       int
		)
		if err = rows.Scan(&contentType, &count); err != nil {
			return nil, fmt.Errorf("scan content count: %w", err)
		}
		counts[models.ContentType(contentType)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content counts: %w", err)
	}
	return counts, nil
}

// CountCreatedBetween counts content created in [from, to).
func (r *PostgresContentRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM contents WHERE created_at >= $1 AND created_at < $2`, from, to)
	if err != nil {
		return 0, fmt.Errorf("count contents created between: %w", err)
	}
	return count, nil
}

type PostgresCategoryRepository struct {
	*table[models.Category, *models.Category]
}

func NewCategoryRepository(db *sqlx.DB, log logger.Logger) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{newTable[models.Category](db, log, categorySpec)}
}

type PostgresStaffRepository struct {
	*table[models.ManageUser, *models.ManageUser]
}

func NewStaffRepository(db *sqlx.DB, log logger.Logger) *PostgresStaffRepository {
	return &PostgresStaffRepository{newTable[models.ManageUser](db, log, staffSpec)}
}

// GetByEmail looks a staff account up case-insensitively.
func (r *PostgresStaffRepository) GetByEmail(ctx context.Context, email string) (*models.ManageUser, error) {
	query := `SELECT ` + r.selectCols + ` FROM manage_users WHERE LOWER(email) = $1`

	var u models.ManageUser
	if err := r.db.GetContext(ctx, &u, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get manage user by email: %w", err)
	}
	return &u, nil
}

type PostgresUserRepository struct {
	*table[models.User, *models.User]
}

func NewUserRepository(db *sqlx.DB, log logger.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{newTable[models.User](db, log, userSpec)}
}

type PostgresContactRepository struct {
	*table[models.Contact, *models.Contact]
}

func NewContactRepository(db *sqlx.DB, log logger.Logger) *PostgresContactRepository {
	return &PostgresContactRepository{newTable[models.Contact](db, log, contactSpec)}
}

// NewPostgresSet wires every PostgreSQL repository onto db.
func NewPostgresSet(db *sqlx.DB, log logger.Logger) Set {
	return Set{
		Contents:   NewContentRepository(db, log),
		Categories: NewCategoryRepository(db, log),
		Staff:      NewStaffRepository(db, log),
		Users:      NewUserRepository(db, log),
		Contacts:   NewContactRepository(db, log),
	}
}
