package local

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/repository"
)

// Blob keys, matching the browser localStorage keys.
const (
	KeyContents   = "admin_contents"
	KeyCategories = "admin_categories"
	KeyStaff      = "admin_manage_users"
	KeyUsers      = "admin_users"
	KeyContacts   = "admin_contacts"
)

const sortTimeLayout = "2006-01-02T15:04:05.000000000Z"

func timeKey(t time.Time) string { return t.UTC().Format(sortTimeLayout) }

func numberKey(f float64) string { return fmt.Sprintf("%020.4f", f) }

func activeMatches(isActive bool, filter repository.ListFilter) bool {
	return filter.IsActive == nil || *filter.IsActive == isActive
}

type ContentRepository struct {
	*collection[models.Content, *models.Content]
}

func NewContentRepository(blob *Blob) *ContentRepository {
	c := newCollection[models.Content](blob, KeyContents)
	c.filter = func(rec *models.Content, f repository.ListFilter) bool {
		if f.Type != "" && rec.Type != f.Type {
			return false
		}
		if f.Status != "" && string(rec.Status) != f.Status {
			return false
		}
		return activeMatches(rec.IsActive, f)
	}
	c.sortValue = func(rec *models.Content, key string) (string, bool) {
		switch key {
		case "name":
			return strings.ToLower(rec.Name), true
		case "status":
			return string(rec.Status), true
		case "rating":
			return numberKey(rec.Rating), true
		case "usersCount":
			return numberKey(float64(rec.UsersCount)), true
		case "viewsCount":
			return numberKey(float64(rec.ViewsCount)), true
		case "createdAt":
			return timeKey(rec.CreatedAt), true
		case "updatedAt":
			return timeKey(rec.UpdatedAt), true
		default:
			return "", false
		}
	}
	return &ContentRepository{c}
}

func (r *ContentRepository) CountByType(_ context.Context) (map[models.ContentType]int, error) {
	items, err := r.view()
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ContentType]int, len(models.ContentTypes))
	for i := range items {
		counts[items[i].Type]++
	}
	return counts, nil
}

func (r *ContentRepository) CountCreatedBetween(_ context.Context, from, to time.Time) (int, error) {
	items, err := r.view()
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range items {
		created := items[i].CreatedAt
		if !created.Before(from) && created.Before(to) {
			n++
		}
	}
	return n, nil
}

type CategoryRepository struct {
	*collection[models.Category, *models.Category]
}

func NewCategoryRepository(blob *Blob) *CategoryRepository {
	c := newCollection[models.Category](blob, KeyCategories)
	c.filter = func(rec *models.Category, f repository.ListFilter) bool {
		if f.Status != "" && string(rec.Status) != f.Status {
			return false
		}
		return activeMatches(rec.IsActive, f)
	}
	c.sortValue = func(rec *models.Category, key string) (string, bool) {
		switch key {
		case "name":
			return strings.ToLower(rec.Name), true
		case "status":
			return string(rec.Status), true
		case "createdAt":
			return timeKey(rec.CreatedAt), true
		default:
			return "", false
		}
	}
	c.unique = func(rec *models.Category) string { return strings.ToLower(rec.Name) }
	return &CategoryRepository{c}
}

// storedStaff keeps the password hash that the API model never serializes.
type storedStaff struct {
	models.ManageUser
	PasswordHash string `json:"passwordHash,omitempty"`
}

type StaffRepository struct {
	*collection[models.ManageUser, *models.ManageUser]
}

func NewStaffRepository(blob *Blob) *StaffRepository {
	c := newCollection[models.ManageUser](blob, KeyStaff)
	c.filter = func(rec *models.ManageUser, f repository.ListFilter) bool {
		if f.Status != "" && rec.Status != f.Status {
			return false
		}
		return activeMatches(rec.IsActive, f)
	}
	c.sortValue = func(rec *models.ManageUser, key string) (string, bool) {
		switch key {
		case "name":
			return strings.ToLower(rec.Name), true
		case "email":
			return rec.Email, true
		case "role":
			return string(rec.Role), true
		case "createdAt":
			return timeKey(rec.CreatedAt), true
		default:
			return "", false
		}
	}
	c.unique = func(rec *models.ManageUser) string { return strings.ToLower(rec.Email) }
	c.decode = func(raw json.RawMessage) ([]models.ManageUser, error) {
		var stored []storedStaff
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyStaff, err)
		}
		out := make([]models.ManageUser, len(stored))
		for i := range stored {
			out[i] = stored[i].ManageUser
			out[i].PasswordHash = stored[i].PasswordHash
		}
		return out, nil
	}
	c.encode = func(items []models.ManageUser) (json.RawMessage, error) {
		stored := make([]storedStaff, len(items))
		for i := range items {
			stored[i] = storedStaff{ManageUser: items[i], PasswordHash: items[i].PasswordHash}
		}
		return json.Marshal(stored)
	}
	return &StaffRepository{c}
}

func (r *StaffRepository) GetByEmail(_ context.Context, email string) (*models.ManageUser, error) {
	items, err := r.view()
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for i := range items {
		if strings.ToLower(items[i].Email) == email {
			return &items[i], nil
		}
	}
	return nil, models.ErrNotFound
}

type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

type UserRepository struct {
	*collection[models.User, *models.User]
}

func NewUserRepository(blob *Blob) *UserRepository {
	c := newCollection[models.User](blob, KeyUsers)
	c.sortValue = func(rec *models.User, key string) (string, bool) {
		switch key {
		case "email":
			return rec.Email, true
		case "source":
			return rec.Source, true
		case "createdAt":
			return timeKey(rec.CreatedAt), true
		default:
			return "", false
		}
	}
	c.unique = func(rec *models.User) string { return strings.ToLower(rec.Email) }
	c.decode = func(raw json.RawMessage) ([]models.User, error) {
		var stored []storedUser
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyUsers, err)
		}
		out := make([]models.User, len(stored))
		for i := range stored {
			out[i] = stored[i].User
			out[i].PasswordHash = stored[i].PasswordHash
		}
		return out, nil
	}
	c.encode = func(items []models.User) (json.RawMessage, error) {
		stored := make([]storedUser, len(items))
		for i := range items {
			stored[i] = storedUser{User: items[i], PasswordHash: items[i].PasswordHash}
		}
		return json.Marshal(stored)
	}
	return &UserRepository{c}
}

type ContactRepository struct {
	*collection[models.Contact, *models.Contact]
}

func NewContactRepository(blob *Blob) *ContactRepository {
	c := newCollection[models.Contact](blob, KeyContacts)
	c.sortValue = func(rec *models.Contact, key string) (string, bool) {
		switch key {
		case "name":
			return strings.ToLower(rec.Name), true
		case "email":
			return rec.Email, true
		case "createdAt":
			return timeKey(rec.CreatedAt), true
		default:
			return "", false
		}
	}
	return &ContactRepository{c}
}

// NewSet wires every local repository onto blob.
func NewSet(blob *Blob) repository.Set {
	return repository.Set{
		Contents:   NewContentRepository(blob),
		Categories: NewCategoryRepository(blob),
		Staff:      NewStaffRepository(blob),
		Users:      NewUserRepository(blob),
		Contacts:   NewContactRepository(blob),
	}
}
