package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StringArray is a list column stored as JSONB.
type StringArray []string

// Value implements driver.Valuer.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan StringArray: unsupported type %T", value)
	}

	return json.Unmarshal(raw, a)
}

// Compact trims every entry and drops blanks.
func (a StringArray) Compact() StringArray {
	out := make(StringArray, 0, len(a))
	for _, s := range a {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Status is the publication state shared by content and categories.
type Status string

const (
	StatusDraft       Status = "Draft"
	StatusPublished   Status = "Published"
	StatusUnpublished Status = "Unpublished"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusUnpublished:
		return true
	default:
		return false
	}
}

// Role is a back-office staff role.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
	RoleOwner  Role = "Owner"
)

var errEmptyRole = errors.New("role is empty")

// ParseRole accepts the display form of a staff role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer, RoleOwner:
		return Role(s), nil
	case "":
		return "", errEmptyRole
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
