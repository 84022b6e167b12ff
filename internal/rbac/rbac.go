// Package rbac holds the static role tables behind menu visibility and route guards.
package rbac

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// MenuItem is one sidebar entry.
type MenuItem struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Path  string        `json:"path"`
	Icon  string        `json:"icon"`
	Roles []models.Role `json:"-"`
}

var (
	everyone = []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleEditor, models.RoleViewer}
	editors  = []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleEditor}
	admins   = []models.Role{models.RoleOwner, models.RoleAdmin}
)

// Menu is the sidebar in display order.
var Menu = []MenuItem{
	{ID: "dashboard", Title: "Dashboard", Path: "/dashboard", Icon: "layout-dashboard", Roles: everyone},
	{ID: "contents", Title: "AI Contents", Path: "/contents", Icon: "wrench", Roles: everyone},
	{ID: "categories", Title: "AI Categories", Path: "/categories", Icon: "folder", Roles: everyone},
	{ID: "users", Title: "Users", Path: "/users", Icon: "user", Roles: editors},
	{ID: "contact", Title: "Get In Touch", Path: "/contact", Icon: "mail", Roles: everyone},
	{ID: "manage-users", Title: "Manage Users", Path: "/manage-users", Icon: "settings", Roles: admins},
}

// NormalizeRole maps backend role strings (ROLE_ADMIN, STORE_OWNER, editor)
// onto display roles.
func NormalizeRole(raw string) models.Role {
	role := strings.TrimPrefix(strings.TrimSpace(raw), "ROLE_")
	switch strings.ToUpper(role) {
	case "":
		return ""
	case "STORE_OWNER", "OWNER":
		return models.RoleOwner
	case "ADMIN":
		return models.RoleAdmin
	default:
		_, size := utf8.DecodeRuneInString(role)
		return models.Role(cases.Upper(language.Und).String(role[:size]) + cases.Lower(language.Und).String(role[size:]))
	}
}

// CheckRolePermission reports whether role may see the menu item menuID.
// Unknown items are hidden.
func CheckRolePermission(role models.Role, menuID string) bool {
	for _, item := range Menu {
		if item.ID == menuID {
			return slices.Contains(item.Roles, role)
		}
	}
	return false
}

// VisibleMenu returns the items role may see, in display order.
func VisibleMenu(role models.Role) []MenuItem {
	out := make([]MenuItem, 0, len(Menu))
	for _, item := range Menu {
		if slices.Contains(item.Roles, role) {
			out = append(out, item)
		}
	}
	return out
}

// Action is what a request does to a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

var policy = map[string]map[Action][]models.Role{
	models.ResourceContents:   {ActionRead: everyone, ActionWrite: editors, ActionDelete: admins},
	models.ResourceCategories: {ActionRead: everyone, ActionWrite: editors, ActionDelete: admins},
	models.ResourceUsers:      {ActionRead: editors, ActionWrite: editors, ActionDelete: admins},
	models.ResourceContacts:   {ActionRead: everyone, ActionWrite: admins, ActionDelete: admins},
	models.ResourceStaff:      {ActionRead: admins, ActionWrite: admins, ActionDelete: admins},
}

// Can reports whether role may perform action on resource.
func Can(role models.Role, resource string, action Action) bool {
	return slices.Contains(policy[resource][action], role)
}

// Roles lists the roles allowed to perform action on resource.
func Roles(resource string, action Action) []models.Role {
	return slices.Clone(policy[resource][action])
}
