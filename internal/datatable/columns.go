package datatable

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/richtext"
)

const dateLayout = "2006-01-02"

func active(b bool) string {
	if b {
		return "Active"
	}
	return "Inactive"
}

// ContentTable lists catalog content; the plan column only shows for tools.
func ContentTable(t models.ContentType) *Table[models.Content] {
	title := "AI Contents"
	if t.Valid() {
		title = "AI " + cases.Title(language.English).String(string(t))
	}

	cols := []Column[models.Content]{
		{Header: "Name", MaxWidth: 28, Render: func(c *models.Content) string { return c.Name }},
		{Header: "Type", Render: func(c *models.Content) string { return c.Type.Singular() }},
		{Header: "Tagline", MaxWidth: 40, Render: func(c *models.Content) string { return Truncate(c.Tagline, 40) }},
		{Header: "Categories", MaxWidth: 24, Render: func(c *models.Content) string { return strings.Join(c.Categories, ", ") }},
	}
	if t == "" || t == models.ContentTypeTools {
		cols = append(cols, Column[models.Content]{
			Header: "Plan", Render: func(c *models.Content) string { return string(c.PlanType) },
		})
	}
	cols = append(cols,
		Column[models.Content]{Header: "Status", Render: func(c *models.Content) string { return string(c.Status) }},
		Column[models.Content]{Header: "Active", Render: func(c *models.Content) string { return active(c.IsActive) }},
		Column[models.Content]{Header: "ID", Render: func(c *models.Content) string { return c.ID }},
	)
	return New(title, cols...)
}

func CategoryTable() *Table[models.Category] {
	return New("AI Categories",
		Column[models.Category]{Header: "Name", MaxWidth: 30, Render: func(c *models.Category) string { return c.Name }},
		Column[models.Category]{Header: "Tagline", MaxWidth: 40, Render: func(c *models.Category) string { return Truncate(c.Tagline, 40) }},
		Column[models.Category]{Header: "Status", Render: func(c *models.Category) string { return string(c.Status) }},
		Column[models.Category]{Header: "Active", Render: func(c *models.Category) string { return active(c.IsActive) }},
		Column[models.Category]{Header: "ID", Render: func(c *models.Category) string { return c.ID }},
	)
}

func StaffTable() *Table[models.ManageUser] {
	return New("Manage Users",
		Column[models.ManageUser]{Header: "Name", MaxWidth: 28, Render: func(u *models.ManageUser) string { return u.Name }},
		Column[models.ManageUser]{Header: "Email", Render: func(u *models.ManageUser) string { return u.Email }},
		Column[models.ManageUser]{Header: "Role", Render: func(u *models.ManageUser) string { return string(u.Role) }},
		Column[models.ManageUser]{Header: "Active", Render: func(u *models.ManageUser) string { return active(u.IsActive) }},
		Column[models.ManageUser]{Header: "ID", Render: func(u *models.ManageUser) string { return u.ID }},
	)
}

func UserTable() *Table[models.User] {
	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	return New("Users",
		Column[models.User]{Header: "Email", Render: func(u *models.User) string { return u.Email }},
		Column[models.User]{Header: "Phone", Render: func(u *models.User) string { return u.Phone }},
		Column[models.User]{Header: "Emails", Render: func(u *models.User) string { return yesNo(u.EnableEmailNotifications) }},
		Column[models.User]{Header: "Newsletter", Render: func(u *models.User) string { return yesNo(u.EnableWeeklyNewsletter) }},
		Column[models.User]{Header: "Joined", Render: func(u *models.User) string { return u.CreatedAt.Format(dateLayout) }},
		Column[models.User]{Header: "ID", Render: func(u *models.User) string { return u.ID }},
	)
}

func ContactTable() *Table[models.Contact] {
	return New("Get In Touch",
		Column[models.Contact]{Header: "Name", MaxWidth: 24, Render: func(c *models.Contact) string { return c.Name }},
		Column[models.Contact]{Header: "Email", Render: func(c *models.Contact) string { return c.Email }},
		Column[models.Contact]{Header: "Subject", MaxWidth: 30, Render: func(c *models.Contact) string { return c.Subject }},
		Column[models.Contact]{Header: "Message", MaxWidth: 40, Render: func(c *models.Contact) string { return Truncate(c.Message, 40) }},
		Column[models.Contact]{Header: "Received", Render: func(c *models.Contact) string { return c.CreatedAt.Format(dateLayout) }},
		Column[models.Contact]{Header: "ID", Render: func(c *models.Contact) string { return c.ID }},
	)
}

// StatsTable renders the dashboard cards as a two-column table.
func StatsTable() *Table[models.StatCard] {
	return New("Dashboard",
		Column[models.StatCard]{Header: "Metric", Render: func(s *models.StatCard) string { return s.Title }},
		Column[models.StatCard]{Header: "Value", AlignRight: true, Render: func(s *models.StatCard) string {
			return strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Unit
		}},
	)
}

// ActivityTable renders the recent-activity feed.
func ActivityTable() *Table[models.Activity] {
	return New("Recent Activity",
		Column[models.Activity]{Header: "When", Render: func(a *models.Activity) string { return a.Timestamp.Format("2006-01-02 15:04") }},
		Column[models.Activity]{Header: "Action", Render: func(a *models.Activity) string { return a.Action }},
		Column[models.Activity]{Header: "Resource", Render: func(a *models.Activity) string { return a.Resource }},
		Column[models.Activity]{Header: "Name", MaxWidth: 30, Render: func(a *models.Activity) string { return a.Name }},
		Column[models.Activity]{Header: "By", Render: func(a *models.Activity) string { return a.Actor }},
	)
}

// Overview is the content detail preview line.
func Overview(c *models.Content, n int) string {
	return richtext.Excerpt(c.Overview, n)
}
