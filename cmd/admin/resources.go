package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vinodtana/ai-tools-admin-web/internal/datatable"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/rbac"
	"github.com/vinodtana/ai-tools-admin-web/internal/store"
)

// resource is a console-facing view of one store slice.
type resource interface {
	permission() string
	list(ctx context.Context, c *Console, params models.ListParams, filters map[string]string) error
	show(ctx context.Context, c *Console, id string) error
	create(ctx context.Context, c *Console, body json.RawMessage) error
	update(ctx context.Context, c *Console, id string, body json.RawMessage) error
	toggle(ctx context.Context, c *Console, id string) error
	remove(ctx context.Context, c *Console, id string) error
}

type binding[T any] struct {
	rbacResource string
	slice        func(*store.Store) *store.Slice[T]
	table        func(filters map[string]string) *datatable.Table[T]
}

func (b binding[T]) permission() string { return b.rbacResource }

func (b binding[T]) list(ctx context.Context, c *Console, params models.ListParams, filters map[string]string) error {
	s := b.slice(c.Store)
	if err := s.Fetch(ctx, params, filters); err != nil {
		return err
	}
	state := s.Snapshot()
	b.table(filters).Render(c.Out, state.Items, state.Pagination, state.Params.Search)
	return nil
}

func (b binding[T]) show(ctx context.Context, c *Console, id string) error {
	rec, err := b.slice(c.Store).Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(c, rec)
}

func (b binding[T]) create(ctx context.Context, c *Console, body json.RawMessage) error {
	rec, err := b.slice(c.Store).Create(ctx, body)
	if err != nil {
		return err
	}
	return printJSON(c, rec)
}

func (b binding[T]) update(ctx context.Context, c *Console, id string, body json.RawMessage) error {
	rec, err := b.slice(c.Store).Update(ctx, id, body)
	if err != nil {
		return err
	}
	return printJSON(c, rec)
}

func (b binding[T]) toggle(ctx context.Context, c *Console, id string) error {
	_, err := b.slice(c.Store).Toggle(ctx, id)
	return err
}

func (b binding[T]) remove(ctx context.Context, c *Console, id string) error {
	return b.slice(c.Store).Delete(ctx, id)
}

func printJSON(c *Console, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = fmt.Fprintln(c.Out, string(raw))
	return err
}

var contents = binding[models.Content]{
	rbacResource: models.ResourceContents,
	slice:        func(s *store.Store) *store.Slice[models.Content] { return s.Contents },
	table: func(filters map[string]string) *datatable.Table[models.Content] {
		return datatable.ContentTable(models.ContentType(filters["type"]))
	},
}

var resources = map[string]resource{
	models.ResourceContents: contents,
	models.ResourceCategories: binding[models.Category]{
		rbacResource: models.ResourceCategories,
		slice:        func(s *store.Store) *store.Slice[models.Category] { return s.Categories },
		table:        func(map[string]string) *datatable.Table[models.Category] { return datatable.CategoryTable() },
	},
	models.ResourceStaff: binding[models.ManageUser]{
		rbacResource: models.ResourceStaff,
		slice:        func(s *store.Store) *store.Slice[models.ManageUser] { return s.Staff },
		table:        func(map[string]string) *datatable.Table[models.ManageUser] { return datatable.StaffTable() },
	},
	models.ResourceUsers: binding[models.User]{
		rbacResource: models.ResourceUsers,
		slice:        func(s *store.Store) *store.Slice[models.User] { return s.Users },
		table:        func(map[string]string) *datatable.Table[models.User] { return datatable.UserTable() },
	},
	models.ResourceContacts: binding[models.Contact]{
		rbacResource: models.ResourceContacts,
		slice:        func(s *store.Store) *store.Slice[models.Contact] { return s.Contacts },
		table:        func(map[string]string) *datatable.Table[models.Contact] { return datatable.ContactTable() },
	},
}

// lookup resolves a resource name. Content types ("tools", "prompts", ...)
// resolve to contents with the type filter preset.
func lookup(name string) (resource, map[string]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "contact", "get-in-touch":
		name = models.ResourceContacts
	case "staff":
		name = models.ResourceStaff
	}
	if r, ok := resources[name]; ok {
		return r, map[string]string{}, nil
	}
	if t := models.ContentType(name); t.Valid() {
		return contents, map[string]string{"type": string(t)}, nil
	}
	return nil, nil, fmt.Errorf("unknown resource %q (one of %s)", name, strings.Join(resourceNames(), ", "))
}

func resourceNames() []string {
	names := make([]string, 0, len(resources)+len(models.ContentTypes))
	for name := range resources {
		names = append(names, name)
	}
	for _, t := range models.ContentTypes {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// run resolves name, checks action against the session role and calls fn.
func (c *Console) run(ctx context.Context, name string, action rbac.Action, fn func(resource, map[string]string) error) error {
	r, preset, err := lookup(name)
	if err != nil {
		return err
	}
	if err = c.authorize(r.permission(), action); err != nil {
		return err
	}
	defer c.Flush()
	return fn(r, preset)
}
