package admin

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinodtana/ai-tools-admin-web/cmd/common"
	"github.com/vinodtana/ai-tools-admin-web/internal/datatable"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
	"github.com/vinodtana/ai-tools-admin-web/internal/rbac"
)

// Command returns `admin` and its subcommands.
func Command(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operator console for the catalog",
		Long: `Signs in as a staff account and manages contents, categories, users,
contacts and staff accounts. The backend is the admin API unless
console.backend is "local".`,
	}

	open := func(cmd *cobra.Command) (*Console, error) {
		return Open(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	cmd.AddCommand(
		loginCommand(open),
		logoutCommand(open),
		whoamiCommand(open),
		menuCommand(open),
		listCommand(open),
		showCommand(open),
		createCommand(open),
		updateCommand(open),
		toggleCommand(open),
		deleteCommand(open),
		dashboardCommand(open),
	)
	return cmd
}

type opener func(*cobra.Command) (*Console, error)

func loginCommand(open opener) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = readLine(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: "); err != nil {
					return err
				}
			}
			return c.Login(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "staff email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func readLine(in io.Reader, prompt io.Writer, label string) (string, error) {
	fmt.Fprint(prompt, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func logoutCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			return c.Logout()
		},
	}
}

func whoamiCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			user, err := c.requireSession()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Out, "%s <%s> (%s)\n", user.Name, user.Email, rbac.NormalizeRole(string(user.Role)))
			return nil
		},
	}
}

func menuCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the sections available to your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			if _, err = c.requireSession(); err != nil {
				return err
			}
			items := c.Store.Menu()
			table := datatable.New("Menu",
				datatable.Column[rbac.MenuItem]{Header: "Section", Render: func(m *rbac.MenuItem) string { return m.Title }},
				datatable.Column[rbac.MenuItem]{Header: "Path", Render: func(m *rbac.MenuItem) string { return m.Path }},
			)
			table.Render(c.Out, items, models.NewPagination(1, len(items), len(items)), "")
			return nil
		},
	}
}

type listFlags struct {
	page      int
	limit     int
	search    string
	sortBy    string
	sortOrder string
	typ       string
	status    string
	active    string
}

func listCommand(open opener) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List records as a table",
		Long: `Resources: contents, categories, manage-users, users, contacts, or a
content type (tools, prompts, articles, news, influencers).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], rbac.ActionRead, func(r resource, filters map[string]string) error {
				setFilter(filters, "type", f.typ)
				setFilter(filters, "status", f.status)
				setFilter(filters, "isActive", f.active)
				params := models.ListParams{
					Page: f.page, Limit: f.limit, Search: f.search, SortBy: f.sortBy, SortOrder: f.sortOrder,
				}
				return r.list(cmd.Context(), c, params, filters)
			})
		},
	}
	cmd.Flags().IntVar(&f.page, "page", models.DefaultPage, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", models.DefaultLimit, "rows per page")
	cmd.Flags().StringVar(&f.search, "search", "", "free-text search")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "", "sort column")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", "", "asc or desc")
	cmd.Flags().StringVar(&f.typ, "type", "", "content type filter")
	cmd.Flags().StringVar(&f.status, "status", "", "Draft, Published or Unpublished")
	cmd.Flags().StringVar(&f.active, "active", "", "true or false")
	return cmd
}

func setFilter(filters map[string]string, key, value string) {
	if value != "" {
		filters[key] = value
	}
}

func showCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <resource> <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], rbac.ActionRead, func(r resource, _ map[string]string) error {
				return r.show(cmd.Context(), c, args[1])
			})
		},
	}
}

func createCommand(open opener) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create <resource>",
		Short: "Create a record from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], rbac.ActionWrite, func(r resource, preset map[string]string) error {
				if body, err = withPreset(body, preset); err != nil {
					return err
				}
				return r.create(cmd.Context(), c, body)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file, or - for stdin")
	return cmd
}

func updateCommand(open opener) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <resource> <id>",
		Short: "Update a record from a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], rbac.ActionWrite, func(r resource, _ map[string]string) error {
				return r.update(cmd.Context(), c, args[1], body)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file, or - for stdin")
	return cmd
}

func readBody(stdin io.Reader, file string) (json.RawMessage, error) {
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(raw) {
		return nil, errors.New("body is not valid JSON")
	}
	return raw, nil
}

// withPreset sets preset keys (the content type of `create tools`) that the
// body leaves out.
func withPreset(body json.RawMessage, preset map[string]string) (json.RawMessage, error) {
	if len(preset) == 0 {
		return body, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("body must be a JSON object: %w", err)
	}
	for k, v := range preset {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
	return json.Marshal(doc)
}

func toggleCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <resource> <id>",
		Short: "Flip a record's active flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], rbac.ActionWrite, func(r resource, _ map[string]string) error {
				return r.toggle(cmd.Context(), c, args[1])
			})
		},
	}
}

func deleteCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			return c.run(cmd.Context(), args[0], rbac.ActionDelete, func(r resource, _ map[string]string) error {
				return r.remove(cmd.Context(), c, args[1])
			})
		},
	}
}

func dashboardCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show stat cards and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := open(cmd)
			if err != nil {
				return err
			}
			if _, err = c.requireSession(); err != nil {
				return err
			}
			defer c.Flush()

			dash, err := c.Store.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			n := len(dash.Stats)
			datatable.StatsTable().Render(c.Out, dash.Stats, models.NewPagination(1, n, n), "")
			n = len(dash.RecentActivity)
			datatable.ActivityTable().Render(c.Out, dash.RecentActivity, models.NewPagination(1, n, n), "")
			return nil
		},
	}
}
