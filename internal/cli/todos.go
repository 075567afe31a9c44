package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/ui"
)

// -------------- subcommand impls ----------------

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    exactArgs(0, "todo ls [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session()
			if err != nil {
				return err
			}
			sess.Load(cmd.Context())
			st := sess.State()
			if st.Err != "" {
				return errors.New(st.Err)
			}
			ui.Panel(panelLines(st, group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new todo (title can be multiple words)",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			sess, err := app.session()
			if err != nil {
				return err
			}
			sess.Add(cmd.Context(), model.Todo{Title: title, Description: description})
			st := sess.State()
			if st.Err != "" {
				return errors.New(st.Err)
			}
			created := st.Items[len(st.Items)-1]
			ui.OK(fmt.Sprintf("added #%d", created.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a todo",
		Args:  exactArgs(1, "todo done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			sess, current, err := app.loadOne(cmd, id)
			if err != nil {
				return err
			}
			sess.Toggle(cmd.Context(), current)
			st := sess.State()
			if st.Err != "" {
				return errors.New(st.Err)
			}
			if t, _ := st.Find(id); t.Completed {
				ui.OK("marked done")
			} else {
				ui.OK("marked pending")
			}
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title and/or description of a todo",
		Args:  exactArgs(1, "todo edit <id> [--title T] [--description D]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("edit", args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("description") {
				return usagef("edit: nothing to change (use --title and/or --description)")
			}
			if flags.Changed("title") && strings.TrimSpace(title) == "" {
				return usagef("edit: empty title")
			}
			sess, current, err := app.loadOne(cmd, id)
			if err != nil {
				return err
			}
			patched := current
			if flags.Changed("title") {
				patched.Title = strings.TrimSpace(title)
			}
			if flags.Changed("description") {
				patched.Description = description
			}
			sess.Edit(cmd.Context(), id, patched)
			if st := sess.State(); st.Err != "" {
				return errors.New(st.Err)
			}
			ui.OK("updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    exactArgs(1, "todo rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			sess, _, err := app.loadOne(cmd, id)
			if err != nil {
				return err
			}
			sess.Remove(cmd.Context(), id)
			if st := sess.State(); st.Err != "" {
				return errors.New(st.Err)
			}
			ui.OK("removed")
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo with its description rendered as markdown",
		Args:  exactArgs(1, "todo show <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("show", args[0])
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			t, err := client.Get(cmd.Context(), id)
			if err != nil {
				if api.IsNotFound(err) {
					return usagef("show: no todo with id %d", id)
				}
				return err
			}
			out, err := app.renderMarkdown(todoMarkdown(t))
			if err != nil {
				return err
			}
			ui.Println(strings.TrimRight(out, "\n"))
			return nil
		},
	}
}

// loadOne fetches the collection and returns the todo with id, so that
// updates can send the full record.
func (app *App) loadOne(cmd *cobra.Command, id int64) (*session.Session, model.Todo, error) {
	sess, err := app.session()
	if err != nil {
		return nil, model.Todo{}, err
	}
	sess.Load(cmd.Context())
	st := sess.State()
	if st.Err != "" {
		return nil, model.Todo{}, errors.New(st.Err)
	}
	t, ok := st.Find(id)
	if !ok {
		return nil, model.Todo{}, usagef("no todo with id %d (run `todo ls` to see valid ids)", id)
	}
	return sess, t, nil
}

func (app *App) renderMarkdown(md string) (string, error) {
	style := glamour.WithAutoStyle()
	if app.cfg.NoColor || ui.Current().Name == "mono" {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func todoMarkdown(t model.Todo) string {
	status := "pending"
	if t.Completed {
		status = "done"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "**#%d** · %s\n\n", t.ID, status)
	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	return b.String()
}
