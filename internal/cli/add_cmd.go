package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/orgchart/internal/cli/formatter"
	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add groups, ministries and tags",
	}

	cmd.AddCommand(
		newAddGroupCmd(app),
		newAddMinistryCmd(app),
		newAddTagCmd(app),
	)

	return cmd
}

func newAddGroupCmd(app *App) *cobra.Command {
	var name, description, parent string

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Add a group at the root or under another group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.promptName("Group", &name, &description); err != nil {
				return err
			}
			return app.addNode(cmd, func(tree *domain.Tree) (*domain.Node, error) {
				owner := tree.Root()
				if parent != "" {
					p, err := resolveRef(tree, parent)
					if err != nil {
						return nil, fmt.Errorf("--parent: %w", err)
					}
					owner = p
				}
				return tree.AddGroup(owner, name, description)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent group (default: the root)")
	return cmd
}

func newAddMinistryCmd(app *App) *cobra.Command {
	var name, description, group string

	cmd := &cobra.Command{
		Use:   "ministry",
		Short: "Add a ministry to a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.promptName("Ministry", &name, &description); err != nil {
				return err
			}
			return app.addNode(cmd, func(tree *domain.Tree) (*domain.Node, error) {
				g, err := resolveRef(tree, group)
				if err != nil {
					return nil, fmt.Errorf("--group: %w", err)
				}
				return tree.AddMinistry(g, name, description)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Ministry name")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&group, "group", refTopLevel, "Group to add the ministry to")
	return cmd
}

func newAddTagCmd(app *App) *cobra.Command {
	var text, to string

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Add a tag to a ministry or group header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(text) == "" {
				if !app.interactive() {
					return errors.New("--text is required")
				}
				if err := tagForm(&text).Run(); err != nil {
					return formError(err)
				}
			}
			return app.addNode(cmd, func(tree *domain.Tree) (*domain.Node, error) {
				owner, err := resolveRef(tree, to)
				if err != nil {
					return nil, fmt.Errorf("--to: %w", err)
				}
				return tree.AddTag(owner, text)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Tag text")
	cmd.Flags().StringVar(&to, "to", "", "Ministry or group to tag")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// promptName fills a missing name from a form on a terminal.
func (a *App) promptName(title string, name, description *string) error {
	if strings.TrimSpace(*name) != "" {
		return nil
	}
	if !a.interactive() {
		return errors.New("--name is required")
	}
	if err := nameForm(title, name, description).Run(); err != nil {
		return formError(err)
	}
	return nil
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("cancelled")
	}
	return err
}

// addNode loads the chart, applies add and persists the result.
func (a *App) addNode(cmd *cobra.Command, add func(*domain.Tree) (*domain.Node, error)) error {
	ctx := cmd.Context()
	tree, err := a.loadChart(ctx)
	if err != nil {
		return err
	}
	n, err := add(tree)
	if err != nil {
		return err
	}
	if _, err := a.Chart.Persist(ctx, tree); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Added"), n.Label())
	return nil
}
