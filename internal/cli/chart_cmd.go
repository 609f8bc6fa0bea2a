package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/orgchart/internal/cli/formatter"
	"github.com/alexanderramin/orgchart/internal/document"
	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/repository"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the chart as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadChart(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Organization chart"))
			fmt.Fprint(out, formatter.RenderTree(formatter.ChartItems(tree)))
			if chartIsEmpty(tree) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.RenderBox("Empty chart",
					"Add a group:     orgchart add group --name NAME\n"+
						"Add a ministry:  orgchart add ministry --name NAME"))
			}
			return nil
		},
	}
}

func chartIsEmpty(t *domain.Tree) bool {
	root := t.Root().Groups
	return len(root) == 1 && len(t.TopLevel().Ministries) == 0
}

func newExportCmd(app *App) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored chart document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Chart.Restore(cmd.Context())
			if errors.Is(err, repository.ErrNotFound) {
				doc, err = document.Document{Ministries: []document.Ministry{}, Groups: []document.Group{}}, nil
			}
			if err != nil {
				return err
			}

			var data []byte
			if pretty {
				data, err = json.MarshalIndent(doc, "", "  ")
			} else {
				data, err = json.Marshal(doc)
			}
			if err != nil {
				return fmt.Errorf("encoding chart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the chart with a JSON document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc, err := document.Decode(data)
			if err != nil {
				return err
			}
			tree, err := app.Chart.Import(cmd.Context(), doc)
			if err != nil {
				return err
			}

			groups, ministries := 0, 0
			tree.Walk(func(n *domain.Node, _ int) bool {
				switch {
				case n == tree.Sink():
					return false
				case n.Kind == domain.KindGroup && !n.TopLevel:
					groups++
				case n.Kind == domain.KindMinistry:
					ministries++
				}
				return true
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d groups, %d ministries from %s\n",
				formatter.StyleGreen.Render("Imported"), groups, ministries, args[0])
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
