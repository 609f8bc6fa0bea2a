package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/orgchart/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently saved versions of the chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := app.Chart.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(snaps) == 0 {
				fmt.Fprintln(out, formatter.Dim("No saved versions yet."))
				return nil
			}

			now := app.now()
			rows := make([][]string, 0, len(snaps))
			for _, s := range snaps {
				rows = append(rows, []string{
					strconv.FormatInt(s.Seq, 10),
					formatter.TruncID(s.ID),
					formatter.FormatBytes(s.SizeBytes),
					formatter.HumanTimestamp(s.CreatedAt, now),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"SEQ", "SNAPSHOT", "SIZE", "SAVED"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of versions to show (0 for all)")
	return cmd
}

func newRevertCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revert SNAPSHOT",
		Short: "Make a saved version the current chart (ID or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSnapshotID(cmd, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Chart.Revert(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s to snapshot %s\n",
				formatter.StyleGreen.Render("Reverted"), formatter.TruncID(id))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the current chart (saved versions are kept for revert)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errors.New("--yes is required when not running in a terminal")
				}
				if err := confirmForm("Clear the current chart?", &yes).Run(); err != nil {
					return formError(err)
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
					return nil
				}
			}

			cleared, err := app.Chart.Reset(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cleared {
				fmt.Fprintln(out, "Chart is already empty.")
				return nil
			}
			fmt.Fprintf(out, "%s. Use %s to bring a saved version back.\n",
				formatter.StyleGreen.Render("Chart cleared"), formatter.Bold("orgchart revert"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// resolveSnapshotID accepts a full snapshot ID or a unique prefix of one.
func resolveSnapshotID(cmd *cobra.Command, app *App, input string) (string, error) {
	snaps, err := app.Chart.History(cmd.Context(), 0)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range snaps {
		if s.ID == input {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("snapshot not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("snapshot ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
