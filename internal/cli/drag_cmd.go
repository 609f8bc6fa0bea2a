package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/orgchart/internal/cli/formatter"
	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/dragdrop"
	"github.com/spf13/cobra"
)

func newMoveCmd(app *App) *cobra.Command {
	var onto, before string
	var part partValue

	cmd := &cobra.Command{
		Use:   "move REF --onto REF [--before REF]",
		Short: "Drag a group or ministry onto a group, or back out of the deleted list",
		Long: `Move replays a drag gesture: it grabs REF, hovers the target and drops.
With --before the ministry is inserted ahead of that sibling; without it,
it is appended. A drop the chart does not allow changes nothing.`,
		Example: `  orgchart move B --before A
  orgchart move Ops/C --onto HR
  orgchart move Sub --onto @top`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if onto == "" && before == "" {
				return errors.New("--onto or --before is required")
			}
			tree, err := app.loadChart(cmd.Context())
			if err != nil {
				return err
			}
			src, err := resolveRef(tree, args[0])
			if err != nil {
				return err
			}

			g := gesture{source: dragdrop.Hit{NodeID: src.ID, Part: partFor(src)}}
			if before != "" {
				sib, err := resolveRef(tree, before)
				if err != nil {
					return fmt.Errorf("--before: %w", err)
				}
				g.over = dragdrop.Hit{NodeID: sib.ID, Part: dragdrop.PartBody}
				g.drop = g.over
			}
			if onto != "" {
				target, err := resolveRef(tree, onto)
				if err != nil {
					return fmt.Errorf("--onto: %w", err)
				}
				g.drop = dragdrop.Hit{NodeID: target.ID, Part: part.or(partFor(target))}
				if before == "" {
					g.over = g.drop
					if src.Kind == domain.KindMinistry && target.Kind == domain.KindGroup {
						g.over.Part = dragdrop.PartList
					}
					g.appendAtEnd = true
				}
			}
			return app.commitGesture(cmd, tree, g, src.Label())
		},
	}

	cmd.Flags().StringVar(&onto, "onto", "", "Group (or @deleted) to drop onto")
	cmd.Flags().StringVar(&before, "before", "", "Ministry to insert ahead of")
	addPartFlag(cmd.Flags(), &part, "Region of the target to release over")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete REF",
		Short: "Drag a group or ministry onto the deleted list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadChart(cmd.Context())
			if err != nil {
				return err
			}
			src, err := resolveRef(tree, args[0])
			if err != nil {
				return err
			}
			sink := dragdrop.Hit{NodeID: tree.Sink().ID, Part: dragdrop.PartBody}
			return app.commitGesture(cmd, tree, gesture{
				source: dragdrop.Hit{NodeID: src.ID, Part: partFor(src)},
				over:   sink,
				drop:   sink,
			}, src.Label())
		},
	}
}

func newTagCmd(app *App) *cobra.Command {
	var onto string

	cmd := &cobra.Command{
		Use:   "tag OWNER:TAG --onto REF",
		Short: "Drag a copy of a tag onto a ministry or group; dropping a tag it already has removes it",
		Example: `  orgchart tag Ops/C:urgent --onto A
  orgchart tag Ops:core --onto Ops`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.loadChart(cmd.Context())
			if err != nil {
				return err
			}
			tag, err := resolveRef(tree, args[0])
			if err != nil {
				return err
			}
			if tag.Kind != domain.KindTag {
				return fmt.Errorf("%s is not a tag (use OWNER:TAG)", tag.Label())
			}
			target, err := resolveRef(tree, onto)
			if err != nil {
				return fmt.Errorf("--onto: %w", err)
			}
			hit := dragdrop.Hit{NodeID: target.ID, Part: partFor(target)}
			return app.commitGesture(cmd, tree, gesture{
				source: dragdrop.Hit{NodeID: tag.ID, Part: dragdrop.PartBody},
				over:   hit,
				drop:   hit,
			}, tag.Label()+" on "+target.Label())
		},
	}

	cmd.Flags().StringVar(&onto, "onto", "", "Ministry or group to drop the tag on")
	_ = cmd.MarkFlagRequired("onto")
	return cmd
}

// commitGesture replays g and persists the tree when the drop changed it.
func (a *App) commitGesture(cmd *cobra.Command, tree *domain.Tree, g gesture, what string) error {
	outcome, err := a.replay(tree, g)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !outcome.Changed() {
		fmt.Fprintln(out, formatter.Dim("No change: "+what+" cannot be dropped there"))
		return nil
	}
	snap, err := a.Chart.Persist(cmd.Context(), tree)
	if err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	fmt.Fprintf(out, "%s %s %s\n",
		formatter.StyleGreen.Render(outcomeVerb(outcome)), what,
		formatter.Dim("(snapshot "+formatter.TruncID(snap.ID)+")"))
	return nil
}

func outcomeVerb(o dragdrop.Outcome) string {
	switch o {
	case dragdrop.OutcomeMoved:
		return "Moved"
	case dragdrop.OutcomeDeleted:
		return "Deleted"
	case dragdrop.OutcomeTagAdded:
		return "Tagged"
	case dragdrop.OutcomeTagRemoved:
		return "Untagged"
	default:
		return "Unchanged"
	}
}
