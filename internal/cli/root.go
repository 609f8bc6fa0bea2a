package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/dragdrop"
	"github.com/alexanderramin/orgchart/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	Chart  service.ChartService
	Logger *slog.Logger

	// OverLogInterval throttles drag_over debug lines; zero uses the
	// engine default.
	OverLogInterval time.Duration

	// Now is the clock stamped on deletion records. Nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. When nil the
	// session is treated as non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// newEngine builds a drag engine over tree using the app's logger and clock.
func (a *App) newEngine(tree *domain.Tree, layout dragdrop.Layout) *dragdrop.Engine {
	opts := []dragdrop.Option{dragdrop.WithLogger(a.logger().With("component", "dragdrop"))}
	if a.Now != nil {
		opts = append(opts, dragdrop.WithClock(a.Now))
	}
	if a.OverLogInterval > 0 {
		opts = append(opts, dragdrop.WithOverLogInterval(a.OverLogInterval))
	}
	return dragdrop.NewEngine(tree, layout, opts...)
}

// loadChart rehydrates the stored chart, or an empty one on first use.
func (a *App) loadChart(ctx context.Context) (*domain.Tree, error) {
	return a.Chart.Rehydrate(ctx)
}

// NewRootCmd creates the top-level "orgchart" command and registers all
// subcommands against the provided App. Run without a subcommand on a
// terminal it opens the board; otherwise it prints help.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "orgchart",
		Short: "Rearrange an organization chart by drag and drop",
		Long: `orgchart keeps an organization chart of groups, ministries and tags.
Rearrange it with the mouse on the interactive board, or script the same
drag gestures with move, delete and tag.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runBoard(cmd, app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newBoardCmd(app),
		newShowCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newMoveCmd(app),
		newDeleteCmd(app),
		newTagCmd(app),
		newAddCmd(app),
		newHistoryCmd(app),
		newRevertCmd(app),
		newResetCmd(app),
	)

	return root
}
