package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/orgchart/internal/cli"
	"github.com/alexanderramin/orgchart/internal/config"
	"github.com/alexanderramin/orgchart/internal/db"
	"github.com/alexanderramin/orgchart/internal/document"
	"github.com/alexanderramin/orgchart/internal/repository"
	"github.com/alexanderramin/orgchart/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional persists
	kvRepo := repository.NewSQLiteKVRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	chart := service.NewChartService(
		kvRepo,
		snapshotRepo,
		uow,
		document.NewSerializer(logger.With("component", "document")),
		cfg.HistoryLimit,
		service.NewLogUseCaseObserver(logger),
	)

	app := &cli.App{
		Chart:           chart,
		Logger:          logger,
		OverLogInterval: cfg.OverLogInterval,
	}

	// Detect interactive terminal: the bare command opens the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
