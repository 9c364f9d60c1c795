package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/config"
	"github.com/alexanderramin/medcorpus/internal/db"
	"github.com/alexanderramin/medcorpus/internal/logging"
	"github.com/alexanderramin/medcorpus/internal/repository"
	"github.com/alexanderramin/medcorpus/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned by commands whose result contains
// error-severity issues.
var ErrValidationFailed = errors.New("validation failed")

// App holds configuration and the services used by CLI commands. Nil
// services are built from Config on first use.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Corpus    service.CorpusService
	Snapshots service.SnapshotService

	// IsTerminal reports whether stderr is a terminal. Nil means no.
	IsTerminal func() bool

	configFile string
	observer   service.UseCaseObserver
	closers    []func() error
}

// NewRootCmd creates the top-level "medcorpus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "medcorpus",
		Short:         "Validate and query a leveled medical-education corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.configFile, "config", "", "Config file (default ./medcorpus.yaml)")
	pf.String("corpus", "", "Corpus directory with one folder per subdomain")
	pf.String("db", "", "SQLite database for snapshots and run history")
	pf.Bool("strict", false, "Reject invalid records and id collisions instead of reporting them")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: auto, console, json")
	pf.Int("workers", 0, "Subdomains loaded in parallel")

	root.AddCommand(
		newValidateCmd(app),
		newGetCmd(app),
		newListCmd(app),
		newXrefsCmd(app),
		newCategoriesCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newSnapshotCmd(app),
	)

	return root
}

func (a *App) configure(cmd *cobra.Command) error {
	if a.Config == nil {
		cfg, err := config.Load(config.LoadOptions{File: a.configFile, Flags: cmd.Flags()})
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	isTTY := a.IsTerminal != nil && a.IsTerminal()
	logger, err := logging.New(cmd.ErrOrStderr(), a.Config.LogLevel, a.Config.LogFormat, isTTY)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.observer = service.NewLogUseCaseObserver(logger)

	if a.Corpus == nil {
		a.Corpus = service.NewCorpusService(service.CorpusOptions{
			Strict:             a.Config.Strict,
			Workers:            a.Config.Workers,
			CheckSubtopicSlugs: a.Config.CheckSubtopicSlugs,
			Logger:             logger,
		}, a.observer)
	}
	return nil
}

// snapshots opens the database on first use.
func (a *App) snapshots(ctx context.Context) (service.SnapshotService, error) {
	if a.Snapshots != nil {
		return a.Snapshots, nil
	}
	database, err := db.OpenDB(ctx, a.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.closers = append(a.closers, database.Close)

	a.Snapshots = service.NewSnapshotService(
		db.NewSQLiteUnitOfWork(database),
		repository.NewSQLiteValidationRunRepo(database),
		a.Config.EnforceLifecycle,
		a.observer,
	)
	a.Logger.Debug().Str("path", a.Config.DBPath).Msg("database opened")
	return a.Snapshots, nil
}

// Close releases resources opened by commands. It is safe to call twice.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// loadCorpus loads the configured corpus directory.
func (a *App) loadCorpus(ctx context.Context) (*service.Corpus, error) {
	return a.Corpus.Load(ctx, a.Config.CorpusDir)
}
