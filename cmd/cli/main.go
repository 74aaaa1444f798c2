package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hfmateus/meetingplanner/cmd/cli/commands"
	"github.com/hfmateus/meetingplanner/internal/config"
	"github.com/hfmateus/meetingplanner/pkg/postgres"
	"github.com/hfmateus/meetingplanner/pkg/utils/logging"
)

var (
	app      *commands.AppContext
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Meeting planner CLI - Plan weekly meeting programs",
		Long:  `A CLI tool for planning weekly meeting programs: week generation, assignments, candidate suggestions and participant agendas.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if database != nil {
				database.Close()
			}
		},
	}

	rootCmd.AddCommand(commands.GenerateWeeksCmd(appRef()))
	rootCmd.AddCommand(commands.CreateWeekCmd(appRef()))
	rootCmd.AddCommand(commands.ListWeeksCmd(appRef()))
	rootCmd.AddCommand(commands.SuggestCmd(appRef()))
	rootCmd.AddCommand(commands.SuggestionIndexCmd(appRef()))
	rootCmd.AddCommand(commands.UpdateStatusCmd(appRef()))
	rootCmd.AddCommand(commands.AgendaCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty before initApp
// fills it in so command constructors can capture it.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	a := appRef()
	a.Ctx = context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Cfg = cfg

	a.Logger, err = logging.InitLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.Logger.Info("Starting application", zap.String("environment", cfg.Env))

	a.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(a.Ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(a.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.Database = database
	a.Logger.Info("Database initialized successfully")

	return nil
}
