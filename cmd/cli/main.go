package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosgill/effort-engine/internal/config"
	"github.com/rosgill/effort-engine/pkg/core/services"
	"github.com/rosgill/effort-engine/pkg/postgres"
	"github.com/rosgill/effort-engine/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "effort-engine",
		Short: "Effort Engine CLI - Plan task effort against working calendars",
		Long:  `A CLI tool for generating day-by-day task schedules, monthly effort apportionment, and feasibility checks against company and personal calendars.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Name())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: search current and home directory)")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(checkFeasibilityCmd())
	rootCmd.AddCommand(showCapacityCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp(commandName string) error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(commandName)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger.Debug("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <project_id> <assignee_id>",
		Short: "Generate a day-by-day schedule and monthly apportionment for an assignee's tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.PlanProject(app.ctx, app.database, app.cfg, app.logger, args[0], args[1], dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\nPlan for %s / %s %s\n\n", result.Project.Name, result.Assignee.FirstName, result.Assignee.LastName)
			fmt.Printf("Window:         %s .. %s\n", result.Project.StartDate.Format("2006-01-02"), result.Project.EndDate.Format("2006-01-02"))
			fmt.Printf("Total capacity: %.2fh\n\n", result.Capacity.Total())

			fmt.Println("Allocations:")
			for _, e := range result.Entries {
				fmt.Printf("  %s  %-36s %6.2fh\n", e.Date.Format("2006-01-02"), e.TaskID, e.Hours)
			}
			fmt.Println()

			if !result.FullyScheduled {
				fmt.Println("Unscheduled remainder:")
				for taskID, remaining := range result.Remaining {
					if remaining > 0 {
						fmt.Printf("  %-36s %6.2fh\n", taskID, remaining)
					}
				}
				fmt.Println()
			}

			if dryRun {
				fmt.Println("(dry run - nothing saved)")
			} else {
				fmt.Printf("Saved run %s\n", result.RunID)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func checkFeasibilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkFeasibility <project_id>",
		Short: "Flag tasks whose planned window has no available working capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings, err := services.CheckFeasibility(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			if len(warnings) == 0 {
				fmt.Println("\nAll planned tasks have available working capacity.")
				return nil
			}

			fmt.Printf("\nFound %d infeasible task(s):\n\n", len(warnings))
			for _, w := range warnings {
				fmt.Printf("  #%d %s (%s .. %s): %s\n",
					w.TaskNumber, w.TaskName,
					w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"),
					w.Reason)
			}
			fmt.Println()

			return nil
		},
	}
}

func showCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "showCapacity <assignee_id> <start> <end>",
		Short: "Show an assignee's day-by-day capacity over a date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.ParseInLocation("2006-01-02", args[1], time.UTC)
			if err != nil {
				return fmt.Errorf("start must be YYYY-MM-DD: %w", err)
			}
			end, err := time.ParseInLocation("2006-01-02", args[2], time.UTC)
			if err != nil {
				return fmt.Errorf("end must be YYYY-MM-DD: %w", err)
			}

			result, err := services.ShowCapacity(app.ctx, app.database, app.cfg, app.logger, args[0], start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\nCapacity for %s %s:\n\n", result.Assignee.FirstName, result.Assignee.LastName)
			for _, day := range result.Table.Days() {
				fmt.Printf("  %s  %5.2fh\n", day.Date.Format("2006-01-02 (Mon)"), day.Hours)
			}
			fmt.Printf("\nTotal: %.2fh over %d days\n", result.Table.Total(), result.Table.Len())

			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
