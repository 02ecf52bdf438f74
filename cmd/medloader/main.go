package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medloader/medloader/internal/config"
	"github.com/medloader/medloader/internal/loader"
	"github.com/medloader/medloader/internal/platform/db"
)

func main() {
	rootCmd := loadCmd()
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCmd() *cobra.Command {
	var (
		records    int
		noTruncate bool
		factsOnly  bool
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "medloader",
		Short: "Generate and load synthetic emergency-department data into PostgreSQL",
		Long: `medloader fills an emergency-department star schema with synthetic data:
fourteen dimension tables and ten fact tables, generated from seeded catalogs
and bulk-inserted in batches.

The default run truncates existing data, loads every dimension, and loads the
fact tables, all in one transaction. With --facts-only the dimensions are read
back from the database instead and only facts are written.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if records < 1 {
				return fmt.Errorf("--records must be a positive integer, got %d", records)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
			if cfg.IsDev() {
				logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				logger.Error().Err(err).Msg("failed to connect to database")
				return err
			}
			defer pool.Close()

			now, err := db.Check(ctx, pool)
			if err != nil {
				logger.Error().Err(err).Msg("database check failed")
				return err
			}
			logger.Info().Time("server_time", now).Msg("connected to database")

			runner := loader.NewRunner(pool, logger, seed)

			var summary loader.Summary
			if factsOnly {
				summary, err = runner.FactsOnly(ctx, records)
			} else {
				summary, err = runner.FullLoad(ctx, records, !noTruncate)
			}
			if err != nil {
				logger.Error().Err(err).Msg("load failed, no partial fact data was committed")
				return err
			}

			for _, tc := range summary.Tables {
				logger.Info().Str("table", tc.Table).Int("rows", tc.Rows).Msg("fact table loaded")
			}
			logger.Info().
				Str("mode", summary.Mode).
				Int("records", summary.Records).
				Int("fact_rows", summary.FactRows).
				Dur("elapsed", summary.Elapsed).
				Msg("load finished")
			return nil
		},
	}

	cmd.Flags().IntVarP(&records, "records", "r", 10000, "Number of records to generate per fact table")
	cmd.Flags().BoolVar(&noTruncate, "no-truncate", false, "Skip truncating existing data")
	cmd.Flags().BoolVarP(&factsOnly, "facts-only", "f", false, "Load only fact tables, reading dimensions from the database")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for deterministic generation (0 = time-based)")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}
