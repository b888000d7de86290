package main

import (
	"github.com/spf13/cobra"

	"github.com/ZinnunMalikov/clipsmart-main/internal/bootstrap"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres request-log schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runMigration(opts, 0)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runMigration(opts, max(steps, 1))
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func runMigration(opts *rootOptions, down int) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := opts.logger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	return bootstrap.MigrateDatabase(cfg.Database, log, down)
}
