package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, db, _, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				return db.RunMigrations(cfg.Database.MigrationsDir())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, db, _, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				return db.MigrateDown(cfg.Database.MigrationsDir())
			},
		},
		&cobra.Command{
			Use:   "goto <version>",
			Short: "Migrate up or down to a specific version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}

				cfg, db, _, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				return db.MigrateToVersion(cfg.Database.MigrationsDir(), uint(version))
			},
		},
	)

	return cmd
}
