// Package cli defines the cobra command tree for commentsctl.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/comment-feed-api/internal/config"
	"github.com/comment-feed-api/internal/database"
	"github.com/comment-feed-api/pkg/logger"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "commentsctl",
		Short:         "Operate the comment feed store",
		Long:          "Operator commands for the comment feed: load seed data and move the schema between migration versions. Connection settings come from the same environment as the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSeedCmd(),
		newMigrateCmd(),
	)

	return root
}

// openStore loads configuration and connects to the database. Logs go to the
// command's error stream so stdout carries only command output.
func openStore(cmd *cobra.Command) (*config.Config, *database.DB, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, nil, log, err
	}
	return cfg, db, log, nil
}
