package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comment-feed-api/internal/repository"
	"github.com/comment-feed-api/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all comments with the contents of a seed file",
		Long:  "Deletes every stored comment and inserts the records of a JSON document shaped {\"comments\": [...]}. The file is fully parsed first; a bad record leaves the store untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, log, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.RunMigrations(cfg.Database.MigrationsDir()); err != nil {
				return err
			}

			if file == "" {
				file = cfg.Seed.File
			}

			n, err := seed.NewLoader(repository.NewCommentRepo(db), log).LoadFile(cmd.Context(), file)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully loaded %d comments!\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "seed file path (default: SEED_FILE or "+seed.DefaultPath+")")
	return cmd
}
