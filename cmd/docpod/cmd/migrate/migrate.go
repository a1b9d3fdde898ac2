package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"docpod/cmd/docpod/cmd/cmdutil"
	"docpod/internal/app/repository/migrate"
	"docpod/internal/app/repository/pg"
	"docpod/internal/app/repository/sqlite"
)

var (
	sqlitePath  string
	postgresDSN string
)

func init() {
	Cmd.Flags().StringVarP(&sqlitePath, "sqlite", "s", "", "source SQLite database file")
	Cmd.Flags().StringVarP(&postgresDSN, "postgres", "p", "", "target PostgreSQL connection string")

	Cmd.MarkFlagRequired("sqlite")
	Cmd.MarkFlagRequired("postgres")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy users and podcasts from SQLite to PostgreSQL",
	Long: `Copy users and podcasts from SQLite to PostgreSQL

- Rows that already exist in PostgreSQL are kept
- Sessions are not copied; users log in again after the move`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := cmdutil.Load(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		src, err := sqlite.Open(ctx, sqlitePath)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := pg.NewPostgresDB(ctx, postgresDSN)
		if err != nil {
			return err
		}
		defer dst.Close()

		result, err := migrate.SQLiteToPostgres(ctx, src.DB(), dst.DB(), logger)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d users and %d podcasts\n", result.Users, result.Podcasts)
		return nil
	},
}
