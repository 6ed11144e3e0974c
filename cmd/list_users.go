package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/vacation-management/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User maintenance commands",
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every user",
	Long:  `Print every user in the database named by DATABASE_URL. Exits 1 when DATABASE_URL is unset or the query fails.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(listUsers(context.Background(), os.Stdout, os.Stderr, os.Getenv, openReportingDB))
	},
}

func init() {
	usersCmd.AddCommand(listUsersCmd)
}

type userRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Position  string    `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

const listUsersQuery = `SELECT id, name, email, position, created_at FROM users ORDER BY created_at ASC`

func openReportingDB(dsn string) (*sqlx.DB, error) {
	return sqlx.Open("pgx", dsn)
}

// listUsers returns the process exit code. The database is never opened without
// DATABASE_URL.
func listUsers(ctx context.Context, out, errOut io.Writer, getenv func(string) string, open func(dsn string) (*sqlx.DB, error)) int {
	dsn := getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(errOut, "DATABASE_URL is not set")
		return 1
	}

	lg := logger.LoggerWrapper()

	db, err := open(dsn)
	if err != nil {
		lg.Error("failed to open database", "error", err)
		fmt.Fprintf(errOut, "failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	var users []userRow
	if err := db.SelectContext(ctx, &users, listUsersQuery); err != nil {
		lg.Error("failed to list users", "error", err)
		fmt.Fprintf(errOut, "failed to list users: %v\n", err)
		return 1
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Position, u.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		lg.Error("failed to write users", "error", err)
		return 1
	}

	return 0
}
