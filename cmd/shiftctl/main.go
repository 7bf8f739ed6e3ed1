// Command shiftctl holds operator tasks: schema migrations and dev tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shiftserve/internal/config"
	"shiftserve/internal/infrastructure/authx"
	"shiftserve/internal/infrastructure/pg"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() { _ = godotenv.Load() }

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "shiftctl",
		Short:        "Operator tooling for shiftserve",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(cfg), newTokenCmd(cfg))
	return root
}

func connect(ctx context.Context, cfg config.Config) (*pg.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return pg.Connect(ctx, cfg.DatabaseURL)
}

func newMigrateCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Manage the Postgres schema"}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := connect(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return pg.RunMigrations(c.Context(), db)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := connect(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return pg.RollbackMigrations(c.Context(), db, steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := connect(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			v, dirty, err := pg.MigrationVersion(c.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
			return nil
		},
	})
	return cmd
}

func newTokenCmd(cfg config.Config) *cobra.Command {
	var (
		sub string
		ttl time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(c *cobra.Command, _ []string) error {
			if sub == "" {
				return fmt.Errorf("--sub is required")
			}
			tok, err := authx.NewMinter(cfg.JWTSecret).Mint(sub, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "user id placed in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
