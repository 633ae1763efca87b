// Command migrate manages the database schema.
//
//	migrate up
//	migrate down --confirm
//	migrate steps -2
//	migrate goto 3
//	migrate version
//	migrate force 3
//	migrate create add_unit_notes -d "free-text notes per unit"
//	migrate list
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/estateflow/backend/internal/infrastructure/config"
	"github.com/estateflow/backend/internal/infrastructure/logger"
	"github.com/estateflow/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var migrationsPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the estate database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&migrationsPath, "path", "p", defaultMigrationsPath, "migrations directory")

	root.AddCommand(
		withMigrator("up", "Apply all pending migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Up() }),
		downCmd(),
		withMigrator("steps N", "Apply N migrations (negative rolls back)", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		withMigrator("goto VERSION", "Migrate to a specific version", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(v))
			}),
		withMigrator("version", "Print the applied version", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version: %d dirty: %t\n", v, dirty)
				return nil
			}),
		withMigrator("force VERSION", "Set the version without running migrations", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		createCmd(),
		listCmd(),
	)
	return root
}

func downCmd() *cobra.Command {
	var confirm bool
	cmd := withMigrator("down", "Roll back every migration", cobra.NoArgs,
		func(m *migration.Migrator, _ []string) error {
			if !confirm {
				return errors.New("refusing to roll back everything without --confirm")
			}
			return m.Down()
		})
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm full rollback")
	return cmd
}

func createCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mf, err := migration.CreateMigration(migrationsPath, args[0], description, time.Now())
			if err != nil {
				return err
			}
			fmt.Println("created", mf.UpPath)
			fmt.Println("created", mf.DownPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description written into the header")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List migration files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			names, err := migration.ListMigrations(migrationsPath)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

// withMigrator builds a subcommand that opens the configured database and runs fn
func withMigrator(use, short string, args cobra.PositionalArgs, fn func(*migration.Migrator, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, a []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stdout"})
			defer func() { _ = log.Sync() }()

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			m, err := migration.New(db, migrationsPath, log)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := m.Close(); cerr != nil {
					log.Warn("Failed to close migrator", zap.Error(cerr))
				}
			}()
			return fn(m, a)
		},
	}
}
