package migrate

import (
	"errors"
	"fmt"

	gomigrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"dino/internal/infrastructure/config"
	"dino/internal/infrastructure/database"
	"dino/internal/infrastructure/persistence/seeds"
	"dino/internal/shared/logger"
)

var (
	env   string
	path  string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, inspect the current version, and seed system data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&path, "path", "p", "./migrations", "Path to migration files")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newVersionCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		RunE:  runVersion,
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed system roles and the permission catalog",
		Long:  `Insert the fixed role tiers and the permission catalog. Safe to run repeatedly; existing rows are left untouched.`,
		RunE:  runSeed,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func newMigrator(cfg *config.Config) (*gomigrate.Migrate, error) {
	sourceURL := "file://" + path
	databaseURL := "mysql://" + cfg.Database.GetDSN()

	m, err := gomigrate.New(sourceURL, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	log.Infow("running up migrations", "environment", env, "path", path)

	if err := m.Up(); err != nil {
		if errors.Is(err, gomigrate.ErrNoChange) {
			log.Infow("no pending migrations")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations applied successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	log.Infow("rolling back migrations", "environment", env, "steps", steps)

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, gomigrate.ErrNoChange) {
			log.Infow("nothing to roll back")
			return nil
		}
		return fmt.Errorf("rollback failed: %w", err)
	}

	log.Infow("rollback completed")
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, gomigrate.ErrNilVersion) {
			log.Infow("no migrations applied yet")
			return nil
		}
		return fmt.Errorf("failed to read version: %w", err)
	}

	log.Infow("current migration version", "version", version, "dirty", dirty)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := seeds.SeedAccessControl(database.Get()); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Infow("access control seed completed")
	return nil
}
