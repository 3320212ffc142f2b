package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/persistence"
	"github.com/spec-kit/identity-service/internal/repository"
	"github.com/spec-kit/identity-service/internal/service"
)

const defaultSeedTimeout = 30 * time.Second

type seedOptions struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or refresh the admin account",
		Long: `Upserts the admin user named by SEED_ADMIN_CODE with SEED_ADMIN_PASSWORD.
Running it again replaces the password. Does nothing when either variable is unset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, opts *seedOptions) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.Seed.Enabled() {
		cmd.Println("SEED_ADMIN_CODE or SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	seeder := service.NewSeedService(
		repository.NewUserRepository(pg.PoolHandle()),
		auth.NewBcryptHasher(cfg.Auth.SeedBcryptCost),
		logger,
	)
	admin, err := seeder.SeedAdmin(ctx, cfg.Seed.AdminCode, cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	cmd.Printf("Admin %q ready (id %s)\n", admin.LoginCode, admin.ID)
	return nil
}
