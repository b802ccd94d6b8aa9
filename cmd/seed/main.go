package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oksasatya/go-portfolio-api/config"
	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/container"
	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	pginfra "github.com/oksasatya/go-portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		email    string
		password string
		role     string
		force    bool
	)

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Create an admin account for the portfolio console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.Load()
			logger := helpers.NewLogger(cfg.AppName, cfg.Env)

			if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			repos := container.PostgresRepositories(pool)
			auth := application.NewAuthService(repos.Users, nil, nil, "", logger)
			u, created, err := auth.SeedUser(ctx, email, password, role, force)
			if err != nil {
				return err
			}
			switch {
			case created:
				fmt.Fprintf(cmd.OutOrStdout(), "created %s user id=%d email=%s\n", u.Role, u.ID, u.Email)
			case force:
				fmt.Fprintf(cmd.OutOrStdout(), "reset password of user id=%d email=%s\n", u.ID, u.Email)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "user %s already exists, nothing changed (use --force to reset)\n", u.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", os.Getenv("SEED_ADMIN_EMAIL"), "Account email")
	cmd.Flags().StringVar(&password, "password", os.Getenv("SEED_ADMIN_PASSWORD"), "Account password (8+ chars)")
	cmd.Flags().StringVar(&role, "role", entity.RoleAdmin, "Account role")
	cmd.Flags().BoolVar(&force, "force", false, "Reset password, role and active flag of an existing account")
	return cmd
}
