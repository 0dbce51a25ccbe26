package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"voice-detection-api/internal/config"
	"voice-detection-api/internal/wire"
	"voice-detection-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "bootstrap",
		Short: "Prepare the voice detection database (migrate + seed demo key)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, cfg *config.Config, deps *wire.Bootstrap) error {
				if err := migrate(ctx, deps); err != nil {
					return err
				}
				return seed(ctx, cfg, deps)
			})
		},
	}

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newCreateKeyCmd(),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the api_keys and request_logs tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, _ *config.Config, deps *wire.Bootstrap) error {
				return migrate(ctx, deps)
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo API key when absent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, cfg *config.Config, deps *wire.Bootstrap) error {
				return seed(ctx, cfg, deps)
			})
		},
	}
}

func newCreateKeyCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "create-key",
		Short: "Generate a new active API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(ctx context.Context, _ *config.Config, deps *wire.Bootstrap) error {
				key, err := deps.Keys.Create(ctx, owner)
				if err != nil {
					return err
				}
				fmt.Printf("ID:    %d\nOwner: %s\nKey:   %s\n", key.ID, key.Owner, key.Key)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner of the new key")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

// withDeps 加载配置并初始化关系库依赖
func withDeps(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, deps *wire.Bootstrap) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	deps, cleanup, err := wire.InitializeBootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize data layer: %w", err)
	}
	defer cleanup()

	return fn(ctx, cfg, deps)
}

func migrate(ctx context.Context, deps *wire.Bootstrap) error {
	if err := deps.PgClient.Migrate(ctx); err != nil {
		return err
	}
	fmt.Println("Schema is up to date.")
	return nil
}

func seed(ctx context.Context, cfg *config.Config, deps *wire.Bootstrap) error {
	if !cfg.Seed.Enabled {
		fmt.Println("Seeding disabled, skipping demo key.")
		return nil
	}
	if err := deps.Keys.EnsureSeedKey(ctx); err != nil {
		return err
	}
	fmt.Printf("Demo key for %s is ready.\n", cfg.Seed.Owner)
	return nil
}
