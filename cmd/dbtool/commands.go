package main

import (
	"fmt"
	"log"
	"point-set-service/internal/adapters/repositories"
	"point-set-service/internal/bootstrap"
	"point-set-service/internal/config"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the point-set database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()
			return nil
		},
	}

	root.AddCommand(newInitCmd(), newSeedCmd(), newListCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
		cfg.DBDriver = strings.ToLower(strings.TrimSpace(driver))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the point-set schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log.Println("Initializing database schema...")
			store, err := bootstrap.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			defer store.Close()
			log.Println("Schema ready.")
			return nil
		},
	}
	cmd.Flags().String("driver", "", "override DB_DRIVER (sqlite|postgres|memory)")
	return cmd
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load point sets from a JSON seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("file"); path != "" {
				cfg.SeedPath = path
			}

			store, err := bootstrap.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			log.Println("Seeding database...")
			n, err := repositories.SeedFromJSON(cmd.Context(), store.Repo, cfg.SeedPath)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			log.Printf("Seeding complete. inserted=%d", n)
			return nil
		},
	}
	cmd.Flags().String("driver", "", "override DB_DRIVER (sqlite|postgres|memory)")
	cmd.Flags().StringP("file", "f", "", "seed file (default SEED_PATH)")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored point sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := bootstrap.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.Repo.ListPointSets(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tFRAME\tPOINTS")
			for _, info := range infos {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", info.SetID, info.Name, info.Frame, info.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("driver", "", "override DB_DRIVER (sqlite|postgres|memory)")
	return cmd
}
