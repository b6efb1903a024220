package main

import (
	"bear-tracker/internal/app"
	"bear-tracker/internal/config"
	"bear-tracker/internal/domain/bears"
	"bear-tracker/internal/domain/sightings"
	"bear-tracker/internal/seed"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load bears and sightings from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.Storage.Driver == config.DriverMemory {
				log.Warn("seeding the memory store; data is discarded on exit", nil)
			}

			f, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			store, err := app.OpenStore(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			if cfg.Storage.AutoMigrate {
				if err := store.Migrate(cmd.Context()); err != nil {
					return err
				}
			}

			ss := sightings.NewService(store.Sightings)
			bs := bears.NewService(store.Bears, ss)

			st, err := seed.Apply(cmd.Context(), f, bs, ss)
			log.Info("seed finished", map[string]any{"bears": st.Bears, "sightings": st.Sightings})
			return err
		},
	}
}
