package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// @title bear-tracker API
// @version 1.0
// @description Osos marcados, sus avistamientos y el webhook de redeploy.
// @BasePath /
func main() {
	root := &cobra.Command{
		Use:          "bear-tracker",
		Short:        "Tagged bear registry and sightings service",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("BEAR_TRACKER_CONFIG"), "path to YAML config (optional)")

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(tokenCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
