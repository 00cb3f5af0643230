package main

import (
	"os"

	"github.com/spf13/cobra"

	"dino/internal/interfaces/cli/migrate"
	"dino/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dino",
		Short: "Dino - multi-tenant e-menu backend",
		Long:  `Dino is the access-control and table QR backend for multi-tenant venue e-menus, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
