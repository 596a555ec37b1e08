package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nordlayer-server",
	Short: "Backend for the nordlayer 3D printing storefront",
	Long: `nordlayer-server is the backend of the 3D printing storefront:
printing services, filament colors, customer orders, reviews and the
object-storage file proxy.

Run without arguments to start the HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(statusCmd)
}
