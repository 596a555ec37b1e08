package cmd

import (
	"fmt"
	"os"

	"nordlayer-server/config"
	"nordlayer-server/database"
	"nordlayer-server/migrations"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func openDatabase() *database.DB {
	if err := config.Load(); err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	db, err := database.Connect(config.AppConfig.DatabasePath)
	if err != nil {
		fmt.Println("Failed to connect to database:", err)
		os.Exit(1)
	}
	return db
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply every pending migration in chain order, one transaction
per step. A failing step halts the run and leaves the schema in its
pre-step state.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()
		defer db.Close()

		applied, err := migrations.Up(db.DB)
		if err != nil {
			color.Red("Migration failed after %d step(s): %v", applied, err)
			os.Exit(1)
		}
		if applied == 0 {
			color.Green("Schema is up to date.")
		} else {
			color.Green("Applied %d migration(s).", applied)
		}
	},
}

var rollbackSteps int

func init() {
	rollbackCmd.Flags().IntVarP(&rollbackSteps, "steps", "s", 1, "Number of migrations to roll back")
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back applied migrations",
	Long: `Roll back the most recently applied migration(s). Steps marked
lossy cannot restore discarded data; their downgrade is best-effort
only.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()
		defer db.Close()

		rolled, err := migrations.Down(db.DB, rollbackSteps)
		if err != nil {
			color.Red("Rollback failed after %d step(s): %v", rolled, err)
			os.Exit(1)
		}
		color.Green("Rolled back %d migration(s).", rolled)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the migration chain and applied state",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()
		defer db.Close()

		entries, err := migrations.Status(db.DB)
		if err != nil {
			color.Red("Failed to read migration status: %v", err)
			os.Exit(1)
		}

		for _, entry := range entries {
			marker := color.YellowString("pending")
			if entry.Applied {
				marker = color.GreenString("applied")
			}
			lossy := ""
			if entry.Lossy {
				lossy = color.RedString(" [lossy]")
			}
			fmt.Printf("%-45s %s%s  %s\n", entry.ID, marker, lossy, entry.Label)
		}
	},
}
