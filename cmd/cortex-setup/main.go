package main

import (
	"log"
	"os"

	cortexsetup "github.com/emotiv-community/cortex-setup"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env if present. The file may legitimately not exist yet (setup
	// creates it); environment variables from the shell or CI work without it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "cortex-setup",
		Short: "Bootstrap and verify an Emotiv Cortex examples workspace",
	}

	rootCmd.AddCommand(cortexsetup.SetupCmd)
	rootCmd.AddCommand(cortexsetup.CheckCmd)
	rootCmd.AddCommand(cortexsetup.InitEnvCmd)
	rootCmd.AddCommand(cortexsetup.DoctorCmd)
	rootCmd.AddCommand(cortexsetup.SchemaCmd)
	rootCmd.AddCommand(cortexsetup.ReportCmd)
	rootCmd.AddCommand(cortexsetup.HistoryCmd)
	rootCmd.AddCommand(cleanCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated artifacts (state database, schema, reports)",
	Run: func(cmd *cobra.Command, args []string) {
		// .env and .env.example are never touched.
		generated := []string{"setup.db", "env.schema.json", "setup-report.md", "setup-report.html"}
		for _, name := range generated {
			if err := os.Remove(name); err != nil {
				if !os.IsNotExist(err) {
					log.Printf("Failed to remove %s: %v", name, err)
				}
				continue
			}
			log.Printf("Removed %s", name)
		}
		log.Println("Cleaned generated artifacts.")
	},
}
