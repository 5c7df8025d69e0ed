package cortexsetup

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//go:embed templates/env.example
var envExampleTemplate string

var initEnvForce bool

// InitEnvCmd writes a fresh .env.example template into the workspace.
var InitEnvCmd = &cobra.Command{
	Use:   "init-env",
	Short: "Write a fresh .env.example template",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := WriteEnvExample(".", initEnvForce)
		if err != nil {
			log.Fatalf("Failed to write template: %v", err)
		}
		log.Printf("Template written: %s", path)
	},
}

func init() {
	InitEnvCmd.Flags().BoolVar(&initEnvForce, "force", false, "overwrite an existing .env.example")
}

// WriteEnvExample writes the embedded .env.example template into dir.
// An existing file is left alone unless force is set.
func WriteEnvExample(dir string, force bool) (string, error) {
	path := filepath.Join(dir, envExampleName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", envExampleName)
		}
	}
	if err := os.WriteFile(path, []byte(envExampleTemplate), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", envExampleName, err)
	}
	return path, nil
}

// SeedEnvFile copies .env.example to .env in dir unless .env already exists.
// The copy is byte-for-byte so comments in the example survive. It reports
// whether a new .env was created.
func SeedEnvFile(dir string) (bool, error) {
	envPath := filepath.Join(dir, envFileName)
	if _, err := os.Stat(envPath); err == nil {
		return false, nil
	}

	examplePath := filepath.Join(dir, envExampleName)
	data, err := os.ReadFile(examplePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%s not found: run init-env first", envExampleName)
		}
		return false, fmt.Errorf("read %s: %w", envExampleName, err)
	}

	// Catch a broken template before it becomes a broken .env.
	if _, err := godotenv.Unmarshal(string(data)); err != nil {
		return false, fmt.Errorf("%s is not a valid dotenv file: %w", envExampleName, err)
	}

	// 0600: the seeded file is where credentials end up.
	if err := os.WriteFile(envPath, data, 0600); err != nil {
		return false, fmt.Errorf("write %s: %w", envFileName, err)
	}
	return true, nil
}
