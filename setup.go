package cortexsetup

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// setupStep is one stage of the bootstrap pipeline. Steps run in order and
// the first failure aborts the run.
type setupStep struct {
	name string
	run  func(ws *workspace) error
}

// workspace carries state between setup steps.
type workspace struct {
	dir      string
	settings Settings
}

var setupSteps = []setupStep{
	{name: "seed-env", run: stepSeedEnv},
	{name: "verify-settings", run: stepVerifySettings},
	{name: "export-folder", run: stepExportFolder},
}

// SetupCmd: seeds .env, verifies the settings, prepares the export folder.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Bootstrap the workspace: seed .env, verify settings, create the export folder",
	Run: func(cmd *cobra.Command, args []string) {
		if err := RunSetup("."); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		log.Println("Setup complete.")
	},
}

// RunSetup executes the bootstrap pipeline in dir, journaling every step.
// On a fresh workspace the verify step fails until credentials are filled in,
// which is the signal to edit .env and run setup again.
func RunSetup(dir string) error {
	db, err := openStateDB(dir)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close state database: %v", err)
		}
	}()

	ws := &workspace{dir: dir}
	for i, step := range setupSteps {
		log.Printf("Step %d/%d: %s", i+1, len(setupSteps), step.name)
		if err := step.run(ws); err != nil {
			if jerr := recordStep(db, "setup", step.name, statusFailed, err.Error()); jerr != nil {
				log.Printf("Failed to journal step %s: %v", step.name, jerr)
			}
			return fmt.Errorf("step %s: %w", step.name, err)
		}
		if jerr := recordStep(db, "setup", step.name, statusOK, ""); jerr != nil {
			log.Printf("Failed to journal step %s: %v", step.name, jerr)
		}
	}
	return nil
}

func stepSeedEnv(ws *workspace) error {
	created, err := SeedEnvFile(ws.dir)
	if err != nil {
		return err
	}
	if created {
		log.Printf("Created %s from %s, fill in your credentials", envFileName, envExampleName)
	} else {
		log.Printf("%s already present, leaving it alone", envFileName)
	}
	return nil
}

func stepVerifySettings(ws *workspace) error {
	s, err := LoadSettings(ws.dir)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	ws.settings = s
	return nil
}

func stepExportFolder(ws *workspace) error {
	if err := os.MkdirAll(ws.settings.ExportFolder, 0755); err != nil {
		return fmt.Errorf("create export folder: %w", err)
	}
	log.Printf("Export folder ready: %s", ws.settings.ExportFolder)
	return nil
}
