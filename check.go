package cortexsetup

import (
	"log"

	"github.com/spf13/cobra"
)

// CheckCmd verifies the workspace configuration, the same check setup runs last.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Cortex credentials and settings",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := LoadSettings(".")
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		if err := s.Validate(); err != nil {
			log.Fatalf("Configuration invalid: %v", err)
		}
		printSettings(s.Redacted())
		log.Println("Configuration OK.")
	},
}

func printSettings(s Settings) {
	log.Printf("EMOTIV_CLIENT_ID     = %s", s.ClientID)
	log.Printf("EMOTIV_CLIENT_SECRET = %s", s.ClientSecret)
	log.Printf("EMOTIV_HEADSET_ID    = %s", orDefault(s.HeadsetID, "(auto-select first headset)"))
	log.Printf("EMOTIV_LICENSE       = %s", orDefault(s.License, "(not set)"))
	log.Printf("EMOTIV_DEBIT         = %d", s.Debit)
	log.Printf("EMOTIV_DEBUG         = %t", s.Debug)
	log.Printf("EMOTIV_CORTEX_URL    = %s", s.CortexURL)
	log.Printf("EMOTIV_EXPORT_FOLDER = %s", s.ExportFolder)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
