package cortexsetup

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

// HistoryCmd prints recent setup steps and doctor checks from the journal.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent setup and doctor runs",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openStateDB(".")
		if err != nil {
			log.Fatalf("Failed to open state database: %v", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("Failed to close state database: %v", err)
			}
		}()

		runs, err := loadRuns(db, historyLimit)
		if err != nil {
			log.Fatalf("Failed to load history: %v", err)
		}
		if len(runs) == 0 {
			log.Println("No runs recorded yet.")
			return
		}
		for _, r := range runs {
			line := fmt.Sprintf("%s  %-6s  %-16s  %s",
				r.CreatedAt.Format(time.RFC3339), r.Command, r.Step, r.Status)
			if r.Detail != "" {
				line += "  (" + r.Detail + ")"
			}
			fmt.Println(line)
		}
	},
}

func init() {
	HistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum rows to show")
}
