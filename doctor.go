package cortexsetup

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

const defaultCortexPort = "6868"

// CheckResult is the outcome of a single doctor check.
type CheckResult struct {
	Name     string
	Status   string
	Detail   string
	Required bool
}

var doctorTimeout time.Duration

// DoctorCmd runs workspace diagnostics.
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the workspace: env file, credentials, export folder, Cortex service",
	Run: func(cmd *cobra.Command, args []string) {
		results, err := RunDoctor(".", doctorTimeout)
		if err != nil {
			log.Fatalf("Doctor failed: %v", err)
		}
		if failed := printResults(results); failed > 0 {
			log.Fatalf("%d required check(s) failed", failed)
		}
		log.Println("Workspace looks good.")
	},
}

func init() {
	DoctorCmd.Flags().DurationVar(&doctorTimeout, "timeout", 3*time.Second, "Cortex service probe timeout")
}

// RunDoctor executes all checks in dir and journals the outcomes.
func RunDoctor(dir string, probeTimeout time.Duration) ([]CheckResult, error) {
	db, err := openStateDB(dir)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close state database: %v", err)
		}
	}()

	results := runChecks(dir, probeTimeout)
	for _, r := range results {
		if err := recordStep(db, "doctor", r.Name, r.Status, r.Detail); err != nil {
			log.Printf("Failed to journal check %s: %v", r.Name, err)
		}
	}
	return results, nil
}

func runChecks(dir string, probeTimeout time.Duration) []CheckResult {
	var results []CheckResult

	envPath := filepath.Join(dir, envFileName)
	if _, err := os.Stat(envPath); err != nil {
		results = append(results, CheckResult{
			Name:     "env-file",
			Status:   statusFailed,
			Detail:   fmt.Sprintf("%s not found, run setup first", envFileName),
			Required: true,
		})
	} else {
		results = append(results, CheckResult{
			Name:     "env-file",
			Status:   statusOK,
			Detail:   envPath,
			Required: true,
		})
	}

	settings, err := LoadSettings(dir)
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		results = append(results, CheckResult{
			Name:     "credentials",
			Status:   statusFailed,
			Detail:   err.Error(),
			Required: true,
		})
		// The remaining checks need valid settings.
		return results
	}
	results = append(results, CheckResult{
		Name:     "credentials",
		Status:   statusOK,
		Detail:   "client ID and secret are set",
		Required: true,
	})

	results = append(results, checkExportFolder(settings.ExportFolder))
	results = append(results, probeCortexService(settings.CortexURL, probeTimeout))

	return results
}

func checkExportFolder(folder string) CheckResult {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return CheckResult{Name: "export-folder", Status: statusFailed, Detail: err.Error(), Required: true}
	}
	probe, err := os.CreateTemp(folder, ".cortex-setup-*")
	if err != nil {
		return CheckResult{
			Name:     "export-folder",
			Status:   statusFailed,
			Detail:   fmt.Sprintf("not writable: %v", err),
			Required: true,
		}
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		log.Printf("Failed to close probe file: %v", err)
	}
	if err := os.Remove(name); err != nil {
		log.Printf("Failed to remove probe file: %v", err)
	}
	return CheckResult{Name: "export-folder", Status: statusOK, Detail: folder, Required: true}
}

// probeCortexService checks whether anything is listening on the Cortex
// endpoint. It does not speak the Cortex protocol; a closed port usually
// just means the Emotiv Launcher is not running, so the check is advisory.
func probeCortexService(rawURL string, timeout time.Duration) CheckResult {
	endpoint, err := cortexEndpoint(rawURL)
	if err != nil {
		return CheckResult{Name: "cortex-service", Status: statusFailed, Detail: err.Error(), Required: true}
	}
	conn, err := net.DialTimeout("tcp", endpoint, timeout)
	if err != nil {
		return CheckResult{
			Name:   "cortex-service",
			Status: statusWarn,
			Detail: fmt.Sprintf("%s unreachable: %v (is the Emotiv Launcher running?)", endpoint, err),
		}
	}
	if err := conn.Close(); err != nil {
		log.Printf("Failed to close probe connection: %v", err)
	}
	return CheckResult{Name: "cortex-service", Status: statusOK, Detail: endpoint}
}

// cortexEndpoint extracts host:port from the configured URL, defaulting to
// the standard Cortex port.
func cortexEndpoint(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse Cortex URL: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("Cortex URL %q has no host", rawURL)
	}
	port := u.Port()
	if port == "" {
		port = defaultCortexPort
	}
	return net.JoinHostPort(host, port), nil
}

// printResults logs each check and returns the number of failed required checks.
func printResults(results []CheckResult) int {
	failed := 0
	for _, r := range results {
		switch r.Status {
		case statusOK:
			log.Printf("✅ %s: %s", r.Name, r.Detail)
		case statusWarn:
			log.Printf("⚠️ %s: %s", r.Name, r.Detail)
		default:
			log.Printf("❌ %s: %s", r.Name, r.Detail)
			if r.Required {
				failed++
			}
		}
	}
	return failed
}
