// Package cortexsetup bootstraps and verifies an Emotiv Cortex examples
// workspace: it seeds the .env file, resolves and validates the EMOTIV_*
// settings and prepares the export folder the example scripts write to.
package cortexsetup

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envFileName    = ".env"
	envExampleName = ".env.example"

	defaultDebit     = 10
	defaultCortexURL = "wss://localhost:6868"
)

// Settings holds the Cortex credentials and runtime options for the workspace.
type Settings struct {
	ClientID     string
	ClientSecret string
	HeadsetID    string
	License      string
	Debit        int
	Debug        bool
	CortexURL    string
	ExportFolder string
}

// LoadSettings resolves settings for the workspace in dir. Values come from
// the process environment first, then from dir/.env, then from defaults.
// A missing .env file is not an error; the shell or CI may set everything.
func LoadSettings(dir string) (Settings, error) {
	fileVals := map[string]string{}
	envPath := filepath.Join(dir, envFileName)
	if _, err := os.Stat(envPath); err == nil {
		vals, err := godotenv.Read(envPath)
		if err != nil {
			return Settings{}, fmt.Errorf("read %s: %w", envFileName, err)
		}
		fileVals = vals
	}

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVals[key]
	}

	s := Settings{
		ClientID:     lookup("EMOTIV_CLIENT_ID"),
		ClientSecret: lookup("EMOTIV_CLIENT_SECRET"),
		HeadsetID:    lookup("EMOTIV_HEADSET_ID"),
		License:      lookup("EMOTIV_LICENSE"),
		Debit:        defaultDebit,
		CortexURL:    defaultCortexURL,
		ExportFolder: lookup("EMOTIV_EXPORT_FOLDER"),
	}

	if raw := lookup("EMOTIV_DEBIT"); raw != "" {
		debit, err := strconv.Atoi(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("EMOTIV_DEBIT must be an integer, got %q", raw)
		}
		s.Debit = debit
	}

	if raw := lookup("EMOTIV_DEBUG"); raw != "" {
		switch strings.ToLower(raw) {
		case "1", "true", "yes":
			s.Debug = true
		case "0", "false", "no":
			s.Debug = false
		default:
			return Settings{}, fmt.Errorf("EMOTIV_DEBUG must be a boolean, got %q", raw)
		}
	}

	if raw := lookup("EMOTIV_CORTEX_URL"); raw != "" {
		s.CortexURL = raw
	}

	if s.ExportFolder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, fmt.Errorf("resolve home directory: %w", err)
		}
		s.ExportFolder = filepath.Join(home, "cortex_exports")
	}

	return s, nil
}

// Validate reports what would prevent the Cortex examples from running.
// Every missing credential is named so the user can fix them in one pass.
func (s Settings) Validate() error {
	var missing []string
	if s.ClientID == "" {
		missing = append(missing, "EMOTIV_CLIENT_ID")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "EMOTIV_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing Cortex credentials: %s (copy %s to %s and fill them in, see https://emotiv.gitbook.io/cortex-api)",
			strings.Join(missing, ", "), envExampleName, envFileName)
	}

	if s.Debit < 0 {
		return fmt.Errorf("EMOTIV_DEBIT must be >= 0, got %d", s.Debit)
	}

	u, err := url.Parse(s.CortexURL)
	if err != nil {
		return fmt.Errorf("EMOTIV_CORTEX_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("EMOTIV_CORTEX_URL must use ws or wss, got %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("EMOTIV_CORTEX_URL %q has no host", s.CortexURL)
	}

	return nil
}

// Redacted returns a printable copy with the client secret masked.
func (s Settings) Redacted() Settings {
	s.ClientSecret = maskSecret(s.ClientSecret)
	return s
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
