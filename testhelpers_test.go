package cortexsetup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var emotivEnvKeys = []string{
	"EMOTIV_CLIENT_ID",
	"EMOTIV_CLIENT_SECRET",
	"EMOTIV_HEADSET_ID",
	"EMOTIV_LICENSE",
	"EMOTIV_DEBIT",
	"EMOTIV_DEBUG",
	"EMOTIV_CORTEX_URL",
	"EMOTIV_EXPORT_FOLDER",
}

// clearEmotivEnv blanks every EMOTIV_* variable for the test so values from
// the host environment cannot leak into assertions. LoadSettings treats an
// empty variable as unset.
func clearEmotivEnv(t *testing.T) {
	t.Helper()
	for _, key := range emotivEnvKeys {
		t.Setenv(key, "")
	}
}

func writeEnvFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// seedExampleWithCredentials writes a filled-in .env.example into dir and
// returns the export folder it points at.
func seedExampleWithCredentials(t *testing.T, dir string) string {
	t.Helper()
	exports := filepath.Join(dir, "exports")
	content := fmt.Sprintf(
		"EMOTIV_CLIENT_ID=abc123\nEMOTIV_CLIENT_SECRET=topsecret9876\nEMOTIV_EXPORT_FOLDER=%s\n",
		exports,
	)
	writeEnvFile(t, dir, envExampleName, content)
	return exports
}
