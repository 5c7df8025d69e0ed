package cortexsetup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	clearEmotivEnv(t)
	dir := t.TempDir()

	s, err := LoadSettings(dir)
	require.NoError(t, err)

	require.Empty(t, s.ClientID)
	require.Empty(t, s.ClientSecret)
	require.Equal(t, defaultDebit, s.Debit)
	require.False(t, s.Debug)
	require.Equal(t, defaultCortexURL, s.CortexURL)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "cortex_exports"), s.ExportFolder)
}

func TestLoadSettingsFromEnvFile(t *testing.T) {
	clearEmotivEnv(t)
	dir := t.TempDir()
	writeEnvFile(t, dir, envFileName, `
EMOTIV_CLIENT_ID=my-client
EMOTIV_CLIENT_SECRET=my-secret
EMOTIV_HEADSET_ID=EPOCX-12345678
EMOTIV_LICENSE=ent-license
EMOTIV_DEBIT=3
EMOTIV_DEBUG=yes
EMOTIV_CORTEX_URL=wss://10.0.0.5:7868
EMOTIV_EXPORT_FOLDER=/tmp/exports
`)

	s, err := LoadSettings(dir)
	require.NoError(t, err)

	require.Equal(t, "my-client", s.ClientID)
	require.Equal(t, "my-secret", s.ClientSecret)
	require.Equal(t, "EPOCX-12345678", s.HeadsetID)
	require.Equal(t, "ent-license", s.License)
	require.Equal(t, 3, s.Debit)
	require.True(t, s.Debug)
	require.Equal(t, "wss://10.0.0.5:7868", s.CortexURL)
	require.Equal(t, "/tmp/exports", s.ExportFolder)
}

func TestLoadSettingsProcessEnvWins(t *testing.T) {
	clearEmotivEnv(t)
	dir := t.TempDir()
	writeEnvFile(t, dir, envFileName, "EMOTIV_DEBIT=7\nEMOTIV_CLIENT_ID=from-file\n")

	t.Setenv("EMOTIV_DEBIT", "5")
	t.Setenv("EMOTIV_CLIENT_ID", "from-env")

	s, err := LoadSettings(dir)
	require.NoError(t, err)
	require.Equal(t, 5, s.Debit)
	require.Equal(t, "from-env", s.ClientID)
}

func TestLoadSettingsMissingEnvFile(t *testing.T) {
	clearEmotivEnv(t)
	t.Setenv("EMOTIV_CLIENT_ID", "shell-client")

	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err, "a missing .env must not be an error")
	require.Equal(t, "shell-client", s.ClientID)
}

func TestLoadSettingsBadValues(t *testing.T) {
	t.Run("debit", func(t *testing.T) {
		clearEmotivEnv(t)
		t.Setenv("EMOTIV_DEBIT", "ten")
		_, err := LoadSettings(t.TempDir())
		require.ErrorContains(t, err, "EMOTIV_DEBIT")
	})

	t.Run("debug", func(t *testing.T) {
		clearEmotivEnv(t)
		t.Setenv("EMOTIV_DEBUG", "maybe")
		_, err := LoadSettings(t.TempDir())
		require.ErrorContains(t, err, "EMOTIV_DEBUG")
	})
}

func TestValidateMissingCredentials(t *testing.T) {
	s := Settings{Debit: defaultDebit, CortexURL: defaultCortexURL}

	err := s.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, "EMOTIV_CLIENT_ID")
	require.ErrorContains(t, err, "EMOTIV_CLIENT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := Settings{
		ClientID:     "id",
		ClientSecret: "secret",
		Debit:        defaultDebit,
		CortexURL:    defaultCortexURL,
	}
	require.NoError(t, valid.Validate())

	t.Run("negative debit", func(t *testing.T) {
		s := valid
		s.Debit = -1
		require.ErrorContains(t, s.Validate(), "EMOTIV_DEBIT")
	})

	t.Run("bad scheme", func(t *testing.T) {
		s := valid
		s.CortexURL = "https://localhost:6868"
		require.ErrorContains(t, s.Validate(), "ws or wss")
	})

	t.Run("no host", func(t *testing.T) {
		s := valid
		s.CortexURL = "wss://"
		require.ErrorContains(t, s.Validate(), "no host")
	})
}

func TestRedacted(t *testing.T) {
	s := Settings{ClientSecret: "verysecret9876"}
	r := s.Redacted()

	require.Equal(t, "**********9876", r.ClientSecret)
	require.Equal(t, "verysecret9876", s.ClientSecret, "Redacted must not mutate the receiver")
}

func TestMaskSecret(t *testing.T) {
	require.Equal(t, "", maskSecret(""))
	require.Equal(t, "****", maskSecret("abcd"))
	require.Equal(t, "**cdef", maskSecret("abcdef"))
}
