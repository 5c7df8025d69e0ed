package cortexsetup

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

const schemaFileName = "env.schema.json"

// envDocument describes the .env file for schema generation. The json tags
// carry the exact variable names so editors can validate the dotenv document.
type envDocument struct {
	ClientID     string `json:"EMOTIV_CLIENT_ID" jsonschema:"description=Cortex app client ID registered at https://emotiv.gitbook.io/cortex-api"`
	ClientSecret string `json:"EMOTIV_CLIENT_SECRET" jsonschema:"description=Cortex app client secret"`
	HeadsetID    string `json:"EMOTIV_HEADSET_ID,omitempty" jsonschema:"description=Target headset ID such as EPOCX-12345678. Leave blank to auto-select the first available headset"`
	License      string `json:"EMOTIV_LICENSE,omitempty" jsonschema:"description=Enterprise license key. Leave blank if not required"`
	Debit        int    `json:"EMOTIV_DEBIT,omitempty" jsonschema:"description=Number of sessions to debit from your plan per run,default=10"`
	Debug        bool   `json:"EMOTIV_DEBUG,omitempty" jsonschema:"description=Verbose WebSocket / JSON-RPC logging,default=false"`
	CortexURL    string `json:"EMOTIV_CORTEX_URL,omitempty" jsonschema:"description=Cortex service endpoint,default=wss://localhost:6868"`
	ExportFolder string `json:"EMOTIV_EXPORT_FOLDER,omitempty" jsonschema:"description=Folder where exported CSV and EDF files are saved"`
}

// SchemaCmd writes a JSON Schema describing the .env settings.
var SchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write a JSON Schema for the .env settings",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := WriteEnvSchema(".")
		if err != nil {
			log.Fatalf("Failed to write schema: %v", err)
		}
		log.Printf("Schema written: %s", path)
	},
}

// WriteEnvSchema reflects the .env document schema and writes it into dir.
func WriteEnvSchema(dir string) (string, error) {
	data, err := buildEnvSchema()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, schemaFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write schema: %w", err)
	}
	return path, nil
}

func buildEnvSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaObj := reflector.Reflect(&envDocument{})
	schemaObj.Title = "Emotiv Cortex examples .env"

	data, err := json.MarshalIndent(schemaObj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
