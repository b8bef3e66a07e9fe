package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame      int    `json:"frame"`
	File       string `json:"file"`
	Faces      int    `json:"faces"`
	Painted    int    `json:"painted"`
	Skipped    int    `json:"skipped"`
	Degenerate int    `json:"degenerate"`
	State      string `json:"state"`
	Error      string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, entries []ManifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
