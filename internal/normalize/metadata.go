package normalize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// Metadata extracts the per-report-type field catalog from one document.
// All documents share the same catalog, so any representative document
// works. Report types absent from the document are simply omitted.
func Metadata(doc []byte) (map[string]json.RawMessage, error) {
	var parsed struct {
		Metadata map[string]json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	out := make(map[string]json.RawMessage)
	for _, reportType := range model.ReportTypes {
		if raw, ok := parsed.Metadata[reportType]; ok {
			out[reportType] = raw
		}
	}
	return out, nil
}

// WriteMetadata persists the field catalog next to the bulk files so
// consumers can render labels without scanning them.
func WriteMetadata(path string, catalog map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
