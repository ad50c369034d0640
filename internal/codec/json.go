package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/examdesk/pkg/models"
)

// JSONCodec handles JSON snapshots
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Extension returns the file extension for snapshots
func (c *JSONCodec) Extension() string {
	return ".json"
}

// Encode writes doc as indented JSON
func (c *JSONCodec) Encode(doc *models.AppData, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Decode reads a JSON snapshot
func (c *JSONCodec) Decode(r io.Reader) (*models.AppData, error) {
	var doc models.AppData
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
