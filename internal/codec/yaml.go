package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/examdesk/pkg/models"
)

// YAMLCodec handles YAML snapshots
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Extension returns the file extension for snapshots
func (c *YAMLCodec) Extension() string {
	return ".yaml"
}

// Encode writes doc as YAML
func (c *YAMLCodec) Encode(doc *models.AppData, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// Decode reads a YAML snapshot
func (c *YAMLCodec) Decode(r io.Reader) (*models.AppData, error) {
	var doc models.AppData
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
