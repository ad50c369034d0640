// Package codec encodes whole document snapshots for backups and the
// dump/restore commands.
package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/example/examdesk/pkg/models"
)

// Codec reads and writes a document in one format
type Codec interface {
	Format() string
	Extension() string
	Encode(doc *models.AppData, w io.Writer) error
	Decode(r io.Reader) (*models.AppData, error)
}

var codecs = map[string]Codec{
	"json": NewJSONCodec(),
	"yaml": NewYAMLCodec(),
}

// ForFormat returns the codec registered for format
func ForFormat(format string) (Codec, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		format = "yaml"
	}
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return c, nil
}

// ForPath picks the codec from a file extension
func ForPath(path string) (Codec, error) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return nil, fmt.Errorf("cannot infer format of %q", path)
	}
	return ForFormat(path[idx+1:])
}

// Formats lists the supported format names
func Formats() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
