package outputproviders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/praetorian-inc/netdump/internal/message"
	"github.com/praetorian-inc/netdump/pkg/topology"
)

// Format selects the encoding of the topology document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q", name)
}

// Encode writes v to w in the given format, indented by two spaces.
func Encode(w io.Writer, format Format, v any) error {
	if format == FormatYAML {
		return encodeYAML(w, v)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteFile encodes v into path, replacing any existing file.
func WriteFile(path string, format Format, v any) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	if err := Encode(file, format, v); err != nil {
		file.Close()
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	message.Success("Output written to %s", path)
	return nil
}

// WriteErrors writes the project errors to w as indented [projectId, message]
// pairs.
func WriteErrors(w io.Writer, errs []topology.ProjectError) error {
	return Encode(w, FormatJSON, ErrorPairs(errs))
}
