package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zoobzio/datasync"
	"gopkg.in/yaml.v3"
)

// printValue writes v in the configured format. A nil value prints as an
// empty document.
func printValue(w io.Writer, format string, v *datasync.Value[Record]) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
