package extract

import (
	"encoding/json"
	"fmt"

	"github.com/dtnitsch/url-metadata-extractor/internal/common"
	"gopkg.in/yaml.v3"
)

// encode renders results as json or yaml. A non-empty fields projects each
// record onto those keys.
func encode(results []Result, format, fields string) ([]byte, error) {
	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		entry := map[string]any{"url": r.URL}
		if r.Error != "" {
			entry["error"] = r.Error
		}
		if r.Record != nil {
			entry["record"] = common.FilterFields(r.Record, fields)
		}
		out = append(out, entry)
	}

	switch format {
	case "", "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
