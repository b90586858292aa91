package discord

import (
	"crypto/sha1"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/keshon/slashery/pkg/slash"
)

// hashCommand creates a deterministic hash of a command descriptor. Option
// order is kept: it is visible to users, so reordering must re-register.
func hashCommand(s slash.CommandSchema) string {
	data, _ := json.Marshal(normalizeForHash(s))
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

// normalizeForHash keeps only the fields that define the command, so nil and
// empty collections hash the same.
func normalizeForHash(s slash.CommandSchema) map[string]any {
	obj := map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"type":        s.Kind,
	}
	if len(s.Options) > 0 {
		obj["options"] = normalizeOptions(s.Options)
	}
	return obj
}

func normalizeOptions(opts []slash.ArgumentSchema) []map[string]any {
	normalized := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Kind,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, len(o.Choices))
			for j, c := range o.Choices {
				choices[j] = map[string]any{
					"name":  c.Label,
					"value": c.Value,
				}
			}
			entry["choices"] = choices
		}
		normalized[i] = entry
	}
	return normalized
}
