// Package catalog loads the read-only knowledge-unit catalog produced by
// the ingestion pipeline. The file format is lenient: ingestion tooling has
// emitted several key casings over time, so normalization accepts them all.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UnitsFile is the catalog file name inside the data directory.
const UnitsFile = "knowledge-units.json"

// Unit is one knowledge unit from the ingested catalog. Units are immutable
// and owned by the ingestion collaborator; the engine references them by ID.
type Unit struct {
	ID        string   `json:"id"`
	Topic     string   `json:"topic"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

// Load reads and normalizes the catalog from dir. A missing file is not an
// error; it yields an empty catalog.
func Load(dir string) ([]Unit, error) {
	path := filepath.Join(dir, UnitsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	units, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return units, nil
}

// Parse normalizes raw catalog JSON. The payload is either a bare list of
// units or an object with a "units" list; malformed entries are skipped and
// missing IDs are synthesized from the entry's position.
func Parse(data []byte) ([]Unit, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	var raw []any
	switch v := payload.(type) {
	case []any:
		raw = v
	case map[string]any:
		if list, ok := v["units"].([]any); ok {
			raw = list
		}
	}

	var units []Unit
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		id := stringValue(entry, "id", "Id")
		if id == "" {
			id = fmt.Sprintf("unit-%d", i)
		}
		summary := stringValue(entry, "summary", "Summary")
		topic := stringValue(entry, "topic", "Topic")
		if topic == "" {
			topic = summary
		}
		if topic == "" {
			topic = "Untitled"
		}

		units = append(units, Unit{
			ID:        id,
			Topic:     topic,
			Summary:   summary,
			KeyPoints: stringList(entry, "key_points", "keyPoints", "KeyPoints"),
		})
	}
	return units, nil
}

// Difficulties derives a synthetic item difficulty per unit from its rank
// position, evenly spaced across [-1, 1]. A single-unit catalog sits at 0.
func Difficulties(units []Unit) map[string]float64 {
	result := make(map[string]float64, len(units))
	count := len(units)
	for i, u := range units {
		if count > 1 {
			result[u.ID] = (float64(i)/float64(count-1))*2.0 - 1.0
		} else {
			result[u.ID] = 0.0
		}
	}
	return result
}

// ByID indexes units by identifier.
func ByID(units []Unit) map[string]Unit {
	result := make(map[string]Unit, len(units))
	for _, u := range units {
		result[u.ID] = u
	}
	return result
}

// MeanDifficulty averages the per-unit difficulties, 0 for an empty map.
func MeanDifficulty(difficulties map[string]float64) float64 {
	if len(difficulties) == 0 {
		return 0.0
	}
	var sum float64
	for _, d := range difficulties {
		sum += d
	}
	return sum / float64(len(difficulties))
}

func stringValue(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := entry[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func stringList(entry map[string]any, keys ...string) []string {
	for _, key := range keys {
		list, ok := entry[key].([]any)
		if !ok {
			continue
		}
		var result []string
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
