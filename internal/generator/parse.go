package generator

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// ZoneRecord is one zone proposed by the model for a region.
type ZoneRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AreaRecord is one area proposed by the model for a zone.
type AreaRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PointRecord is one dive point proposed by the model for an area.
type PointRecord struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Level        string   `json:"level"`
	MaxDepth     int      `json:"maxDepth"`
	EntryType    string   `json:"entryType"`
	Current      string   `json:"current"`
	Topography   []string `json:"topography"`
	Features     []string `json:"features"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	ImageKeyword string   `json:"imageKeyword"`
}

// cleanJSONArray strips markdown code fences and any surrounding prose from a
// model response, returning the slice between the first '[' and the last ']'.
func cleanJSONArray(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "", eris.New("no JSON array found in response")
	}
	return s[start : end+1], nil
}

// parseRecords decodes a model response into a list of records. The response
// may be fenced or padded with prose; it must contain exactly one JSON array.
func parseRecords[T any](text string) ([]T, error) {
	raw, err := cleanJSONArray(text)
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, eris.Wrap(err, "decoding response array")
	}
	return records, nil
}
