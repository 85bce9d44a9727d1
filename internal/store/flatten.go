package store

import (
	"github.com/reefatlas/reefatlas-cli/internal/catalog"
)

// Flatten walks the catalog tree and returns one PointRow per dive point,
// tagged with the given provenance method. Points not nested exactly at
// Region > Zone > Area depth are skipped.
func Flatten(t *catalog.Tree, method string) []PointRow {
	var rows []PointRow
	t.Walk(func(path []string, n *catalog.Node) {
		if n.Kind != catalog.KindPoint || len(path) != 4 {
			return
		}
		rows = append(rows, PointRow{
			NodeID:       n.ID,
			Region:       path[0],
			Zone:         path[1],
			Area:         path[2],
			Name:         n.Name,
			Description:  n.Description,
			Level:        n.Level,
			MaxDepth:     n.MaxDepth,
			EntryType:    n.EntryType,
			Current:      n.Current,
			Topography:   n.Topography,
			Features:     n.Features,
			Latitude:     n.Latitude,
			Longitude:    n.Longitude,
			ImageKeyword: n.ImageKeyword,
			Method:       method,
		})
	})
	return rows
}
