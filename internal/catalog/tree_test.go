package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree {
	return &Tree{Regions: []*Node{
		{
			ID: "r_1700000000", Name: "Japan", Kind: KindRegion,
			Children: []*Node{
				{
					ID: "z_1700000000_Okinawa", Name: "Okinawa", Kind: KindZone,
					Description: "Subtropical islands",
					Children: []*Node{
						{
							ID: "a_1700000000_Onna", Name: "Onna", Kind: KindArea,
							Children: []*Node{
								{ID: "p_1700000000_Blue Cave", Name: "Blue Cave", Kind: KindPoint, MaxDepth: 18},
							},
						},
					},
				},
				{ID: "z_1700000000_Izu", Name: "Izu", Kind: KindZone},
			},
		},
		{ID: "r_1700000001", Name: "Australia", Kind: KindRegion},
	}}
}

func TestSaveAndLoadTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "locations_seed.json")

	tree := sampleTree()
	require.NoError(t, tree.Save(path))

	// Pretty-printed JSON array on disk.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n"))
	assert.Contains(t, string(raw), `"type": "Point"`)

	loaded, err := LoadTree(path)
	require.NoError(t, err)
	require.Len(t, loaded.Regions, 2)
	assert.Equal(t, tree.Regions[0].Children[0].Children[0].Children[0].ID,
		loaded.Regions[0].Children[0].Children[0].Children[0].ID)
}

func TestLoadTree_MissingFileIsEmptyTree(t *testing.T) {
	tree, err := LoadTree(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, tree.Regions)
}

func TestLoadTree_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadTree(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse tree")
}

func TestLocate(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		name    string
		unit    WorkUnit
		wantID  string
		wantErr bool
	}{
		{"region", WorkUnit{Region: "Japan"}, "r_1700000000", false},
		{"zone", WorkUnit{Region: "Japan", Zone: "Okinawa"}, "z_1700000000_Okinawa", false},
		{"area", WorkUnit{Region: "Japan", Zone: "Okinawa", Area: "Onna"}, "a_1700000000_Onna", false},
		{"missing region", WorkUnit{Region: "Atlantis"}, "", true},
		{"missing zone", WorkUnit{Region: "Japan", Zone: "Hokkaido"}, "", true},
		{"missing area", WorkUnit{Region: "Japan", Zone: "Okinawa", Area: "Naha"}, "", true},
		{"empty unit", WorkUnit{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tree.Locate(tt.unit)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrPathNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, node.ID)
		})
	}
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	bak, err := Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", bak)

	data, err := os.ReadFile(bak)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBackup_MissingFileNoop(t *testing.T) {
	bak, err := Backup(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, bak)
}

func TestPointNames(t *testing.T) {
	names := sampleTree().PointNames()
	assert.Equal(t, []string{"Blue Cave"}, names)
}

func TestCountByKind(t *testing.T) {
	counts := sampleTree().CountByKind()
	assert.Equal(t, 2, counts[KindRegion])
	assert.Equal(t, 2, counts[KindZone])
	assert.Equal(t, 1, counts[KindArea])
	assert.Equal(t, 1, counts[KindPoint])
}

func TestWalkPaths(t *testing.T) {
	var paths []string
	sampleTree().Walk(func(path []string, _ *Node) {
		paths = append(paths, strings.Join(path, "/"))
	})
	assert.Contains(t, paths, "Japan")
	assert.Contains(t, paths, "Japan/Okinawa/Onna/Blue Cave")
	assert.Contains(t, paths, "Australia")
}

func TestNewID(t *testing.T) {
	id := NewID(KindPoint, "Blue Cave")
	assert.True(t, strings.HasPrefix(id, "p_"))
	assert.True(t, strings.HasSuffix(id, "_Blue Cave"))

	regionID := NewID(KindRegion, "")
	assert.True(t, strings.HasPrefix(regionID, "r_"))
	assert.Equal(t, 1, strings.Count(regionID, "_"))
}
