package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"append", ModeAppend, false},
		{"overwrite", ModeOverwrite, false},
		{"clean", ModeClean, false},
		{"", ModeAppend, false},
		{"purge", "", true},
	}
	for _, tt := range tests {
		t.Run("mode "+tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveChildren_AppendSkipsPopulated(t *testing.T) {
	node := &Node{Name: "Okinawa", Kind: KindZone, Children: []*Node{
		{Name: "Onna", Kind: KindArea},
	}}

	skip := ResolveChildren(node, ModeAppend, nil)
	assert.True(t, skip)
	assert.Len(t, node.Children, 1, "append never mutates existing children")
}

func TestResolveChildren_AppendEmptyProceeds(t *testing.T) {
	node := &Node{Name: "Okinawa", Kind: KindZone}
	skip := ResolveChildren(node, ModeAppend, nil)
	assert.False(t, skip)
}

func TestResolveChildren_OverwriteClearsAndEvictsPoints(t *testing.T) {
	node := &Node{Name: "Onna", Kind: KindArea, Children: []*Node{
		{Name: "Blue Cave", Kind: KindPoint},
		{Name: "Manza Dream Hole", Kind: KindPoint},
	}}

	points := NewNameSet(0.85)
	points.Add("Blue Cave")
	points.Add("Manza Dream Hole")
	points.Add("Unrelated Point")

	skip := ResolveChildren(node, ModeOverwrite, points)
	assert.False(t, skip)
	assert.Empty(t, node.Children)

	_, dup := points.Match("Blue Cave")
	assert.False(t, dup, "discarded point names are evicted")
	_, dup = points.Match("Unrelated Point")
	assert.True(t, dup, "other names are untouched")
}

func TestResolveChildren_OverwriteEvictsDeepPoints(t *testing.T) {
	// Overwriting a zone discards areas and their points.
	node := &Node{Name: "Okinawa", Kind: KindZone, Children: []*Node{
		{Name: "Onna", Kind: KindArea, Children: []*Node{
			{Name: "Blue Cave", Kind: KindPoint},
		}},
	}}

	points := NewNameSet(0.85)
	points.Add("Blue Cave")

	ResolveChildren(node, ModeOverwrite, points)
	_, dup := points.Match("Blue Cave")
	assert.False(t, dup)
}

func TestResolveChildren_OverwriteWithoutNameSet(t *testing.T) {
	node := &Node{Name: "Okinawa", Kind: KindZone, Children: []*Node{
		{Name: "Onna", Kind: KindArea},
	}}
	skip := ResolveChildren(node, ModeOverwrite, nil)
	assert.False(t, skip)
	assert.Empty(t, node.Children)
}
