// Package catalog models the persisted dive-location tree: Region → Zone →
// Area → Point, with the merge policies and name deduplication the
// generation pipeline applies to it.
package catalog

import (
	"fmt"
	"time"
)

// Kind identifies a node's level in the four-level hierarchy.
type Kind string

const (
	KindRegion Kind = "Region"
	KindZone   Kind = "Zone"
	KindArea   Kind = "Area"
	KindPoint  Kind = "Point"
)

var idPrefixes = map[Kind]string{
	KindRegion: "r",
	KindZone:   "z",
	KindArea:   "a",
	KindPoint:  "p",
}

// NewID mints a node id: <kind-prefix>_<unix-timestamp>[_<name>]. Ids are
// assigned once at creation and never regenerated on update.
func NewID(kind Kind, name string) string {
	prefix := idPrefixes[kind]
	ts := time.Now().Unix()
	if name == "" {
		return fmt.Sprintf("%s_%d", prefix, ts)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, ts, name)
}

// Node is one entry in the location tree. Region, Zone and Area nodes carry
// a description and children; Point nodes carry the dive-spot attributes and
// no children.
type Node struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        Kind   `json:"type"`
	Description string `json:"description,omitempty"`

	// Point attributes.
	Level        string   `json:"level,omitempty"`
	MaxDepth     int      `json:"maxDepth,omitempty"`
	EntryType    string   `json:"entryType,omitempty"`
	Current      string   `json:"current,omitempty"`
	Topography   []string `json:"topography,omitempty"`
	Features     []string `json:"features,omitempty"`
	Latitude     float64  `json:"latitude,omitempty"`
	Longitude    float64  `json:"longitude,omitempty"`
	ImageKeyword string   `json:"imageKeyword,omitempty"`
	Image        string   `json:"image,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasChildNamed reports whether a direct child with that exact name exists.
// Sibling names are the dedup scope at Region, Zone and Area level.
func (n *Node) HasChildNamed(name string) bool {
	return n.Child(name) != nil
}
