package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// ErrPathNotFound is returned by Locate when an ancestor name does not
// resolve. The affected work unit is skipped; the run continues.
var ErrPathNotFound = eris.New("catalog: path not found")

// Tree is the in-memory form of the persisted location tree: an ordered
// forest of Region nodes. It is the single source of truth between stage
// invocations; each stage loads it whole and rewrites it whole.
type Tree struct {
	Regions []*Node
}

// LoadTree reads the tree file. A missing file yields an empty tree, not an
// error: the first stage of a fresh catalog starts from nothing.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Tree{}, nil
		}
		return nil, eris.Wrapf(err, "catalog: read tree %s", path)
	}

	var regions []*Node
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse tree %s", path)
	}
	return &Tree{Regions: regions}, nil
}

// Save rewrites the whole tree file, pretty-printed, creating parent
// directories as needed.
func (t *Tree) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return eris.Wrapf(err, "catalog: mkdir for %s", path)
	}

	regions := t.Regions
	if regions == nil {
		regions = []*Node{}
	}
	data, err := json.MarshalIndent(regions, "", "  ")
	if err != nil {
		return eris.Wrap(err, "catalog: marshal tree")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return eris.Wrapf(err, "catalog: write tree %s", path)
	}
	return nil
}

// Backup copies the tree file to <path>.bak. Used once per clean-mode run,
// before the in-memory tree is reset. A missing tree file is a no-op.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", eris.Wrapf(err, "catalog: read tree for backup %s", path)
	}

	bak := path + ".bak"
	if err := os.WriteFile(bak, data, 0644); err != nil {
		return "", eris.Wrapf(err, "catalog: write backup %s", bak)
	}
	return bak, nil
}

// Region returns the top-level region node with the given name, or nil.
func (t *Tree) Region(name string) *Node {
	for _, r := range t.Regions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Locate walks the unit's ancestor names level by level and returns the
// deepest named node. A miss at any level returns ErrPathNotFound wrapped
// with the unit's path.
func (t *Tree) Locate(u WorkUnit) (*Node, error) {
	path := u.Path()
	if len(path) == 0 {
		return nil, eris.Wrap(ErrPathNotFound, "empty work unit")
	}

	node := t.Region(path[0])
	if node == nil {
		return nil, eris.Wrapf(ErrPathNotFound, "region %q", path[0])
	}
	for _, name := range path[1:] {
		node = node.Child(name)
		if node == nil {
			return nil, eris.Wrapf(ErrPathNotFound, "%q in %s", name, u)
		}
	}
	return node, nil
}

// Walk visits every node depth-first, passing the ancestor-name path of each
// node (the node's own name included as the last element).
func (t *Tree) Walk(fn func(path []string, n *Node)) {
	var visit func(prefix []string, n *Node)
	visit = func(prefix []string, n *Node) {
		path := append(append([]string{}, prefix...), n.Name)
		fn(path, n)
		for _, c := range n.Children {
			visit(path, c)
		}
	}
	for _, r := range t.Regions {
		visit(nil, r)
	}
}

// PointNames collects every Point-level name in the tree. Feeds the global
// dedup set at the start of a points-stage run.
func (t *Tree) PointNames() []string {
	var names []string
	t.Walk(func(_ []string, n *Node) {
		if n.Kind == KindPoint {
			names = append(names, n.Name)
		}
	})
	return names
}

// CountByKind tallies nodes per hierarchy level.
func (t *Tree) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	t.Walk(func(_ []string, n *Node) {
		counts[n.Kind]++
	})
	return counts
}
