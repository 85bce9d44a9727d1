package catalog

import "github.com/rotisserie/eris"

// Mode is the merge policy a stage run applies to already-populated nodes.
type Mode string

const (
	// ModeAppend skips units whose target already has children.
	ModeAppend Mode = "append"
	// ModeOverwrite discards the target's existing children and regenerates.
	ModeOverwrite Mode = "overwrite"
	// ModeClean archives the whole tree before the run and starts empty.
	ModeClean Mode = "clean"
)

// ParseMode validates a CLI mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAppend, ModeOverwrite, ModeClean:
		return Mode(s), nil
	case "":
		return ModeAppend, nil
	default:
		return "", eris.Errorf("catalog: unknown mode %q (want append, overwrite or clean)", s)
	}
}

// ResolveChildren applies the merge policy to a located target node and
// reports whether the unit should be skipped without generating.
//
// Append with existing children skips. Overwrite discards the children —
// regenerated ids for the replaced portion only, the target's own id
// survives — and evicts any discarded point names from the global set so
// regeneration can re-accept them. Clean is a whole-run policy handled
// before any unit is processed, so per-node it behaves like a fresh tree.
func ResolveChildren(node *Node, mode Mode, points *NameSet) (skip bool) {
	if len(node.Children) == 0 {
		return false
	}

	switch mode {
	case ModeOverwrite:
		if points != nil {
			for _, name := range subtreePointNames(node) {
				points.Remove(name)
			}
		}
		node.Children = nil
		return false
	default:
		return true
	}
}

func subtreePointNames(n *Node) []string {
	var names []string
	var visit func(*Node)
	visit = func(n *Node) {
		if n.Kind == KindPoint {
			names = append(names, n.Name)
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, c := range n.Children {
		visit(c)
	}
	return names
}
