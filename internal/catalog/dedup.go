package catalog

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameFolder strips diacritics: decompose, drop combining marks, recompose.
// Generation calls re-emit the same point as e.g. "Hōnokōhau" and
// "Honokohau" across rounds; folding lets both the exact and the fuzzy check
// see them as one name.
var nameFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldName(name string) string {
	folded, _, err := transform.String(nameFolder, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Similarity returns a normalized edit-distance ratio in [0,1] between two
// names after folding. Symmetric by construction.
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(foldName(a), foldName(b), nil)
}

// NameSet is the global set of accepted point names. Membership is decided
// exactly on the folded form, then fuzzily against every existing name with
// an inclusive similarity threshold.
type NameSet struct {
	threshold float64
	names     map[string]string // folded form → name as first accepted
}

// NewNameSet creates an empty set with the given duplicate threshold.
func NewNameSet(threshold float64) *NameSet {
	return &NameSet{
		threshold: threshold,
		names:     make(map[string]string),
	}
}

// Add records an accepted name. First writer wins: re-adding a folded
// equivalent keeps the original spelling.
func (s *NameSet) Add(name string) {
	key := foldName(name)
	if _, ok := s.names[key]; !ok {
		s.names[key] = name
	}
}

// Remove evicts a name, making it available for regeneration. Used when
// overwrite mode discards a subtree's points.
func (s *NameSet) Remove(name string) {
	delete(s.names, foldName(name))
}

// Len returns the number of distinct accepted names.
func (s *NameSet) Len() int {
	return len(s.names)
}

// Match reports whether candidate duplicates an accepted name, returning the
// matched existing name for audit logging. Exact (folded) membership is a
// duplicate; otherwise any existing name with similarity ≥ threshold is.
func (s *NameSet) Match(candidate string) (string, bool) {
	key := foldName(candidate)
	if existing, ok := s.names[key]; ok {
		return existing, true
	}
	for folded, existing := range s.names {
		if levenshtein.Similarity(key, folded, nil) >= s.threshold {
			return existing, true
		}
	}
	return "", false
}
