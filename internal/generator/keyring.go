package generator

// KeyRing rotates through the configured API keys. Rotation is circular and
// stateful for the whole run: a unit that leaves the pointer mid-ring hands
// the next unit the same position.
type KeyRing struct {
	keys []string
	idx  int
}

// NewKeyRing creates a ring over the given keys.
func NewKeyRing(keys []string) *KeyRing {
	return &KeyRing{keys: keys}
}

// Len returns the number of configured keys.
func (r *KeyRing) Len() int {
	return len(r.keys)
}

// Current returns the key the pointer rests on.
func (r *KeyRing) Current() string {
	if len(r.keys) == 0 {
		return ""
	}
	return r.keys[r.idx]
}

// Position returns the 1-based pointer position, for logging.
func (r *KeyRing) Position() int {
	return r.idx + 1
}

// Advance moves the pointer to the next key. With a single key there is
// nothing to rotate to: the pointer stays put and Advance reports false.
func (r *KeyRing) Advance() bool {
	if len(r.keys) <= 1 {
		return false
	}
	r.idx = (r.idx + 1) % len(r.keys)
	return true
}
