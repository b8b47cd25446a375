package trace

import (
	"sort"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Interner maps canonical keys to dense uint32 ids. One interner is
// shared across every KeySet produced for an analysis run so that set
// union reduces to a bitmap or. Safe for concurrent use.
type Interner struct {
	mu   sync.RWMutex
	ids  map[string]uint32
	keys []string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]uint32)}
}

// Intern returns the id for key, assigning the next free id on first
// sight.
func (in *Interner) Intern(key string) uint32 {
	in.mu.RLock()
	id, ok := in.ids[key]
	in.mu.RUnlock()
	if ok {
		return id
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[key]; ok {
		return id
	}
	id = uint32(len(in.keys))
	in.ids[key] = id
	in.keys = append(in.keys, key)
	return id
}

// Lookup returns the id for key without assigning one.
func (in *Interner) Lookup(key string) (uint32, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	id, ok := in.ids[key]
	return id, ok
}

// Key returns the key for an assigned id.
func (in *Interner) Key(id uint32) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.keys[id]
}

// KeySet is a deduplicated set of canonical method keys observed
// executing. Membership is case-insensitive; keys are folded to lower
// case before interning. KeySets sharing an interner union in O(set
// size) regardless of how many trace files produced them.
type KeySet struct {
	interner *Interner
	bits     *roaring.Bitmap
}

// NewKeySet creates an empty set over the given interner. A nil
// interner gets a private one.
func NewKeySet(in *Interner) *KeySet {
	if in == nil {
		in = NewInterner()
	}
	return &KeySet{interner: in, bits: roaring.New()}
}

// Add folds the key to lower case and inserts it. Adding a key twice is
// a no-op.
func (ks *KeySet) Add(key string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	ks.bits.Add(ks.interner.Intern(key))
}

// Contains reports membership, case-insensitively.
func (ks *KeySet) Contains(key string) bool {
	id, ok := ks.interner.Lookup(strings.ToLower(strings.TrimSpace(key)))
	if !ok {
		return false
	}
	return ks.bits.Contains(id)
}

// Union merges other into the receiver. Both sets must share an
// interner; union is commutative and idempotent.
func (ks *KeySet) Union(other *KeySet) {
	if other == nil {
		return
	}
	if other.interner != ks.interner {
		// Differently-interned sets fall back to key-by-key insertion.
		for _, k := range other.Keys() {
			ks.Add(k)
		}
		return
	}
	ks.bits.Or(other.bits)
}

// Len returns the number of distinct keys.
func (ks *KeySet) Len() int {
	return int(ks.bits.GetCardinality())
}

// Keys returns the member keys in sorted order.
func (ks *KeySet) Keys() []string {
	keys := make([]string, 0, ks.Len())
	it := ks.bits.Iterator()
	for it.HasNext() {
		keys = append(keys, ks.interner.Key(it.Next()))
	}
	sort.Strings(keys)
	return keys
}
