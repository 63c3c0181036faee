package ir

// hashIndex is a separately-chained, insertion-ordered index keyed by
// byte-identical argument name. It mirrors original_source/docopt/hash.h: a
// fixed bucket count (no resize, since the arguments of one usage spec
// number in the dozens to low hundreds), plus a parallel insertion-ordered
// list so iteration is deterministic regardless of hashing. Deterministic
// iteration order is a public, test-observable property (spec.md §4.A, §8.1).
type hashIndex struct {
	buckets [numBuckets][]*NamedArg
	order   []*NamedArg
}

const numBuckets = 128

func newHashIndex() *hashIndex {
	return &hashIndex{}
}

// hint lets a lookup miss be followed by an insert without rehashing the
// name (original_source's hash_lookup returns a bucket hint for exactly
// this reason).
type hint = uint

func bucketFor(name string) hint {
	var h hint

	for i := 0; i < len(name); i++ {
		h = h*31 + hint(name[i])
	}

	return h % numBuckets
}

// lookup returns the entry for name, and the bucket hint to use for a
// subsequent insert regardless of whether the lookup hit or missed.
func (idx *hashIndex) lookup(name string) (*NamedArg, hint) {
	b := bucketFor(name)

	for _, entry := range idx.buckets[b] {
		if entry.Name == name {
			return entry, b
		}
	}

	return nil, b
}

// insert adds entry at the given bucket hint, and appends it to the
// insertion-ordered list used by iterate.
func (idx *hashIndex) insert(entry *NamedArg, h hint) {
	idx.buckets[h] = append(idx.buckets[h], entry)
	idx.order = append(idx.order, entry)
}

// iterate calls fn for every entry in insertion order.
func (idx *hashIndex) iterate(fn func(*NamedArg)) {
	for _, entry := range idx.order {
		fn(entry)
	}
}

// reset drops every entry, for Ctx teardown/reuse.
func (idx *hashIndex) reset() {
	for i := range idx.buckets {
		idx.buckets[i] = nil
	}

	idx.order = nil
}
