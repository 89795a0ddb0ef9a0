package view

// Memo caches one derived value keyed on the versions of the collections it
// was computed from. The compute func runs only when a version moved, so a
// render between mutations reuses the previous projection.
type Memo[V any] struct {
	versions []uint64
	value    V
	valid    bool
}

func (m *Memo[V]) Get(compute func() V, versions ...uint64) V {
	if m.valid && sameVersions(m.versions, versions) {
		return m.value
	}
	m.value = compute()
	m.versions = append(m.versions[:0], versions...)
	m.valid = true
	return m.value
}

// Invalidate forces the next Get to recompute.
func (m *Memo[V]) Invalidate() {
	m.valid = false
}

func sameVersions(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
