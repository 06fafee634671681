package values

// sharedString is the refcounted payload behind TypeString, giving immutable
// byte strings copy-on-write semantics: Value assignment (`$a = $b`) copies
// the *sharedString pointer (and therefore the refcount), and a mutation
// (e.g. string-append opcodes that don't go through a reference cell) must
// call Own() first, which clones only when more than one Value shares it.
type sharedString struct {
	s      string
	refs   int32
}

func newSharedString(s string) *sharedString {
	return &sharedString{s: s, refs: 1}
}

// Retain increments the refcount; call whenever a second Value starts
// sharing this payload (e.g. `$b = $a`).
func (s *sharedString) Retain() *sharedString {
	s.refs++
	return s
}

// Release decrements the refcount when a Value holding this payload is
// dropped. The arena's bulk-free at end of request means callers are not
// required to call this for correctness (invariant 4 only governs mutation,
// not lifetime) but VM code that explicitly drops a cell does so for
// symmetry with the reference-counted Object case below.
func (s *sharedString) Release() {
	if s.refs > 0 {
		s.refs--
	}
}

// Own returns a *sharedString the caller may mutate in place: itself if it
// is uniquely referenced, otherwise a fresh clone (the COW exit named by
// spec.md invariant 4).
func (s *sharedString) Own() *sharedString {
	if s.refs <= 1 {
		return s
	}
	s.refs--
	return newSharedString(s.s)
}
