package opcodes

// CatchEntry is one row of a function's catch table: while the instruction
// pointer is within [TryStart, TryEnd), an exception whose class matches one
// of CatchClasses (or matches nothing when CatchClasses is empty, meaning a
// bare finally with no catch) transfers control to CatchIP; a FinallyIP of
// zero means there is no finally block to run on the way out. Class names
// are plain strings, matching how the rest of the registry (registry.Class.Name,
// registry.Class.Parent) names classes rather than interning them.
type CatchEntry struct {
	TryStart     uint32
	TryEnd       uint32
	CatchIP      uint32
	FinallyIP    uint32
	CatchClasses []string
}

// FindCatch returns the innermost CatchEntry covering ip whose CatchClasses
// set is either empty or contains one of classMatches (the exception's own
// class plus every ancestor/interface it implements, resolved by the
// caller), and reports whether one was found. Entries are assumed to be in
// the order the compiler emits them: innermost try blocks first.
func FindCatch(table []CatchEntry, ip uint32, classMatches func(string) bool) (CatchEntry, bool) {
	for _, entry := range table {
		if ip < entry.TryStart || ip >= entry.TryEnd {
			continue
		}
		if len(entry.CatchClasses) == 0 {
			return entry, true
		}
		for _, class := range entry.CatchClasses {
			if classMatches(class) {
				return entry, true
			}
		}
	}
	return CatchEntry{}, false
}
