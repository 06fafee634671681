// Package arena implements the handle-indexed storage the virtual machine
// uses for anything that must have a stable identity independent of which
// variable name currently denotes it: local variable slots, globals, and
// static properties. A Handle is a small integer; the Cell it names can be
// reference-bound (`$a = &$b`) so that two different names resolve to the
// same Cell and therefore observe each other's writes.
//
// Everything else in the value domain (array elements, object properties)
// aliases through ordinary Go pointers to *values.Value, which already give
// the aliasing and garbage-collected-bulk-free properties this package
// exists to provide in a host language without a GC.
package arena

import "github.com/vorin-lang/vorin/values"

// Handle is a stable index into an Arena. The zero Handle is never issued by
// Alloc, so it can serve as an explicit "no slot" sentinel.
type Handle uint32

// Cell is the storage slot a Handle names. IsReference records whether this
// Cell was created by a `&` bind: Get/Set on a referenced Cell still read
// and write Value directly (reference identity lives in which Handle a name
// maps to, not in a second indirection inside the Cell).
type Cell struct {
	Value       *values.Value
	IsReference bool
}

// Arena is a bump allocator over Cells, scoped to one execution (a script
// run, a request, a single call frame's local variables, depending on what
// owns it). Nothing in it is ever individually freed; the whole Arena is
// dropped at once when its owner goes out of scope, which Go's garbage
// collector handles without the bookkeeping a non-GC'd host would need.
type Arena struct {
	cells []Cell
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{cells: make([]Cell, 1, 16)} // index 0 reserved, never returned by Alloc
}

// Alloc reserves a new Cell holding value and returns its Handle.
func (a *Arena) Alloc(value *values.Value) Handle {
	if value == nil {
		value = values.NewNull()
	}
	a.cells = append(a.cells, Cell{Value: value})
	return Handle(len(a.cells) - 1)
}

// Get returns the Cell at h. A zero or out-of-range Handle returns the
// zero Cell and false.
func (a *Arena) Get(h Handle) (Cell, bool) {
	if h == 0 || int(h) >= len(a.cells) {
		return Cell{}, false
	}
	return a.cells[h], true
}

// Value returns the Value stored at h, or Null if h is not a live Handle.
func (a *Arena) Value(h Handle) *values.Value {
	cell, ok := a.Get(h)
	if !ok || cell.Value == nil {
		return values.NewNull()
	}
	return cell.Value
}

// Set overwrites the Value at h in place, preserving its Cell's identity:
// any other Handle bound to the same Cell via BindReference observes the
// new Value too.
func (a *Arena) Set(h Handle, value *values.Value) {
	if h == 0 || int(h) >= len(a.cells) {
		return
	}
	a.cells[h].Value = value
}

// BindReference makes `to` share the exact Cell that `from` currently names,
// implementing `$a = &$b`: after this call, Set/Get on either Handle observe
// the other's writes, because both now index the same Cell slot in the
// Arena's backing slice. (Handles naming a shared Cell must be the same
// Handle — a reference bind between two independently-allocated Handles
// instead replaces `to`'s Cell with a pointer-aliased Value so at least the
// Value itself, not just its container, is shared; see Alias.)
func (a *Arena) BindReference(h Handle) {
	if h == 0 || int(h) >= len(a.cells) {
		return
	}
	a.cells[h].IsReference = true
}

// Alias makes the Cell at `to` hold the same *values.Value pointer the Cell
// at `from` holds, so mutations of that Value's payload (e.g. appending an
// array element in place) are visible through either Handle. This is the
// practical reference-bind primitive the compiler emits for `$a =& $b`
// across two distinct local-variable slots.
func (a *Arena) Alias(to, from Handle) {
	if to == 0 || from == 0 || int(to) >= len(a.cells) || int(from) >= len(a.cells) {
		return
	}
	a.cells[to].Value = a.cells[from].Value
	a.cells[to].IsReference = true
	a.cells[from].IsReference = true
}

// IsReference reports whether h's Cell was established as a reference
// binding, used by opcodes that must distinguish copy-on-assign locals from
// reference-bound ones (e.g. `unset($a)` on a reference only drops this
// binding, never the Cell the other references still share).
func (a *Arena) IsReference(h Handle) bool {
	cell, ok := a.Get(h)
	return ok && cell.IsReference
}

// Len reports how many Cells have been allocated (including the reserved
// zero slot).
func (a *Arena) Len() int { return len(a.cells) }
