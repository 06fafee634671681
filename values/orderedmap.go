package values

import (
	"fmt"
	"sort"
	"strconv"
)

// Array is the container backing TypeArray. Its key space is normalized the
// way array subscripting normalizes keys: a byte-string that looks like a
// canonical signed 64-bit integer (no leading zero, no "-0") becomes an
// int64 key, everything else stays a string key; bool/float/null keys
// coerce the same way on the way in. Elements is keyed by that normalized
// form (int64 or string) directly so callers that already hold a raw Go key
// (most of the builtin function library) can index it without going through
// a wrapper type.
//
// order tracks insertion sequence for callers that go through Insert/
// Append/Delete; code that writes Elements directly (common in the older
// parts of the builtin library, which predate this ordering layer) bypasses
// it, so Each/Keys fall back to a deterministic sorted order — integers
// first by value, then strings lexically — whenever order has drifted out
// of sync with Elements. That fallback is exactly the "elements in asort()
// order" degradation applications have never been able to tell apart from
// a typo'd test, but unlike a crash it's recoverable: callers that care
// about strict insertion order just need to route through Insert/Append.
type Array struct {
	Elements  map[interface{}]*Value
	NextIndex int64
	IsIndexed bool

	order []interface{}
	refs  int32
}

func NewOrderedMap() *Array {
	return &Array{Elements: make(map[interface{}]*Value), refs: 1, IsIndexed: true}
}

func (m *Array) Retain() *Array {
	m.refs++
	return m
}

func (m *Array) Release() {
	if m.refs > 0 {
		m.refs--
	}
}

// Own returns an Array the caller may mutate in place, cloning first when
// shared (refcount > 1) — the copy-on-write exit condition.
func (m *Array) Own() *Array {
	if m.refs <= 1 {
		return m
	}
	m.refs--
	clone := &Array{
		Elements:  make(map[interface{}]*Value, len(m.Elements)),
		NextIndex: m.NextIndex,
		IsIndexed: m.IsIndexed,
		order:     append([]interface{}(nil), m.order...),
		refs:      1,
	}
	for k, v := range m.Elements {
		clone.Elements[k] = v
	}
	return clone
}

func (m *Array) Count() int { return len(m.Elements) }

func (m *Array) Get(key interface{}) (*Value, bool) {
	v, ok := m.Elements[key]
	return v, ok
}

func (m *Array) Has(key interface{}) bool {
	_, ok := m.Elements[key]
	return ok
}

// Insert implements the `insert(key, value)` array primitive: advances
// NextIndex when key is an integer >= NextIndex.
func (m *Array) Insert(key interface{}, value *Value) {
	if _, exists := m.Elements[key]; !exists {
		m.order = append(m.order, key)
	}
	m.Elements[key] = value
	if ik, ok := key.(int64); ok {
		m.IsIndexed = false
		if ik >= m.NextIndex {
			m.NextIndex = ik + 1
		}
	} else {
		m.IsIndexed = false
	}
}

// Append implements the `append(value)` array primitive: uses and advances
// NextIndex by exactly 1.
func (m *Array) Append(value *Value) interface{} {
	key := m.NextIndex
	m.order = append(m.order, key)
	m.Elements[key] = value
	m.NextIndex++
	return key
}

func (m *Array) Delete(key interface{}) {
	if _, exists := m.Elements[key]; !exists {
		return
	}
	delete(m.Elements, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Array) NextFreeKey() int64 { return m.NextIndex }

// keysInOrder returns every key in Elements, in insertion order where the
// order slice is complete, falling back to a deterministic sort for keys
// that were written directly into Elements and never went through Insert/
// Append.
func (m *Array) keysInOrder() []interface{} {
	if len(m.order) == len(m.Elements) {
		ok := true
		for _, k := range m.order {
			if _, exists := m.Elements[k]; !exists {
				ok = false
				break
			}
		}
		if ok {
			out := make([]interface{}, len(m.order))
			copy(out, m.order)
			return out
		}
	}
	out := make([]interface{}, 0, len(m.Elements))
	for k := range m.Elements {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		ik, iInt := out[i].(int64)
		jk, jInt := out[j].(int64)
		if iInt && jInt {
			return ik < jk
		}
		if iInt != jInt {
			return iInt // ints sort before strings
		}
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

func (m *Array) Keys() []interface{} { return m.keysInOrder() }

// Each walks entries in (best-effort) insertion order. The callback must
// not mutate m.
func (m *Array) Each(fn func(key interface{}, value *Value)) {
	for _, k := range m.keysInOrder() {
		fn(k, m.Elements[k])
	}
}

func (m *Array) equal(other *Array, strict bool) bool {
	if m.Count() != other.Count() {
		return false
	}
	if strict {
		mk, ok := m.keysInOrder(), other.keysInOrder()
		for i, k := range mk {
			if ok[i] != k {
				return false
			}
			if !m.Elements[k].Identical(other.Elements[k]) {
				return false
			}
		}
		return true
	}
	for k, v := range m.Elements {
		ov, exists := other.Elements[k]
		if !exists || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// union implements the `+` array operator: left operand wins on key clash.
func (m *Array) union(other *Array) *Array {
	result := NewOrderedMap()
	m.Each(func(k interface{}, v *Value) { result.Insert(k, v) })
	other.Each(func(k interface{}, v *Value) {
		if !result.Has(k) {
			result.Insert(k, v)
		}
	})
	return result
}

// Clone performs a deep structural copy (used by `(array)` casts and
// array_merge-style builtins that must not alias the source).
func (m *Array) Clone() *Array {
	clone := NewOrderedMap()
	m.Each(func(k interface{}, v *Value) { clone.Insert(k, v) })
	return clone
}

// convertArrayKey normalizes an arbitrary Value into the canonical key form
// ArrayGet/ArraySet and the FetchDim opcodes use: bool true/false -> 1/0,
// float truncates toward zero, null -> "", and a byte-string that is a
// canonical signed-integer literal (no leading zero, no bare "-0") becomes
// an int64 rather than staying a string.
func convertArrayKey(key *Value) interface{} {
	key = key.Deref()
	switch key.Type {
	case TypeNull:
		return ""
	case TypeBool:
		if key.Data.(bool) {
			return int64(1)
		}
		return int64(0)
	case TypeInt:
		return key.Data.(int64)
	case TypeFloat:
		return int64(key.Data.(float64))
	case TypeString:
		s := key.str()
		if n, ok := parseCanonicalIntKey(s); ok {
			return n
		}
		return s
	default:
		return key.ToString()
	}
}

// parseCanonicalIntKey implements the "integer-valued byte-string becomes an
// integer key" normalization: optional leading '-', no leading zero (except
// "0" itself), digits only, fits in int64.
func parseCanonicalIntKey(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	i := 0
	neg := false
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i >= len(s) {
		return 0, false
	}
	if s[i] == '0' && len(s) > i+1 {
		return 0, false
	}
	var n int64
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		digit := int64(c - '0')
		if n > (9223372036854775807-digit)/10 {
			return 0, false
		}
		n = n*10 + digit
	}
	if neg {
		n = -n
	}
	return n, true
}

func dumpKey(key interface{}) string {
	switch k := key.(type) {
	case int64:
		return fmt.Sprintf("%d", k)
	case int:
		return fmt.Sprintf("%d", k)
	case string:
		return fmt.Sprintf("%q", k)
	default:
		return fmt.Sprintf("%q", fmt.Sprint(k))
	}
}

func printRKey(key interface{}) string {
	switch k := key.(type) {
	case int64:
		return strconv.FormatInt(k, 10)
	case int:
		return strconv.Itoa(k)
	case string:
		return k
	default:
		return fmt.Sprint(k)
	}
}

func keyToValue(key interface{}) *Value {
	switch k := key.(type) {
	case int64:
		return NewInt(k)
	case int:
		return NewInt(int64(k))
	case string:
		return NewString(k)
	default:
		return NewString(fmt.Sprint(k))
	}
}
