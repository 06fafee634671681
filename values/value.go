// Package values implements the tagged runtime value domain the virtual
// machine operates over: Null, Boolean, Integer, Float, String, Array,
// ObjectInstance, Resource and a small set of internal sentinels, plus the
// PHP-style coercion and comparison rules opcodes are built on.
package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vorin-lang/vorin/symbols"
)

// ValueType identifies which variant of the tagged union a Value holds.
type ValueType byte

const (
	TypeNull ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray  // Array — serves as both "array" and "dictionary"
	TypeObject
	TypeResource
	TypeReference
	TypeCallable
	TypeGoroutine
	TypeWaitGroup

	// TypeAppendPlaceholder is the internal sentinel produced when compiling
	// the lvalue form `array[] = ...`: it carries no data and exists only so
	// fetch-for-write opcodes can distinguish "append" from "index 0".
	TypeAppendPlaceholder
)

// Value is the tagged runtime value. Data holds the variant payload:
//   - TypeBool: bool
//   - TypeInt: int64
//   - TypeFloat: float64
//   - TypeString: *sharedString (refcounted, COW)
//   - TypeArray: *Array (refcounted, COW)
//   - TypeObject: *ObjectInstance (refcounted)
//   - TypeReference: *Reference
//   - TypeResource, TypeCallable, TypeGoroutine, TypeWaitGroup: as documented
//     on their constructors below.
type Value struct {
	Type ValueType
	Data interface{}
}

// Reference wraps a target Value so that `$a = &$b` aliasing is observable:
// all Handles pointing at the same Cell (see package arena) see the same
// Reference, and therefore the same Target, regardless of which name reads
// or writes it.
type Reference struct {
	Target *Value
}

// Closure represents a closure/anonymous function together with its
// captured-lexical environment.
type Closure struct {
	Function  interface{}       // *registry.Function, kept opaque to avoid an import cycle
	BoundVars map[string]*Value // captures: by-value entries are snapshots, by-reference entries alias the outer Value
	Name      string
}

// Goroutine and WaitGroup model the host-managed concurrency primitives
// described in spec.md §5: they run on host threads, never on the single
// cooperative interpreter thread, so no Value above them needs locking from
// the VM's point of view beyond what they implement themselves.
type Goroutine struct {
	ID       int64
	Function *Closure
	UseVars  map[string]*Value
	Status   string
	Result   *Value
	Error    error
	Done     chan struct{}
}

type WaitGroup struct {
	counter  int64
	waitChan chan struct{}
	mu       sync.Mutex
	done     bool
}

// Constructors

func NewNull() *Value { return &Value{Type: TypeNull} }

func NewBool(b bool) *Value { return &Value{Type: TypeBool, Data: b} }

func NewInt(i int64) *Value { return &Value{Type: TypeInt, Data: i} }

func NewFloat(f float64) *Value { return &Value{Type: TypeFloat, Data: f} }

func NewString(s string) *Value {
	return &Value{Type: TypeString, Data: newSharedString(s)}
}

func NewArray() *Value {
	return &Value{Type: TypeArray, Data: NewOrderedMap()}
}

func NewArrayFromMap(m *Array) *Value {
	return &Value{Type: TypeArray, Data: m}
}

// NewObject constructs an object by class name alone, for callers (the
// builtin function library, exception construction helpers) that don't
// carry a symbols.Interner reference to intern a Class symbol with. Class
// is left as symbols.Invalid; code that does have the Symbol on hand (the
// compiler/vm core, resolving a `new` expression against a declared class)
// should build the ObjectInstance directly with NewObjectInstance and wrap
// it with NewObjectInstanceValue instead.
func NewObject(className string) *Value {
	return &Value{Type: TypeObject, Data: NewObjectInstance(symbols.Invalid, className)}
}

func NewObjectInstanceValue(obj *ObjectInstance) *Value {
	return &Value{Type: TypeObject, Data: obj}
}

func NewReference(target *Value) *Value {
	return &Value{Type: TypeReference, Data: &Reference{Target: target}}
}

func NewClosure(function interface{}, boundVars map[string]*Value, name string) *Value {
	if boundVars == nil {
		boundVars = make(map[string]*Value)
	}
	return &Value{Type: TypeCallable, Data: &Closure{Function: function, BoundVars: boundVars, Name: name}}
}

func NewResource(data interface{}) *Value { return &Value{Type: TypeResource, Data: data} }

func NewCallable(closure *Closure) *Value { return &Value{Type: TypeCallable, Data: closure} }

var goroutineIDCounter int64

func NewGoroutine(closure *Closure, useVars map[string]*Value) *Value {
	if useVars == nil {
		useVars = make(map[string]*Value)
	}
	return &Value{Type: TypeGoroutine, Data: &Goroutine{
		ID: atomic.AddInt64(&goroutineIDCounter, 1), Function: closure, UseVars: useVars,
		Status: "running", Result: NewNull(), Done: make(chan struct{}),
	}}
}

func NewWaitGroup() *Value {
	return &Value{Type: TypeWaitGroup, Data: &WaitGroup{waitChan: make(chan struct{})}}
}

// NewAppendPlaceholder returns the internal sentinel used while compiling the
// lvalue form `array[] = ...`.
func NewAppendPlaceholder() *Value { return &Value{Type: TypeAppendPlaceholder} }

// Type predicates

func (v *Value) IsNull() bool      { return v.Type == TypeNull }
func (v *Value) IsBool() bool      { return v.Type == TypeBool }
func (v *Value) IsInt() bool       { return v.Type == TypeInt }
func (v *Value) IsFloat() bool     { return v.Type == TypeFloat }
func (v *Value) IsNumeric() bool   { return v.Type == TypeInt || v.Type == TypeFloat }
func (v *Value) IsString() bool    { return v.Type == TypeString }
func (v *Value) IsArray() bool     { return v.Type == TypeArray }
func (v *Value) IsObject() bool    { return v.Type == TypeObject }
func (v *Value) IsResource() bool  { return v.Type == TypeResource }
func (v *Value) IsReference() bool { return v.Type == TypeReference }
func (v *Value) IsClosure() bool   { return v.Type == TypeCallable && v.Data != nil }
func (v *Value) IsCallable() bool  { return v.Type == TypeCallable }
func (v *Value) IsGoroutine() bool { return v.Type == TypeGoroutine }
func (v *Value) IsWaitGroup() bool { return v.Type == TypeWaitGroup }

func (v *Value) IsNumericString() bool {
	if v.Type != TypeString {
		return false
	}
	s := strings.TrimSpace(v.str())
	if s == "" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Deref follows reference chains; every read/write site in the VM must call
// this before inspecting a Value that might be a reference cell's alias.
func (v *Value) Deref() *Value {
	if v.Type == TypeReference {
		return v.Data.(*Reference).Target.Deref()
	}
	return v
}

func (v *Value) str() string { return v.Data.(*sharedString).s }

// ToBool implements invariant 1 of spec.md §8 exactly.
func (v *Value) ToBool() bool {
	switch v.Type {
	case TypeNull, TypeAppendPlaceholder:
		return false
	case TypeBool:
		return v.Data.(bool)
	case TypeInt:
		return v.Data.(int64) != 0
	case TypeFloat:
		f := v.Data.(float64)
		return f != 0.0 && !isNaN(f)
	case TypeString:
		s := v.str()
		return s != "" && s != "0"
	case TypeArray:
		return v.Data.(*Array).Count() > 0
	case TypeObject:
		return true
	case TypeReference:
		return v.Deref().ToBool()
	default:
		return false
	}
}

func phpStringToInt(s string) int64 {
	if s == "" {
		return 0
	}
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	if i >= len(s) {
		return 0
	}
	sign := int64(1)
	if s[i] == '+' || s[i] == '-' {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}
	if i >= len(s) {
		return 0
	}
	var intPart int64
	inFraction := false
	for i < len(s) {
		ch := s[i]
		if ch >= '0' && ch <= '9' {
			digit := int64(ch - '0')
			if inFraction {
				// integer conversion truncates at the decimal point
			} else {
				if intPart > (9223372036854775807-digit)/10 {
					break
				}
				intPart = intPart*10 + digit
			}
		} else if ch == '.' && !inFraction {
			inFraction = true
		} else if ch == 'e' || ch == 'E' {
			break
		} else {
			break
		}
		i++
	}
	return sign * intPart
}

func phpStringToFloat(s string) float64 {
	if s == "" {
		return 0.0
	}
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	if i >= len(s) {
		return 0.0
	}
	sign := 1.0
	if s[i] == '+' || s[i] == '-' {
		if s[i] == '-' {
			sign = -1.0
		}
		i++
	}
	if i >= len(s) {
		return 0.0
	}
	start := i
	hasDecimal, hasExponent := false, false
	for i < len(s) {
		ch := s[i]
		if ch >= '0' && ch <= '9' {
		} else if ch == '.' && !hasDecimal && !hasExponent {
			hasDecimal = true
		} else if (ch == 'e' || ch == 'E') && !hasExponent && i > start {
			hasExponent = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		} else {
			break
		}
		i++
	}
	numericPart := s[start:i]
	if numericPart == "" {
		return 0.0
	}
	if f, err := strconv.ParseFloat(numericPart, 64); err == nil {
		return sign * f
	}
	return 0.0
}

func (v *Value) ToInt() int64 {
	switch v.Type {
	case TypeNull:
		return 0
	case TypeBool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	case TypeInt:
		return v.Data.(int64)
	case TypeFloat:
		return int64(v.Data.(float64))
	case TypeString:
		return phpStringToInt(v.str())
	case TypeArray:
		return int64(v.Data.(*Array).Count())
	case TypeReference:
		return v.Deref().ToInt()
	default:
		return 0
	}
}

func (v *Value) ToFloat() float64 {
	switch v.Type {
	case TypeNull:
		return 0.0
	case TypeBool:
		if v.Data.(bool) {
			return 1.0
		}
		return 0.0
	case TypeInt:
		return float64(v.Data.(int64))
	case TypeFloat:
		return v.Data.(float64)
	case TypeString:
		return phpStringToFloat(v.str())
	case TypeArray:
		return float64(v.Data.(*Array).Count())
	case TypeReference:
		return v.Deref().ToFloat()
	default:
		return 0.0
	}
}

func (v *Value) ToString() string {
	switch v.Type {
	case TypeNull:
		return ""
	case TypeBool:
		if v.Data.(bool) {
			return "1"
		}
		return ""
	case TypeInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case TypeString:
		return v.str()
	case TypeArray:
		return "Array"
	case TypeObject:
		return fmt.Sprintf("Object(%s)", v.Data.(*ObjectInstance).ClassName)
	case TypeReference:
		return v.Deref().ToString()
	case TypeGoroutine:
		g := v.Data.(*Goroutine)
		return fmt.Sprintf("Goroutine(#%d, %s)", g.ID, g.Status)
	case TypeWaitGroup:
		return "WaitGroup"
	default:
		return ""
	}
}

func (v *Value) ClosureGet() *Closure {
	if v.Type != TypeCallable {
		return nil
	}
	return v.Data.(*Closure)
}

// Comparisons

func (v *Value) Equal(other *Value) bool {
	v, other = v.Deref(), other.Deref()
	if v.Type == other.Type {
		return v.identical(other)
	}
	if v.IsNull() || other.IsNull() {
		return v.IsNull() && other.IsNull()
	}
	if v.IsBool() || other.IsBool() {
		return v.ToBool() == other.ToBool()
	}
	if v.IsNumeric() && other.IsNumeric() {
		if v.IsFloat() || other.IsFloat() {
			return v.ToFloat() == other.ToFloat()
		}
		return v.ToInt() == other.ToInt()
	}
	if (v.IsNumericString() && other.IsNumeric()) || (v.IsNumeric() && other.IsNumericString()) {
		return v.ToFloat() == other.ToFloat()
	}
	if v.IsString() && other.IsString() {
		return v.ToString() == other.ToString()
	}
	if v.IsArray() && other.IsArray() {
		return v.Data.(*Array).equal(other.Data.(*Array), false)
	}
	return false
}

func (v *Value) Identical(other *Value) bool {
	v, other = v.Deref(), other.Deref()
	if v.Type != other.Type {
		return false
	}
	return v.identical(other)
}

func (v *Value) identical(other *Value) bool {
	switch v.Type {
	case TypeNull:
		return true
	case TypeBool:
		return v.Data.(bool) == other.Data.(bool)
	case TypeInt:
		return v.Data.(int64) == other.Data.(int64)
	case TypeFloat:
		return v.Data.(float64) == other.Data.(float64)
	case TypeString:
		return v.str() == other.str()
	case TypeArray:
		return v.Data.(*Array).equal(other.Data.(*Array), true)
	case TypeObject:
		return v.Data == other.Data
	default:
		return false
	}
}

func (v *Value) Compare(other *Value) int {
	v, other = v.Deref(), other.Deref()
	if v.IsNull() && other.IsNull() {
		return 0
	}
	if v.IsNull() {
		return -1
	}
	if other.IsNull() {
		return 1
	}
	if v.IsNumeric() && other.IsNumeric() {
		if v.IsFloat() || other.IsFloat() {
			return cmpFloat(v.ToFloat(), other.ToFloat())
		}
		return cmpInt(v.ToInt(), other.ToInt())
	}
	return strings.Compare(v.ToString(), other.ToString())
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Arithmetic. Integer overflow on Add/Subtract/Multiply/Power promotes to
// float, matching spec.md §8's boundary behavior.

func (v *Value) Add(other *Value) *Value {
	if v.IsArray() && other.IsArray() {
		return NewArrayFromMap(v.Data.(*Array).union(other.Data.(*Array)))
	}
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		sum := a + b
		if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum > 0) {
			return NewFloat(float64(a) + float64(b))
		}
		return NewInt(sum)
	}
	return NewFloat(v.ToFloat() + other.ToFloat())
}

func (v *Value) Subtract(other *Value) *Value {
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		diff := a - b
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return NewFloat(float64(a) - float64(b))
		}
		return NewInt(diff)
	}
	return NewFloat(v.ToFloat() - other.ToFloat())
}

func (v *Value) Multiply(other *Value) *Value {
	if v.IsInt() && other.IsInt() {
		a, b := v.Data.(int64), other.Data.(int64)
		if a == 0 || b == 0 {
			return NewInt(0)
		}
		prod := a * b
		if prod/b != a {
			return NewFloat(float64(a) * float64(b))
		}
		return NewInt(prod)
	}
	return NewFloat(v.ToFloat() * other.ToFloat())
}

// Divide implements spec.md §8's division-by-zero boundary behavior: the
// caller (the DIV opcode) is responsible for emitting the accompanying
// warning and for the integer-operand "false" variant; Divide itself always
// returns the numeric IEEE-754 result (±Inf for float/0.0).
func (v *Value) Divide(other *Value) *Value {
	of := other.ToFloat()
	if of == 0.0 {
		return NewFloat(v.ToFloat() / of)
	}
	result := v.ToFloat() / of
	if v.IsInt() && other.IsInt() && result == float64(int64(result)) {
		return NewInt(int64(result))
	}
	return NewFloat(result)
}

// Modulo returns 0 for modulo-by-zero, matching the teacher's documented
// choice among the variants spec.md §8 leaves open.
func (v *Value) Modulo(other *Value) *Value {
	oi := other.ToInt()
	if oi == 0 {
		return NewInt(0)
	}
	return NewInt(v.ToInt() % oi)
}

func (v *Value) Power(other *Value) *Value {
	result := math.Pow(v.ToFloat(), other.ToFloat())
	if result == math.Trunc(result) && result >= -9223372036854775808 && result <= 9223372036854775807 {
		return NewInt(int64(result))
	}
	return NewFloat(result)
}

func (v *Value) Concat(other *Value) *Value {
	return NewString(v.ToString() + other.ToString())
}

func isNaN(f float64) bool { return f != f }

// TypeName/String/VarDump/PrintR — debug & host-visible rendering.

func (vt ValueType) String() string {
	switch vt {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeResource:
		return "resource"
	case TypeReference:
		return "reference"
	case TypeCallable:
		return "callable"
	case TypeGoroutine:
		return "goroutine"
	case TypeWaitGroup:
		return "waitgroup"
	default:
		return "unknown"
	}
}

func (v *Value) TypeName() string { return v.Type.String() }

func (v *Value) String() string {
	switch v.Type {
	case TypeNull:
		return "null"
	case TypeBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case TypeInt:
		return fmt.Sprintf("int(%d)", v.Data.(int64))
	case TypeFloat:
		return fmt.Sprintf("float(%g)", v.Data.(float64))
	case TypeString:
		return fmt.Sprintf("string(%q)", v.str())
	case TypeArray:
		return fmt.Sprintf("array[%d]", v.Data.(*Array).Count())
	case TypeObject:
		return fmt.Sprintf("object(%s)", v.Data.(*ObjectInstance).ClassName)
	case TypeReference:
		return fmt.Sprintf("&%s", v.Deref().String())
	default:
		return "unknown"
	}
}

func (v *Value) VarDump() string {
	var b strings.Builder
	visited := make(map[*Array]bool)
	v.appendVarDump(&b, 0, visited)
	return b.String()
}

func (v *Value) PrintR() string {
	var b strings.Builder
	visited := make(map[*Array]bool)
	v.appendPrintR(&b, 0, visited)
	return b.String()
}

func (v *Value) appendVarDump(b *strings.Builder, indent int, visited map[*Array]bool) {
	ind := strings.Repeat(" ", indent)
	switch v.Type {
	case TypeNull:
		b.WriteString(ind + "NULL\n")
	case TypeBool:
		if v.Data.(bool) {
			b.WriteString(ind + "bool(true)\n")
		} else {
			b.WriteString(ind + "bool(false)\n")
		}
	case TypeInt:
		fmt.Fprintf(b, "%sint(%d)\n", ind, v.Data.(int64))
	case TypeFloat:
		fmt.Fprintf(b, "%sfloat(%s)\n", ind, strconv.FormatFloat(v.Data.(float64), 'g', -1, 64))
	case TypeString:
		s := v.str()
		fmt.Fprintf(b, "%sstring(%d) %q\n", ind, len(s), s)
	case TypeArray:
		v.appendArrayVarDump(b, indent, visited)
	case TypeObject:
		v.appendObjectVarDump(b, indent, visited)
	case TypeReference:
		v.Deref().appendVarDump(b, indent, visited)
	case TypeCallable:
		b.WriteString(ind + "object(Closure)#1 (0) {}\n")
	case TypeResource:
		b.WriteString(ind + "resource(0) of type (unknown)\n")
	default:
		b.WriteString(ind + v.Type.String() + "\n")
	}
}

func (v *Value) appendArrayVarDump(b *strings.Builder, indent int, visited map[*Array]bool) {
	m := v.Data.(*Array)
	ind := strings.Repeat(" ", indent)
	if visited[m] {
		b.WriteString(ind + "*RECURSION*\n")
		return
	}
	visited[m] = true
	defer delete(visited, m)

	fmt.Fprintf(b, "%sarray(%d) {\n", ind, m.Count())
	m.Each(func(key interface{}, val *Value) {
		fmt.Fprintf(b, "%s  [%s]=>\n", ind, dumpKey(key))
		if val == nil {
			b.WriteString(strings.Repeat(" ", indent+2) + "NULL\n")
			return
		}
		val.appendVarDump(b, indent+2, visited)
	})
	b.WriteString(ind + "}\n")
}

func (v *Value) appendObjectVarDump(b *strings.Builder, indent int, visited map[*Array]bool) {
	obj := v.Data.(*ObjectInstance)
	ind := strings.Repeat(" ", indent)
	names := obj.PropertyNames()
	fmt.Fprintf(b, "%sobject(%s)#%d (%d) {\n", ind, obj.ClassName, obj.InstanceID, len(names))
	for _, name := range names {
		fmt.Fprintf(b, "%s  [\"%s\"]=>\n", ind, name)
		val, _ := obj.GetProperty(name)
		if val == nil {
			b.WriteString(strings.Repeat(" ", indent+2) + "NULL\n")
		} else {
			val.appendVarDump(b, indent+2, visited)
		}
	}
	b.WriteString(ind + "}\n")
}

func (v *Value) appendPrintR(b *strings.Builder, indent int, visited map[*Array]bool) {
	switch v.Type {
	case TypeNull:
	case TypeBool:
		if v.Data.(bool) {
			b.WriteString("1")
		}
	case TypeInt:
		fmt.Fprintf(b, "%d", v.Data.(int64))
	case TypeFloat:
		b.WriteString(formatFloatForPrintR(v.Data.(float64)))
	case TypeString:
		b.WriteString(v.str())
	case TypeArray:
		v.appendArrayPrintR(b, indent, visited)
	case TypeObject:
		v.appendObjectPrintR(b, indent, visited)
	case TypeReference:
		v.Deref().appendPrintR(b, indent, visited)
	case TypeResource:
		b.WriteString("Resource id #5")
	case TypeCallable:
		b.WriteString("Closure Object\n(\n)\n")
	default:
		b.WriteString(v.Type.String())
	}
}

func (v *Value) appendArrayPrintR(b *strings.Builder, indent int, visited map[*Array]bool) {
	m := v.Data.(*Array)
	if visited[m] {
		b.WriteString("Array\n *RECURSION*")
		return
	}
	b.WriteString("Array\n")
	ind := strings.Repeat(" ", indent*4)
	b.WriteString(ind + "(\n")
	visited[m] = true
	defer delete(visited, m)

	nextInd := strings.Repeat(" ", (indent+1)*4)
	m.Each(func(key interface{}, val *Value) {
		fmt.Fprintf(b, "%s[%s] => ", nextInd, printRKey(key))
		if val == nil {
			b.WriteString("\n")
			return
		}
		if val.Type == TypeArray || val.Type == TypeObject {
			val.appendPrintR(b, indent+2, visited)
			b.WriteString("\n")
		} else {
			val.appendPrintR(b, 0, visited)
			b.WriteString("\n")
		}
	})
	b.WriteString(ind + ")\n")
}

func (v *Value) appendObjectPrintR(b *strings.Builder, indent int, visited map[*Array]bool) {
	obj := v.Data.(*ObjectInstance)
	fmt.Fprintf(b, "%s Object\n", obj.ClassName)
	ind := strings.Repeat(" ", indent*4)
	b.WriteString(ind + "(\n")
	nextInd := strings.Repeat(" ", (indent+1)*4)
	for _, name := range obj.PropertyNames() {
		val, _ := obj.GetProperty(name)
		fmt.Fprintf(b, "%s[%s] => ", nextInd, name)
		if val == nil {
			b.WriteString("\n")
		} else if val.Type == TypeArray || val.Type == TypeObject {
			val.appendPrintR(b, indent+2, visited)
		} else {
			val.appendPrintR(b, 0, visited)
			b.WriteString("\n")
		}
	}
	b.WriteString(ind + ")\n")
}

func formatFloatForPrintR(f float64) string {
	if f == 0 && math.Signbit(f) {
		return "-0"
	}
	absVal := math.Abs(f)
	if absVal != 0 && absVal < 1e-4 {
		s := strconv.FormatFloat(f, 'E', -1, 64)
		if !strings.Contains(s, ".") {
			parts := strings.Split(s, "E")
			if len(parts) == 2 {
				s = parts[0] + ".0E" + parts[1]
			}
		}
		if idx := strings.Index(s, "E"); idx != -1 {
			exp := s[idx+1:]
			sign := ""
			if exp[0] == '+' || exp[0] == '-' {
				sign, exp = string(exp[0]), exp[1:]
			}
			exp = strings.TrimLeft(exp, "0")
			if exp == "" {
				exp = "0"
			}
			s = s[:idx+1] + sign + exp
		}
		return s
	}
	if absVal >= 1e10 && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WaitGroup methods, unchanged in behavior from the teacher's implementation.

func (v *Value) WaitGroupAdd(delta int64) error {
	if v.Type != TypeWaitGroup {
		return fmt.Errorf("WaitGroup.Add() called on non-WaitGroup value")
	}
	wg := v.Data.(*WaitGroup)
	wg.mu.Lock()
	defer wg.mu.Unlock()
	if wg.done {
		return fmt.Errorf("WaitGroup is already done")
	}
	wg.counter += delta
	if wg.counter < 0 {
		return fmt.Errorf("WaitGroup counter cannot be negative")
	}
	if wg.counter == 0 && wg.waitChan != nil {
		close(wg.waitChan)
		wg.waitChan = nil
		wg.done = true
	}
	return nil
}

func (v *Value) WaitGroupDone() error { return v.WaitGroupAdd(-1) }

func (v *Value) WaitGroupWait() error {
	if v.Type != TypeWaitGroup {
		return fmt.Errorf("WaitGroup.Wait() called on non-WaitGroup value")
	}
	wg := v.Data.(*WaitGroup)
	wg.mu.Lock()
	if wg.done || wg.counter == 0 {
		wg.mu.Unlock()
		return nil
	}
	waitChan := wg.waitChan
	wg.mu.Unlock()
	if waitChan != nil {
		<-waitChan
	}
	return nil
}
