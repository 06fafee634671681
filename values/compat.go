package values

// The methods in this file give *Value the Array/Object accessor shape the
// rest of the tree (vm, compiler, runtime) calls against.

// Array returns the backing Array, or nil if v is not an array.
func (v *Value) Array() *Array {
	if v.Type != TypeArray {
		return nil
	}
	return v.Data.(*Array)
}

// Object returns the backing Object, or nil if v is not an object.
func (v *Value) Object() *Object {
	if v.Type != TypeObject {
		return nil
	}
	return v.Data.(*Object)
}

func (v *Value) ArrayGet(key *Value) *Value {
	arr := v.Array()
	if arr == nil {
		return NewNull()
	}
	if val, ok := arr.Get(convertArrayKey(key)); ok {
		return val
	}
	return NewNull()
}

// ArraySet mirrors the `[]=` / FetchDim-write opcode: a nil or null key
// means append (uses and advances NextIndex), otherwise insert at the
// normalized key.
func (v *Value) ArraySet(key *Value, value *Value) {
	arr := v.Array()
	if arr == nil {
		return
	}
	if key == nil || key.IsNull() {
		arr.Append(value)
		return
	}
	arr.Insert(convertArrayKey(key), value)
}

func (v *Value) ArrayUnset(key *Value) {
	arr := v.Array()
	if arr == nil {
		return
	}
	arr.Delete(convertArrayKey(key))
}

func (v *Value) ArrayCount() int {
	arr := v.Array()
	if arr == nil {
		return 0
	}
	return arr.Count()
}

func (v *Value) ObjectGet(property string) *Value {
	obj := v.Object()
	if obj == nil {
		return NewNull()
	}
	if val, ok := obj.GetProperty(property); ok {
		return val
	}
	return NewNull()
}

// ObjectSet sets a property, marking it dynamic (no matching declaration)
// unless it was already known.
func (v *Value) ObjectSet(property string, value *Value) {
	obj := v.Object()
	if obj == nil {
		return
	}
	dynamic := !obj.HasProperty(property)
	obj.SetProperty(property, value, dynamic)
}

func (v *Value) ObjectUnset(property string) {
	obj := v.Object()
	if obj == nil {
		return
	}
	obj.UnsetProperty(property)
}
