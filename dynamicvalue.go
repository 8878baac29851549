package datafix

// DynamicValue binds a mutable tree reference with the Ops that know how
// to inspect and rebuild it. It is the type passed to user callbacks in
// rewrite rules: a deliberately minimal convenience wrapper, not a data
// type of its own (spec.md §4.4).
type DynamicValue[V any] struct {
	ops   Ops[V]
	value V
}

// NewDynamicValue binds value to ops.
func NewDynamicValue[V any](ops Ops[V], value V) *DynamicValue[V] {
	return &DynamicValue[V]{ops: ops, value: value}
}

// Ops returns the bound operation bundle.
func (d *DynamicValue[V]) Ops() Ops[V] { return d.ops }

// Value returns the bound tree value.
func (d *DynamicValue[V]) Value() V { return d.value }

// Set replaces the bound tree value, for callbacks that build a
// replacement node via Create* and want to swap it in.
func (d *DynamicValue[V]) Set(value V) { d.value = value }

func (d *DynamicValue[V]) AsDouble() (float64, DataError)  { return d.ops.GetDouble(d.value) }
func (d *DynamicValue[V]) AsFloat() (float32, DataError)   { return d.ops.GetFloat(d.value) }
func (d *DynamicValue[V]) AsLong() (int64, DataError)      { return d.ops.GetLong(d.value) }
func (d *DynamicValue[V]) AsInt() (int32, DataError)       { return d.ops.GetInt(d.value) }
func (d *DynamicValue[V]) AsShort() (int16, DataError)     { return d.ops.GetShort(d.value) }
func (d *DynamicValue[V]) AsByte() (int8, DataError)       { return d.ops.GetByte(d.value) }
func (d *DynamicValue[V]) AsString() (string, DataError)   { return d.ops.GetString(d.value) }
func (d *DynamicValue[V]) AsBoolean() (bool, DataError)    { return d.ops.GetBoolean(d.value) }
func (d *DynamicValue[V]) AsUnit() DataError               { return d.ops.GetUnit(d.value) }
func (d *DynamicValue[V]) AsList() ([]V, DataError)        { return d.ops.GetList(d.value) }
func (d *DynamicValue[V]) AsMap() ([]MapEntry[V], DataError) { return d.ops.GetMap(d.value) }

// MutateMap applies fn to a mutable map view over the bound value, then
// rebinds the bound value to the view's post-mutation state.
func (d *DynamicValue[V]) MutateMap(fn func(MapView[V])) DataError {
	view, err := d.ops.GetMapMut(d.value)
	if err != nil {
		return err
	}
	fn(view)
	d.value = view.Materialize()
	return nil
}

// CreateDouble, and the other Create* passthroughs, let callbacks build
// new nodes without reaching back into the Ops bundle separately.
func (d *DynamicValue[V]) CreateDouble(v float64) V  { return d.ops.CreateDouble(v) }
func (d *DynamicValue[V]) CreateString(v string) V   { return d.ops.CreateString(v) }
func (d *DynamicValue[V]) CreateBoolean(v bool) V    { return d.ops.CreateBoolean(v) }
func (d *DynamicValue[V]) CreateInt(v int32) V       { return d.ops.CreateInt(v) }
func (d *DynamicValue[V]) CreateLong(v int64) V      { return d.ops.CreateLong(v) }
func (d *DynamicValue[V]) CreateUnit() V             { return d.ops.CreateUnit() }
func (d *DynamicValue[V]) CreateList(vs []V) V       { return d.ops.CreateList(vs) }
func (d *DynamicValue[V]) CreateMap(es []MapEntry[V]) V { return d.ops.CreateMap(es) }
