package datafix

// ListView is a mutable view into a list-shaped tree value, returned by
// Ops.GetListMut. It borrows the underlying value for the duration of the
// view.
//
// Some representations (a length-prefixed byte encoding, for instance)
// cannot express "mutate in place" through the borrowed V itself, since
// growing the list means producing a new encoding. Callers must therefore
// take the tree to use next from Materialize rather than assume the V
// passed into GetListMut was mutated in place.
type ListView[V any] interface {
	Append(value V)
	Get(index int) (V, DataError)
	Len() int
	Each(func(index int, value V))
	Materialize() V
}

// MapEntry is one key/value pair yielded while iterating an owned map
// view.
type MapEntry[V any] struct {
	Key   string
	Value V
}

// MapView is a mutable view into a map-shaped tree value, returned by
// Ops.GetMapMut. Set inserts or overwrites; Remove deletes and returns the
// prior value. As with ListView, Materialize is the only portable way to
// read back the tree after mutating through the view — some backends
// cannot mutate the original V in place.
type MapView[V any] interface {
	Get(name string) (V, DataError)
	Set(name string, value V)
	Remove(name string) (V, DataError)
	Keys() []string
	Materialize() V
}

// OwnedMapView is the destructive counterpart of MapView returned by
// Ops.TakeMap: it works over its own copy of the source entries, so fields
// can be taken out one at a time without altering the original tree, the shape
// record decode needs to pull each declared field while still being able
// to enumerate whatever keys are left over for the unknown-key check.
type OwnedMapView[V any] interface {
	Take(name string) (V, DataError)
	Entries() []MapEntry[V]
}

// Ops is the operation bundle that lets the same Codec drive multiple
// concrete tree representations (spec.md §4.1). Implementations must be
// cheap to copy (ideally zero-sized) and must not carry observable state
// across copies.
type Ops[V any] interface {
	CreateDouble(value float64) V
	CreateFloat(value float32) V
	CreateLong(value int64) V
	CreateInt(value int32) V
	CreateShort(value int16) V
	CreateByte(value int8) V
	CreateString(value string) V
	CreateBoolean(value bool) V
	CreateUnit() V
	CreateList(values []V) V
	CreateMap(entries []MapEntry[V]) V

	GetDouble(value V) (float64, DataError)
	GetFloat(value V) (float32, DataError)
	GetLong(value V) (int64, DataError)
	GetInt(value V) (int32, DataError)
	GetShort(value V) (int16, DataError)
	GetByte(value V) (int8, DataError)
	GetString(value V) (string, DataError)
	GetBoolean(value V) (bool, DataError)
	GetUnit(value V) DataError
	GetList(value V) ([]V, DataError)
	GetMap(value V) ([]MapEntry[V], DataError)

	GetListMut(value V) (ListView[V], DataError)
	GetMapMut(value V) (MapView[V], DataError)
	TakeMap(value V) (OwnedMapView[V], DataError)

	// CreateMapSpecial builds a map from entries that may be individually
	// absent (optional record fields) or erroring; see
	// CreateMapSpecialDefault for the shared "drop nil, fail on first
	// error" semantics every backend delegates to.
	CreateMapSpecial(entries []OptionalEntry[V]) (V, DataError)
}

// OptionalEntry is one candidate map entry passed to CreateMapSpecial: a
// present-or-absent key/value pair that may itself carry an encode error.
type OptionalEntry[V any] struct {
	Present bool
	Key     string
	Value   V
	Err     DataError
}

// CreateMapSpecialDefault implements the "drop absent entries, fail on
// the first error, otherwise build the map" contract spec.md §4.1
// describes for create_map_special. Every backend's CreateMapSpecial
// delegates here instead of duplicating the logic.
func CreateMapSpecialDefault[V any](ops Ops[V], entries []OptionalEntry[V]) (V, DataError) {
	var present []MapEntry[V]
	for _, e := range entries {
		if e.Err != nil {
			var zero V
			return zero, e.Err
		}
		if !e.Present {
			continue
		}
		present = append(present, MapEntry[V]{Key: e.Key, Value: e.Value})
	}
	return ops.CreateMap(present), nil
}
