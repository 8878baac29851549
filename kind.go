package datafix

// Kind is a bitmask tag for the scalar/compound shapes an Ops tree value
// can take, for dispatch-style decisions (e.g. inside a byTree function
// passed to Dispatch). Modeled on the bitmask `kind` type the teacher
// uses for its own value-shape dispatch.
type Kind uint16

const (
	DoubleKind Kind = 1 << iota
	FloatKind
	LongKind
	IntKind
	ShortKind
	ByteKind
	StringKind
	BooleanKind
	UnitKind
	ListKind
	MapKind
)

// NumberKind is the union of every numeric scalar kind.
const NumberKind = DoubleKind | FloatKind | LongKind | IntKind | ShortKind | ByteKind

// ScalarKind is the union of every non-compound kind.
const ScalarKind = NumberKind | StringKind | BooleanKind | UnitKind

func (k Kind) Has(other Kind) bool { return k&other != 0 }

// KindOf probes an Ops tree's shape by trying each Get* in turn, for
// Dispatch byTree branches that want to check the shape before
// committing to a particular Get call. Unit is checked ahead of Map
// since a backend's "empty object" encoding for Unit typically also
// satisfies GetMap. Numeric probes run double through byte; a backend
// that stores every number the same way (ops/dynamic's float64, for
// instance) reports the first one that succeeds rather than the kind the
// value was originally created with. Returns 0 if nothing matches.
func KindOf[V any](ops Ops[V], tree V) Kind {
	if err := ops.GetUnit(tree); err == nil {
		return UnitKind
	}
	if _, err := ops.GetMap(tree); err == nil {
		return MapKind
	}
	if _, err := ops.GetList(tree); err == nil {
		return ListKind
	}
	if _, err := ops.GetString(tree); err == nil {
		return StringKind
	}
	if _, err := ops.GetBoolean(tree); err == nil {
		return BooleanKind
	}
	if _, err := ops.GetDouble(tree); err == nil {
		return DoubleKind
	}
	if _, err := ops.GetFloat(tree); err == nil {
		return FloatKind
	}
	if _, err := ops.GetLong(tree); err == nil {
		return LongKind
	}
	if _, err := ops.GetInt(tree); err == nil {
		return IntKind
	}
	if _, err := ops.GetShort(tree); err == nil {
		return ShortKind
	}
	if _, err := ops.GetByte(tree); err == nil {
		return ByteKind
	}
	return 0
}

func (k Kind) String() string {
	names := map[Kind]string{
		DoubleKind: "double", FloatKind: "float", LongKind: "long",
		IntKind: "int", ShortKind: "short", ByteKind: "byte",
		StringKind: "string", BooleanKind: "boolean", UnitKind: "unit",
		ListKind: "list", MapKind: "map",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}
