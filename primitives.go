package datafix

// Double is the default codec for float64, delegating straight to the
// matching Ops constructor/inspector (spec.md §4.3.1).
func Double[V any]() Codec[V, float64] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value float64) (V, DataError) {
			return ops.CreateDouble(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (float64, DataError) {
			return ops.GetDouble(tree)
		},
	)
}

// Float is the default codec for float32.
func Float[V any]() Codec[V, float32] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value float32) (V, DataError) {
			return ops.CreateFloat(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (float32, DataError) {
			return ops.GetFloat(tree)
		},
	)
}

// Long is the default codec for int64.
func Long[V any]() Codec[V, int64] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value int64) (V, DataError) {
			return ops.CreateLong(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (int64, DataError) {
			return ops.GetLong(tree)
		},
	)
}

// Int is the default codec for int32.
func Int[V any]() Codec[V, int32] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value int32) (V, DataError) {
			return ops.CreateInt(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (int32, DataError) {
			return ops.GetInt(tree)
		},
	)
}

// Short is the default codec for int16.
func Short[V any]() Codec[V, int16] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value int16) (V, DataError) {
			return ops.CreateShort(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (int16, DataError) {
			return ops.GetShort(tree)
		},
	)
}

// Byte is the default codec for int8.
func Byte[V any]() Codec[V, int8] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value int8) (V, DataError) {
			return ops.CreateByte(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (int8, DataError) {
			return ops.GetByte(tree)
		},
	)
}

// String is the default codec for string.
func String[V any]() Codec[V, string] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value string) (V, DataError) {
			return ops.CreateString(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (string, DataError) {
			return ops.GetString(tree)
		},
	)
}

// Bool is the default codec for bool.
func Bool[V any]() Codec[V, bool] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value bool) (V, DataError) {
			return ops.CreateBoolean(value), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (bool, DataError) {
			return ops.GetBoolean(tree)
		},
	)
}

// Unit is the codec for the zero-information type struct{}, mapping to
// and from Ops.CreateUnit/GetUnit (an empty object for the JSON-shaped
// backend, per spec.md §6.1).
func Unit[V any]() Codec[V, struct{}] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value struct{}) (V, DataError) {
			return ops.CreateUnit(), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (struct{}, DataError) {
			if err := ops.GetUnit(tree); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, nil
		},
	)
}

// Uint64 is derived from Long by xmap with a wrap-as conversion, lossy at
// the type boundary for values outside the int64 range, per spec.md
// §4.3.1's "unsigned codecs are derived... by xmap with wrap-as
// conversions" rule.
func Uint64[V any]() Codec[V, uint64] {
	return XMap(Long[V](),
		func(v int64) uint64 { return uint64(v) },
		func(v uint64) int64 { return int64(v) },
	)
}

// Uint32 is derived from Int the same way Uint64 is derived from Long.
func Uint32[V any]() Codec[V, uint32] {
	return XMap(Int[V](),
		func(v int32) uint32 { return uint32(v) },
		func(v uint32) int32 { return int32(v) },
	)
}

// Uint16 is derived from Short the same way Uint64 is derived from Long.
func Uint16[V any]() Codec[V, uint16] {
	return XMap(Short[V](),
		func(v int16) uint16 { return uint16(v) },
		func(v uint16) int16 { return int16(v) },
	)
}

// Uint8 is derived from Byte the same way Uint64 is derived from Long.
func Uint8[V any]() Codec[V, uint8] {
	return XMap(Byte[V](),
		func(v int8) uint8 { return uint8(v) },
		func(v uint8) int8 { return int8(v) },
	)
}
