package datafix

import "golang.org/x/exp/constraints"

// ListOf lifts an element codec to a codec over a slice of elements,
// preserving order. Encode pushes Array(i) for each element it descends
// into; decode does the same, so any element error carries that index in
// the context (spec.md §4.3.2).
func ListOf[V, T any](inner Codec[V, T]) Codec[V, []T] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value []T) (V, DataError) {
			out := make([]V, len(value))
			for i, elem := range value {
				ctx.PushArray(i)
				encoded, err := inner.Encode(ops, ctx, elem)
				ctx.Pop()
				if err != nil {
					var zero V
					return zero, err
				}
				out[i] = encoded
			}
			return ops.CreateList(out), nil
		},
		func(ops Ops[V], ctx *Context, tree V) ([]T, DataError) {
			elems, err := ops.GetList(tree)
			if err != nil {
				return nil, err
			}
			out := make([]T, len(elems))
			for i, elem := range elems {
				ctx.PushArray(i)
				decoded, err := inner.Decode(ops, ctx, elem)
				ctx.Pop()
				if err != nil {
					return nil, err
				}
				out[i] = decoded
			}
			return out, nil
		},
	)
}

// XMap derives a Codec[V,U] from a Codec[V,T] via a total, infallible pair
// of conversion functions. Callers are responsible for the invariant
// g(f(x)) = x over the source domain (spec.md §3).
func XMap[V, T, U any](inner Codec[V, T], f func(T) U, g func(U) T) Codec[V, U] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value U) (V, DataError) {
			return inner.Encode(ops, ctx, g(value))
		},
		func(ops Ops[V], ctx *Context, tree V) (U, DataError) {
			t, err := inner.Decode(ops, ctx, tree)
			if err != nil {
				var zero U
				return zero, err
			}
			return f(t), nil
		},
	)
}

// FlatXMap is XMap's fallible counterpart: either conversion direction
// may fail.
func FlatXMap[V, T, U any](inner Codec[V, T], f func(T) (U, DataError), g func(U) (T, DataError)) Codec[V, U] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value U) (V, DataError) {
			t, err := g(value)
			if err != nil {
				var zero V
				return zero, err
			}
			return inner.Encode(ops, ctx, t)
		},
		func(ops Ops[V], ctx *Context, tree V) (U, DataError) {
			t, err := inner.Decode(ops, ctx, tree)
			if err != nil {
				var zero U
				return zero, err
			}
			return f(t)
		},
	)
}

// Pair encodes/decodes a map {left: L, right: R}. Key order is fixed on
// encode; decode requires both keys (spec.md §4.3.2).
func Pair[V, L, R any](left Codec[V, L], right Codec[V, R]) Codec[V, PairValue[L, R]] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value PairValue[L, R]) (V, DataError) {
			ctx.PushField("left")
			l, err := left.Encode(ops, ctx, value.Left)
			ctx.Pop()
			if err != nil {
				var zero V
				return zero, err
			}
			ctx.PushField("right")
			r, err := right.Encode(ops, ctx, value.Right)
			ctx.Pop()
			if err != nil {
				var zero V
				return zero, err
			}
			return ops.CreateMap([]MapEntry[V]{{Key: "left", Value: l}, {Key: "right", Value: r}}), nil
		},
		func(ops Ops[V], ctx *Context, tree V) (PairValue[L, R], DataError) {
			entries, err := ops.GetMap(tree)
			if err != nil {
				return PairValue[L, R]{}, err
			}
			m := make(map[string]V, len(entries))
			for _, e := range entries {
				m[e.Key] = e.Value
			}
			lv, ok := m["left"]
			if !ok {
				return PairValue[L, R]{}, &KeyNotFoundError{Key: "left"}
			}
			rv, ok := m["right"]
			if !ok {
				return PairValue[L, R]{}, &KeyNotFoundError{Key: "right"}
			}
			ctx.PushField("left")
			l, err := left.Decode(ops, ctx, lv)
			ctx.Pop()
			if err != nil {
				return PairValue[L, R]{}, err
			}
			ctx.PushField("right")
			r, err := right.Decode(ops, ctx, rv)
			ctx.Pop()
			if err != nil {
				return PairValue[L, R]{}, err
			}
			return PairValue[L, R]{Left: l, Right: r}, nil
		},
	)
}

// PairValue is the product type produced/consumed by Pair.
type PairValue[L, R any] struct {
	Left  L
	Right R
}

// Bounded rejects values outside the given half-open interval [min, max)
// in both directions, failing Custom("value must be in bounds…").
func Bounded[V any, T constraints.Ordered](inner Codec[V, T], min, max T) Codec[V, T] {
	check := func(v T) DataError {
		if v < min || v >= max {
			return Custom("value must be in bounds [%v, %v), got %v", min, max, v)
		}
		return nil
	}
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value T) (V, DataError) {
			if err := check(value); err != nil {
				var zero V
				return zero, err
			}
			return inner.Encode(ops, ctx, value)
		},
		func(ops Ops[V], ctx *Context, tree V) (T, DataError) {
			v, err := inner.Decode(ops, ctx, tree)
			if err != nil {
				return v, err
			}
			if err := check(v); err != nil {
				var zero T
				return zero, err
			}
			return v, nil
		},
	)
}

// OrElse is a decode-only fallback: when decode fails, it invokes
// defaultFn and returns success instead of propagating the error.
func OrElse[V, T any](inner Codec[V, T], defaultFn func() T) Codec[V, T] {
	return fromFuncs(
		inner.Encode,
		func(ops Ops[V], ctx *Context, tree V) (T, DataError) {
			v, err := inner.Decode(ops, ctx, tree)
			if err != nil {
				return defaultFn(), nil
			}
			return v, nil
		},
	)
}

// TryElse attempts encode/decode with the primary codec; on either
// failure it restores the context to its pre-attempt snapshot and
// re-attempts with the fallback codec, so a recovered value yields a
// clean trace (spec.md §4.2).
func TryElse[V, T any](primary, fallback Codec[V, T]) Codec[V, T] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value T) (V, DataError) {
			ctx.Save()
			tree, err := primary.Encode(ops, ctx, value)
			if err == nil {
				ctx.PopSave()
				return tree, nil
			}
			ctx.LoadSave()
			tree, err = fallback.Encode(ops, ctx, value)
			ctx.PopSave()
			return tree, err
		},
		func(ops Ops[V], ctx *Context, tree V) (T, DataError) {
			ctx.Save()
			value, err := primary.Decode(ops, ctx, tree)
			if err == nil {
				ctx.PopSave()
				return value, nil
			}
			ctx.LoadSave()
			value, err = fallback.Decode(ops, ctx, tree)
			ctx.PopSave()
			return value, err
		},
	)
}

// Either is the sum-type codec: encode branches on the tag carried by
// EitherValue; decode tries Left then Right.
type EitherValue[A, B any] struct {
	IsLeft bool
	Left   A
	Right  B
}

func LeftValue[A, B any](a A) EitherValue[A, B]  { return EitherValue[A, B]{IsLeft: true, Left: a} }
func RightValue[A, B any](b B) EitherValue[A, B] { return EitherValue[A, B]{IsLeft: false, Right: b} }

func Either[V, A, B any](left Codec[V, A], right Codec[V, B]) Codec[V, EitherValue[A, B]] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value EitherValue[A, B]) (V, DataError) {
			if value.IsLeft {
				return left.Encode(ops, ctx, value.Left)
			}
			return right.Encode(ops, ctx, value.Right)
		},
		func(ops Ops[V], ctx *Context, tree V) (EitherValue[A, B], DataError) {
			ctx.Save()
			a, err := left.Decode(ops, ctx, tree)
			if err == nil {
				ctx.PopSave()
				return LeftValue[A, B](a), nil
			}
			ctx.LoadSave()
			b, err := right.Decode(ops, ctx, tree)
			ctx.PopSave()
			if err != nil {
				return EitherValue[A, B]{}, err
			}
			return RightValue[A, B](b), nil
		},
	)
}

// Dispatch picks the concrete codec from the value itself on encode
// (byType) or from the tree's shape on decode (byTree); used for tagged
// unions whose discriminator is inferred from content rather than an
// explicit tag field (spec.md §4.3.2, §9).
func Dispatch[V, T any](byType func(T) Codec[V, T], byTree func(Ops[V], V) (Codec[V, T], DataError)) Codec[V, T] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value T) (V, DataError) {
			return byType(value).Encode(ops, ctx, value)
		},
		func(ops Ops[V], ctx *Context, tree V) (T, DataError) {
			codec, err := byTree(ops, tree)
			if err != nil {
				var zero T
				return zero, err
			}
			return codec.Decode(ops, ctx, tree)
		},
	)
}

// Constant encodes a fixed literal and, on decode, fails unless the
// decoded value equals literal.
func Constant[V, T comparable](inner Codec[V, T], literal T) Codec[V, T] {
	return fromFuncs(
		func(ops Ops[V], ctx *Context, value T) (V, DataError) {
			return inner.Encode(ops, ctx, literal)
		},
		func(ops Ops[V], ctx *Context, tree V) (T, DataError) {
			v, err := inner.Decode(ops, ctx, tree)
			if err != nil {
				var zero T
				return zero, err
			}
			if v != literal {
				var zero T
				return zero, Custom("expected constant value %v, got %v", literal, v)
			}
			return v, nil
		},
	)
}
