package datafix

// Codec is a pure, immutable pair of encode/decode functions between an
// application type T and a tree value V, both parameterized over an Ops
// bundle. Codecs carry no state of their own beyond their construction
// arguments and are safe to share across goroutines once built (spec.md
// §5).
//
// Implementations must push an appropriate TracePoint onto ctx before
// descending into a sub-value and pop it on every exit path, including
// error returns.
type Codec[V, T any] interface {
	Encode(ops Ops[V], ctx *Context, value T) (V, DataError)
	Decode(ops Ops[V], ctx *Context, tree V) (T, DataError)
}

// codecFuncs adapts a pair of encode/decode functions into a Codec,
// avoiding a named struct type per combinator.
type codecFuncs[V, T any] struct {
	encode func(ops Ops[V], ctx *Context, value T) (V, DataError)
	decode func(ops Ops[V], ctx *Context, tree V) (T, DataError)
}

func (c *codecFuncs[V, T]) Encode(ops Ops[V], ctx *Context, value T) (V, DataError) {
	return c.encode(ops, ctx, value)
}

func (c *codecFuncs[V, T]) Decode(ops Ops[V], ctx *Context, tree V) (T, DataError) {
	return c.decode(ops, ctx, tree)
}

// fromFuncs builds a Codec from raw encode/decode functions.
func fromFuncs[V, T any](
	encode func(ops Ops[V], ctx *Context, value T) (V, DataError),
	decode func(ops Ops[V], ctx *Context, tree V) (T, DataError),
) Codec[V, T] {
	return &codecFuncs[V, T]{encode: encode, decode: decode}
}

// EncodeStart is the public entry point for encoding a value: it opens a
// fresh Context rooted at Root and pairs any resulting DataError with the
// Context snapshot active at the point of failure.
func EncodeStart[V, T any](codec Codec[V, T], ops Ops[V], value T) (V, error) {
	ctx := NewContext()
	tree, err := codec.Encode(ops, ctx, value)
	if err != nil {
		return tree, wrapBoundary("encode", newCodecError(err, ctx))
	}
	return tree, nil
}

// DecodeStart is the public entry point for decoding a tree value: it
// opens a fresh Context rooted at Root and pairs any resulting DataError
// with the Context snapshot active at the point of failure.
func DecodeStart[V, T any](codec Codec[V, T], ops Ops[V], tree V) (T, error) {
	ctx := NewContext()
	value, err := codec.Decode(ops, ctx, tree)
	if err != nil {
		return value, wrapBoundary("decode", newCodecError(err, ctx))
	}
	return value, nil
}
