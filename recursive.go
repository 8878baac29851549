package datafix

import "sync/atomic"

// Boxed is indirection for recursive types: it defers to inner on every
// call without adding any behavior of its own. In Rust this exists to
// break an infinitely-sized type through an allocation; Go struct fields
// of a generic codec type are already indirect through the interface
// value, so Boxed here exists purely to give call sites the same
// vocabulary spec.md §4.3.2 uses (`boxed`); it returns inner itself.
func Boxed[V, T any](inner Codec[V, T]) Codec[V, T] {
	return inner
}

// Arc is a reference-counted shareable handle in the original; Go's
// garbage collector already gives every Codec value sharing-safe,
// refcount-free lifetime once constructed, so Arc here is a thin identity
// wrapper kept only so the dynamic/arc/recursive call shape from spec.md
// §4.3.2 has a direct Go counterpart (see DESIGN.md Open Questions).
func Arc[V, T any](inner Codec[V, T]) Codec[V, T] {
	return inner
}

// DynamicCodec is a type-erased handle to a Codec[V,T] whose target may
// be installed after the handle itself starts being passed around. It
// backs Recursive's placeholder step and spec.md §4.3.2's `dynamic`
// adapter.
//
// Calling Encode/Decode before Install is a programmer error and is
// fatal, per spec.md §4.3.2's "no encode/decode may use the placeholder
// before step 3" invariant; Install may be called at most once.
type DynamicCodec[V, T any] struct {
	target atomic.Pointer[Codec[V, T]]
}

// NewDynamicCodec returns an unbound placeholder handle.
func NewDynamicCodec[V, T any]() *DynamicCodec[V, T] {
	return &DynamicCodec[V, T]{}
}

// Install performs the one-shot write of the real codec into the
// placeholder cell. Calling Install twice is a programmer error and is
// fatal.
func (d *DynamicCodec[V, T]) Install(codec Codec[V, T]) {
	if !d.target.CompareAndSwap(nil, &codec) {
		fatalf("datafix: DynamicCodec.Install called more than once")
	}
}

func (d *DynamicCodec[V, T]) resolve() Codec[V, T] {
	p := d.target.Load()
	if p == nil {
		fatalf("datafix: DynamicCodec used before Install")
	}
	return *p
}

func (d *DynamicCodec[V, T]) Encode(ops Ops[V], ctx *Context, value T) (V, DataError) {
	return d.resolve().Encode(ops, ctx, value)
}

func (d *DynamicCodec[V, T]) Decode(ops Ops[V], ctx *Context, tree V) (T, DataError) {
	return d.resolve().Decode(ops, ctx, tree)
}

// AsDynamic wraps an already-built codec in a pre-installed DynamicCodec
// handle, for call sites that want the erased-handle type without
// building one through Recursive.
func AsDynamic[V, T any](inner Codec[V, T]) *DynamicCodec[V, T] {
	d := NewDynamicCodec[V, T]()
	d.Install(inner)
	return d
}

// Recursive builds a self-referential codec:
//  1. create a placeholder handle forwarding to the not-yet-installed codec;
//  2. invoke builder(placeholder) to obtain the real codec, which may
//     itself hold references to the placeholder for its recursive case;
//  3. install the real codec into the placeholder (one-shot).
//
// All three steps happen inside this call, before Recursive returns, so
// callers never observe an unbound placeholder (spec.md §4.3.2).
func Recursive[V, T any](builder func(self Codec[V, T]) Codec[V, T]) Codec[V, T] {
	placeholder := NewDynamicCodec[V, T]()
	real := builder(placeholder)
	placeholder.Install(real)
	return placeholder
}
