package datafix

import (
	"reflect"
	"sort"

	"github.com/mpvl/unique"
)

// fieldDescriptor erases a single field's element type T, leaving only
// the capability a record codec needs: produce a (name, value) entry on
// encode, and produce a decoded reflect.Value on decode. This is strategy
// (b) from spec.md §9's DESIGN NOTES — pay dynamic dispatch once per
// field rather than generating one record-codec type per arity.
type fieldDescriptor[V, Struct any] interface {
	fieldName() string
	encodeEntry(ops Ops[V], ctx *Context, s Struct) OptionalEntry[V]
	decodeEntry(ops Ops[V], ctx *Context, owned OwnedMapView[V]) (reflect.Value, DataError)
}

type requiredField[V, T, Struct any] struct {
	name   string
	getter func(Struct) T
	inner  Codec[V, T]
}

// Required declares a field that must be present: encode always writes
// it, decode fails KeyNotFoundError(name) if it is missing (spec.md
// §4.3.3).
func Required[V, T, Struct any](name string, getter func(Struct) T, inner Codec[V, T]) fieldDescriptor[V, Struct] {
	return &requiredField[V, T, Struct]{name: name, getter: getter, inner: inner}
}

func (f *requiredField[V, T, Struct]) fieldName() string { return f.name }

func (f *requiredField[V, T, Struct]) encodeEntry(ops Ops[V], ctx *Context, s Struct) OptionalEntry[V] {
	ctx.PushField(f.name)
	v, err := f.inner.Encode(ops, ctx, f.getter(s))
	ctx.Pop()
	if err != nil {
		return OptionalEntry[V]{Err: err}
	}
	return OptionalEntry[V]{Present: true, Key: f.name, Value: v}
}

func (f *requiredField[V, T, Struct]) decodeEntry(ops Ops[V], ctx *Context, owned OwnedMapView[V]) (reflect.Value, DataError) {
	ctx.PushField(f.name)
	defer ctx.Pop()
	raw, err := owned.Take(f.name)
	if err != nil {
		return reflect.Value{}, &KeyNotFoundError{Key: f.name}
	}
	v, derr := f.inner.Decode(ops, ctx, raw)
	if derr != nil {
		return reflect.Value{}, derr
	}
	return reflect.ValueOf(v), nil
}

type optionalField[V, T, Struct any] struct {
	name   string
	getter func(Struct) *T
	inner  Codec[V, T]
}

// Optional declares a field whose getter returns a *T: nil means absent.
// It encodes only when present and decodes to nil when the key is
// missing, propagating any other decode error (spec.md §4.3.3, §4.4).
func Optional[V, T, Struct any](name string, getter func(Struct) *T, inner Codec[V, T]) fieldDescriptor[V, Struct] {
	return &optionalField[V, T, Struct]{name: name, getter: getter, inner: inner}
}

func (f *optionalField[V, T, Struct]) fieldName() string { return f.name }

func (f *optionalField[V, T, Struct]) encodeEntry(ops Ops[V], ctx *Context, s Struct) OptionalEntry[V] {
	p := f.getter(s)
	if p == nil {
		return OptionalEntry[V]{Present: false}
	}
	ctx.PushField(f.name)
	v, err := f.inner.Encode(ops, ctx, *p)
	ctx.Pop()
	if err != nil {
		return OptionalEntry[V]{Err: err}
	}
	return OptionalEntry[V]{Present: true, Key: f.name, Value: v}
}

func (f *optionalField[V, T, Struct]) decodeEntry(ops Ops[V], ctx *Context, owned OwnedMapView[V]) (reflect.Value, DataError) {
	raw, err := owned.Take(f.name)
	if err != nil {
		var nilPtr *T
		return reflect.ValueOf(nilPtr), nil
	}
	ctx.PushField(f.name)
	v, derr := f.inner.Decode(ops, ctx, raw)
	ctx.Pop()
	if derr != nil {
		return reflect.Value{}, derr
	}
	return reflect.ValueOf(&v), nil
}

type defaultedField[V, T, Struct any] struct {
	name      string
	getter    func(Struct) T
	inner     Codec[V, T]
	defaultFn func() T
}

// Defaulted declares a field that always encodes, but substitutes
// defaultFn() on decode when the key is missing (spec.md §4.3.3).
func Defaulted[V, T, Struct any](name string, getter func(Struct) T, inner Codec[V, T], defaultFn func() T) fieldDescriptor[V, Struct] {
	return &defaultedField[V, T, Struct]{name: name, getter: getter, inner: inner, defaultFn: defaultFn}
}

func (f *defaultedField[V, T, Struct]) fieldName() string { return f.name }

func (f *defaultedField[V, T, Struct]) encodeEntry(ops Ops[V], ctx *Context, s Struct) OptionalEntry[V] {
	ctx.PushField(f.name)
	v, err := f.inner.Encode(ops, ctx, f.getter(s))
	ctx.Pop()
	if err != nil {
		return OptionalEntry[V]{Err: err}
	}
	return OptionalEntry[V]{Present: true, Key: f.name, Value: v}
}

func (f *defaultedField[V, T, Struct]) decodeEntry(ops Ops[V], ctx *Context, owned OwnedMapView[V]) (reflect.Value, DataError) {
	raw, err := owned.Take(f.name)
	if err != nil {
		return reflect.ValueOf(f.defaultFn()), nil
	}
	ctx.PushField(f.name)
	v, derr := f.inner.Decode(ops, ctx, raw)
	ctx.Pop()
	if derr != nil {
		return reflect.Value{}, derr
	}
	return reflect.ValueOf(v), nil
}

// RecordBuilder accumulates ordered field descriptors and, at Build time,
// verifies field-name uniqueness and constructor arity before returning
// an immutable record Codec. Reading an unfinalized builder is
// meaningless by construction: Build is the only way to obtain a Codec,
// and it reflects over the constructor exactly once (spec.md §4.3.3's
// "single-assignment cell holding the constructor function").
type RecordBuilder[V, Struct any] struct {
	fields       []fieldDescriptor[V, Struct]
	allowUnknown bool
}

// NewRecordBuilder starts an empty record builder.
func NewRecordBuilder[V, Struct any]() *RecordBuilder[V, Struct] {
	return &RecordBuilder[V, Struct]{}
}

// Field appends a field descriptor in declaration order.
func (b *RecordBuilder[V, Struct]) Field(fd fieldDescriptor[V, Struct]) *RecordBuilder[V, Struct] {
	b.fields = append(b.fields, fd)
	return b
}

// AllowUnknownKeys opts this record out of the default unknown-key
// rejection policy (spec.md §9's suggested per-codec escape hatch).
func (b *RecordBuilder[V, Struct]) AllowUnknownKeys() *RecordBuilder[V, Struct] {
	b.allowUnknown = true
	return b
}

// Build finalizes the record codec. ctor must be a func taking one
// argument per declared field, in declaration order, and returning
// Struct; a mismatched arity or return type is a fatal builder-misuse
// error, not a DataError, per spec.md §7.
func (b *RecordBuilder[V, Struct]) Build(ctor any) Codec[V, Struct] {
	names := make([]string, len(b.fields))
	for i, f := range b.fields {
		names[i] = f.fieldName()
	}
	sortedNames := append([]string(nil), names...)
	sort.Strings(sortedNames)
	unique.Strings(&sortedNames)
	if len(sortedNames) != len(names) {
		fatalf("datafix: duplicate field name in record builder: %v", names)
	}

	ctorVal := reflect.ValueOf(ctor)
	ctorType := ctorVal.Type()
	if ctorType.Kind() != reflect.Func {
		fatalf("datafix: record builder constructor is not a function")
	}
	if ctorType.NumIn() != len(b.fields) {
		fatalf("datafix: record builder constructor expects %d arguments, builder declared %d fields", ctorType.NumIn(), len(b.fields))
	}
	if ctorType.NumOut() != 1 {
		fatalf("datafix: record builder constructor must return exactly one value")
	}

	fields := b.fields
	allowUnknown := b.allowUnknown
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}

	return fromFuncs(
		func(ops Ops[V], ctx *Context, value Struct) (V, DataError) {
			entries := make([]OptionalEntry[V], len(fields))
			for i, f := range fields {
				entries[i] = f.encodeEntry(ops, ctx, value)
			}
			return ops.CreateMapSpecial(entries)
		},
		func(ops Ops[V], ctx *Context, tree V) (Struct, DataError) {
			var zero Struct
			owned, err := ops.TakeMap(tree)
			if err != nil {
				return zero, err
			}
			args := make([]reflect.Value, len(fields))
			for i, f := range fields {
				v, derr := f.decodeEntry(ops, ctx, owned)
				if derr != nil {
					return zero, derr
				}
				args[i] = coerceArg(v, ctorType.In(i))
			}
			if !allowUnknown {
				for _, entry := range owned.Entries() {
					if _, ok := nameSet[entry.Key]; !ok {
						return zero, Custom("unsupported key %q in object", entry.Key)
					}
				}
			}
			out := ctorVal.Call(args)
			result, ok := out[0].Interface().(Struct)
			if !ok {
				fatalf("datafix: record builder constructor returned unexpected type")
			}
			return result, nil
		},
	)
}

// coerceArg handles the one case reflect.Value.Call is strict about that
// our field descriptors otherwise can't express generically: an absent
// Optional[T] field decodes to a typed nil *T via reflect.ValueOf(nilPtr),
// which already carries the right static type, so this is a no-op in
// every case except ensuring assignability.
func coerceArg(v reflect.Value, want reflect.Type) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(want)
	}
	if v.Type().AssignableTo(want) {
		return v
	}
	return v.Convert(want)
}
