package datafix

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/kr/text"
	"github.com/pkg/errors"
	"golang.org/x/xerrors"
)

// DataError is the taxonomy of failures an Ops accessor or codec can
// return. Internally codecs return DataError alone; a Context is paired
// with it only at the EncodeStart/DecodeStart boundary (see CodecError).
type DataError interface {
	error
	isDataError()
}

// UnexpectedTypeError reports an accessor called against the wrong tree
// shape, naming the shape it expected.
type UnexpectedTypeError struct {
	Expected string
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("unexpected type: expected %s", e.Expected)
}
func (*UnexpectedTypeError) isDataError() {}

// KeyNotFoundError reports a required map entry that was not present.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string { return fmt.Sprintf("key not found in map: %q", e.Key) }
func (*KeyNotFoundError) isDataError()     {}

// IndexOutOfBoundsError reports a list accessor called past the end of
// the list.
type IndexOutOfBoundsError struct {
	Index  int
	Length int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("list index %d out of bounds (length %d)", e.Index, e.Length)
}
func (*IndexOutOfBoundsError) isDataError() {}

// CustomError is the escape hatch used by combinators and user codecs for
// errors with no dedicated kind (bounded-range violations, dispatch
// fallback exhaustion, unsupported record keys).
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string { return e.Message }
func (*CustomError) isDataError()    {}

// Custom is a convenience constructor for CustomError, mirroring the
// original's Custom{message} variant.
func Custom(format string, args ...any) *CustomError {
	return &CustomError{Message: fmt.Sprintf(format, args...)}
}

// CodecError pairs a DataError with the Context snapshot active when it
// occurred. It is returned only from EncodeStart/DecodeStart; everything
// beneath those boundaries returns DataError alone (spec.md §4.2, §7).
type CodecError struct {
	Err     DataError
	Context *Context
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Context.Path(), e.Err.Error())
}

func (e *CodecError) Unwrap() error { return e.Err }

// Pretty renders a multi-line diagnostic: the trace path, the underlying
// error, and (when value is non-nil) a pretty-printed dump of the
// offending subtree, indented like a compiler diagnostic.
func (e *CodecError) Pretty(value any) string {
	body := fmt.Sprintf("%s\n%s", e.Context.Path(), e.Err.Error())
	if value != nil {
		dump := pretty.Sprint(value)
		body += "\n" + text.Indent(dump, "    ")
	}
	return body
}

func newCodecError(err DataError, ctx *Context) *CodecError {
	return &CodecError{Err: err, Context: ctx}
}

// wrapBoundary adds a caller frame to an error escaping EncodeStart or
// DecodeStart, per the ambient error-handling stack (SPEC_FULL.md §1).
func wrapBoundary(op string, err error) error {
	return xerrors.Errorf("datafix: %s: %w", op, err)
}

// fatalf panics with a stack-trace-carrying error for programmer-misuse
// conditions that spec.md §7 defines as fatal and not representable as a
// DataError: a record builder constructor that is not a one-result
// function of the declared arity, a duplicate field name, a recursive
// placeholder used before install or installed twice.
func fatalf(format string, args ...any) {
	panic(errors.WithStack(fmt.Errorf(format, args...)))
}
