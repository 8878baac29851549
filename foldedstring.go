package datafix

import "golang.org/x/text/cases"

// FoldedString is a lenient string codec whose decode side case-folds its
// input: encoding is a plain string passthrough, but decode accepts any
// casing and normalizes to lower case. Used by Dispatch-based tagged
// unions whose discriminator is case-insensitive text, e.g. legacy data
// that capitalized enum tags inconsistently (SPEC_FULL.md D7).
func FoldedString[V any]() Codec[V, string] {
	fold := cases.Fold()
	return XMap(String[V](),
		func(s string) string { return fold.String(s) },
		func(s string) string { return s },
	)
}
