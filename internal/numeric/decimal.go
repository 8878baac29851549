// Package numeric supplies codec glue for arbitrary-precision decimal
// values, for callers that need precision beyond float64 (SPEC_FULL.md
// D4).
package numeric

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/arkenfold/datafix"
)

// BigDecimal is a codec for apd.Decimal, built as a FlatXMap over the
// string codec: encode formats the decimal's exact text, decode parses
// it back with apd's context-free parser.
func BigDecimal[V any]() datafix.Codec[V, apd.Decimal] {
	return datafix.FlatXMap(
		datafix.String[V](),
		func(s string) (apd.Decimal, datafix.DataError) {
			var d apd.Decimal
			if _, _, err := d.SetString(s); err != nil {
				return apd.Decimal{}, datafix.Custom("invalid decimal %q: %v", s, err)
			}
			return d, nil
		},
		func(d apd.Decimal) (string, datafix.DataError) {
			return d.String(), nil
		},
	)
}
