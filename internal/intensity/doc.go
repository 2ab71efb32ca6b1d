// Package intensity provides the intensity derivers that normalise a farm
// total by production or area.
//
// Every deriver returns an undefined intensity for a zero denominator and an
// error only for denominators it cannot interpret, in which case callers use
// Fallback.
package intensity

import "github.com/custodia-labs/dairyghg/internal/core/ports/driven"

// Defaults returns the built-in derivers in reporting order.
func Defaults() []driven.IntensityDeriver {
	return []driven.IntensityDeriver{
		NewFPCM(),
		NewAreaTotal(),
		NewAreaProductive(),
	}
}
