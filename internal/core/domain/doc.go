// Package domain defines the core business entities for dairyghg.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Boundary: The set of emission sources counted toward a farm total
//   - SourceResult: A loosely shaped record produced by a source model
//   - NormalizedContribution: One source's amount in kg CO2eq
//   - AggregatedTotal: A farm total with its per-source breakdown
//   - FarmRecord: One farm-year of input data
//   - BatchEntry / BatchReport: Per-farm outcomes and the batch summary
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
