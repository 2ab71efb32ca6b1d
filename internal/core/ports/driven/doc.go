// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceModel: Computes one emission source for one farm
//   - IntensityDeriver: Normalises a farm total by production or area
//   - FarmReader: Decodes tabular farm records
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReportStore: Batch report persistence. Without it, reports are only written to files.
//   - ReportWriter: Report serialisation. Without it, only the terminal summary is printed.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, source model, or deriver package
package driven
