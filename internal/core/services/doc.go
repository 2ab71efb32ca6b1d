// Package services implements the driving port interfaces.
// Services contain the assessment logic and orchestrate
// calls to driven ports (source models, derivers, stores).
//
// Services are pure Go with no CGO and never import adapters.
package services
