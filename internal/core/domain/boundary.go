package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Scope defines how widely an assessment draws its system boundary.
type Scope string

// Available scopes.
const (
	// ScopeFull counts every emission source unless an include list narrows it.
	ScopeFull Scope = "full"

	// ScopePartial counts only the sources named in the include list.
	ScopePartial Scope = "partial"
)

// IsValid returns true if the scope is recognised.
func (s Scope) IsValid() bool {
	return s == ScopeFull || s == ScopePartial
}

// String returns the string representation.
func (s Scope) String() string {
	return string(s)
}

// Boundary is the system boundary of an assessment.
// The include set is fixed at construction; Includes is the only query
// source models and the aggregator need. A Boundary is safe for concurrent use.
type Boundary struct {
	scope   Scope
	include map[string]struct{}
}

// BoundarySpec is the serialisable form of a Boundary.
type BoundarySpec struct {
	// Scope is "full" or "partial".
	Scope Scope `json:"scope" yaml:"scope"`

	// Include lists the counted sources. Empty means unbounded.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
}

// NewBoundary creates a boundary for the given scope.
// A full scope with no include list is unbounded. A partial scope
// requires at least one source. Every named source must be known.
func NewBoundary(scope Scope, include []string) (Boundary, error) {
	if !scope.IsValid() {
		return Boundary{}, fmt.Errorf("%w: scope %q", ErrInvalidInput, scope)
	}

	names := make(map[string]struct{}, len(include))
	for _, name := range include {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !IsKnownSource(name) {
			return Boundary{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}
		names[name] = struct{}{}
	}

	if len(names) == 0 {
		if scope == ScopePartial {
			return Boundary{}, fmt.Errorf("%w: partial scope needs at least one included source", ErrInvalidInput)
		}
		return Boundary{scope: scope}, nil
	}

	return Boundary{scope: scope, include: names}, nil
}

// FullBoundary returns the unbounded farm-gate boundary.
func FullBoundary() Boundary {
	return Boundary{scope: ScopeFull}
}

// Scope returns the boundary scope.
// The zero Boundary reports ScopeFull.
func (b Boundary) Scope() Scope {
	if b.scope == "" {
		return ScopeFull
	}
	return b.scope
}

// Unbounded returns true if every source is included.
func (b Boundary) Unbounded() bool {
	return b.include == nil
}

// Includes returns true if the named source counts toward the total.
func (b Boundary) Includes(source string) bool {
	if b.include == nil {
		return true
	}
	_, ok := b.include[source]
	return ok
}

// Included returns the known sources this boundary counts, in reporting order.
func (b Boundary) Included() []string {
	var out []string
	for _, name := range AllSources() {
		if b.Includes(name) {
			out = append(out, name)
		}
	}
	return out
}

// Spec returns the serialisable form of the boundary.
func (b Boundary) Spec() BoundarySpec {
	spec := BoundarySpec{Scope: b.Scope()}
	if b.include != nil {
		spec.Include = make([]string, 0, len(b.include))
		for name := range b.include {
			spec.Include = append(spec.Include, name)
		}
		sort.Strings(spec.Include)
	}
	return spec
}

// Boundary rebuilds a Boundary from its serialised form.
func (s BoundarySpec) Boundary() (Boundary, error) {
	return NewBoundary(s.Scope, s.Include)
}

// String returns a short description such as "partial(enteric,manure)".
func (b Boundary) String() string {
	if b.include == nil {
		return b.Scope().String()
	}
	return fmt.Sprintf("%s(%s)", b.Scope(), strings.Join(b.Spec().Include, ","))
}
