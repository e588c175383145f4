package ast

import "isl/internal/source"

// Behavior is an operation contract: input, output, pre/postconditions,
// invariants, and temporal/security/compliance/observability constraints.
type Behavior struct {
	Base
	Name           string
	NameSpan       source.Span
	Input          []*Field
	Output         *Output
	Preconditions  []*Invariant
	Postconditions []*Postcondition
	Invariants     []*Invariant
	Temporal       []*Temporal
	Security       []*Property
	Compliance     []*Property
	Observability  []*Property
}

func (*Behavior) Kind() NodeKind { return KindBehavior }

// Output declares the success type and the named error variants.
type Output struct {
	Base
	Success Type // nil when the behavior has no success payload
	Errors  []*ErrorVariant
}

func (*Output) Kind() NodeKind { return KindOutput }

// ErrorVariant is one named error in an output block.
type ErrorVariant struct {
	Base
	Name        string
	NameSpan    source.Span
	Annotations []*Annotation
}

func (*ErrorVariant) Kind() NodeKind { return KindErrorVariant }

// PostconditionOutcome selects which outcome a postcondition block covers.
type PostconditionOutcome uint8

const (
	// OutcomeSuccess covers the success path.
	OutcomeSuccess PostconditionOutcome = iota
	// OutcomeError covers one named error variant.
	OutcomeError
	// OutcomeAnyError covers every error variant.
	OutcomeAnyError
)

// Postcondition is one outcome-keyed predicate block.
type Postcondition struct {
	Base
	Outcome PostconditionOutcome
	// ErrorName is set only for OutcomeError.
	ErrorName  string
	Predicates []*Invariant
}

func (*Postcondition) Kind() NodeKind { return KindPostcondition }

// TemporalKind classifies temporal constraints.
type TemporalKind uint8

const (
	TemporalEventually TemporalKind = iota
	TemporalAlways
	TemporalNever
	TemporalImmediately
)

func (k TemporalKind) String() string {
	switch k {
	case TemporalEventually:
		return "eventually"
	case TemporalAlways:
		return "always"
	case TemporalNever:
		return "never"
	case TemporalImmediately:
		return "immediately"
	}
	return "unknown"
}

// Temporal is `eventually|always|never|immediately expr (within dur)? (at pN)?`.
type Temporal struct {
	Base
	TKind      TemporalKind
	Pred       Expr
	Within     Expr   // duration expression, nil when absent
	Percentile string // e.g. "p99", empty when absent
}

func (*Temporal) Kind() NodeKind { return KindTemporal }

// Property is a `name: expr` entry inside security, compliance,
// observability, and config blocks, and inside type constraints.
type Property struct {
	Base
	Name  string
	Value Expr
}

func (*Property) Kind() NodeKind { return KindProperty }
