package ast

import "isl/internal/source"

// Policy is `policy Name { when expr then expr (within dur)? }`.
type Policy struct {
	Base
	Name     string
	NameSpan source.Span
	When     Expr
	Then     Expr
	Within   Expr // nil when absent
}

func (*Policy) Kind() NodeKind { return KindPolicy }

// View is a read-model projection: a name and its fields.
type View struct {
	Base
	Name     string
	NameSpan source.Span
	Fields   []*Field
}

func (*View) Kind() NodeKind { return KindView }

// Scenario is a given/when/then example block.
type Scenario struct {
	Base
	Name     string
	NameSpan source.Span
	Given    []Expr
	When     []Expr
	Then     []Expr
}

func (*Scenario) Kind() NodeKind { return KindScenario }

// Chaos is a fault-injection experiment: injected faults plus the temporal
// expectations that must still hold.
type Chaos struct {
	Base
	Name         string
	NameSpan     source.Span
	Injections   []string
	Expectations []*Temporal
}

func (*Chaos) Kind() NodeKind { return KindChaos }

// APIBlock groups HTTP routes under a name.
type APIBlock struct {
	Base
	Name   string
	Routes []*Route
}

func (*APIBlock) Kind() NodeKind { return KindAPI }

// Route is `method "/path" -> Target`.
type Route struct {
	Base
	Method string // get, post, put, delete, patch
	Path   string
	Target string
}

func (*Route) Kind() NodeKind { return KindRoute }

// StorageBlock maps entities to storage locations.
type StorageBlock struct {
	Base
	Name       string
	Mappings   []*Mapping
	Properties []*Property
}

func (*StorageBlock) Kind() NodeKind { return KindStorage }

// Mapping is `Entity -> "table"`.
type Mapping struct {
	Base
	Entity string
	Target string
}

func (*Mapping) Kind() NodeKind { return KindMapping }

// Workflow is an ordered list of named steps.
type Workflow struct {
	Base
	Name     string
	NameSpan source.Span
	Steps    []*Step
}

func (*Workflow) Kind() NodeKind { return KindWorkflow }

// Step is `step name -> Behavior`.
type Step struct {
	Base
	Name   string
	Target string
}

func (*Step) Kind() NodeKind { return KindStep }

// EventDecl declares an event and its payload fields.
type EventDecl struct {
	Base
	Name     string
	NameSpan source.Span
	Fields   []*Field
}

func (*EventDecl) Kind() NodeKind { return KindEvent }

// Handler subscribes a behavior to an event.
type Handler struct {
	Base
	Name     string
	NameSpan source.Span
	On       string
	Calls    string
}

func (*Handler) Kind() NodeKind { return KindHandler }

// Screen is a UI surface: what it shows and which actions it offers.
type Screen struct {
	Base
	Name     string
	NameSpan source.Span
	Shows    string
	Actions  []*ScreenAction
}

func (*Screen) Kind() NodeKind { return KindScreen }

// ScreenAction is `action name -> Behavior`.
type ScreenAction struct {
	Base
	Name   string
	Target string
}

func (*ScreenAction) Kind() NodeKind { return KindScreenAction }

// ConfigBlock holds named configuration properties.
type ConfigBlock struct {
	Base
	Name       string // optional
	Properties []*Property
}

func (*ConfigBlock) Kind() NodeKind { return KindConfig }
