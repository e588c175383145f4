package ast

import "isl/internal/source"

// Entity is a data-shape declaration: fields, invariants, and an optional
// lifecycle.
type Entity struct {
	Base
	Name       string
	NameSpan   source.Span
	Fields     []*Field
	Invariants []*Invariant
	Lifecycle  *Lifecycle
}

func (*Entity) Kind() NodeKind { return KindEntity }

// Field is `name: Type (@annotation...)* (= default)?`.
type Field struct {
	Base
	Name        string
	NameSpan    source.Span
	Type        Type
	Annotations []*Annotation
	Default     Expr // nil when absent
}

func (*Field) Kind() NodeKind { return KindField }

// Annotation is `@name(arg, ...)`; args are expressions.
type Annotation struct {
	Base
	Name string
	Args []Expr
}

func (*Annotation) Kind() NodeKind { return KindAnnotation }

// Invariant is one named or anonymous predicate inside an invariants block.
type Invariant struct {
	Base
	Name string // empty for anonymous predicates
	Pred Expr
}

func (*Invariant) Kind() NodeKind { return KindInvariant }

// Lifecycle is the state-transition list of an entity.
type Lifecycle struct {
	Base
	Transitions []*Transition
}

func (*Lifecycle) Kind() NodeKind { return KindLifecycle }

// Transition is `from -> to (on trigger)?`.
type Transition struct {
	Base
	From    string
	To      string
	Trigger string // empty when no `on` clause
}

func (*Transition) Kind() NodeKind { return KindTransition }
