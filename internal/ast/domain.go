package ast

import "isl/internal/source"

// Domain is the top-level specification unit. Exactly one Domain comes out
// of every parse call; in fuzzy mode it may be a synthesized accumulator.
type Domain struct {
	Base
	Name     string
	NameSpan source.Span
	// Version is the declared version string; empty when the declaration
	// was missing (diagnosed as MISSING_VERSION, not fatal).
	Version     string
	VersionSpan source.Span
	Owner       string

	// Braceless marks the form `domain X` followed by members running to
	// end of input, with no enclosing braces.
	Braceless bool

	Uses      []*UseDecl
	Imports   []*ImportDecl
	Types     []*TypeDecl
	Enums     []*EnumDecl
	Entities  []*Entity
	Behaviors []*Behavior
	// Invariants holds the domain-level invariant blocks, flattened.
	Invariants []*Invariant
	Policies   []*Policy
	Views      []*View
	Scenarios  []*Scenario
	ChaosSpecs []*Chaos
	APIs       []*APIBlock
	Storages   []*StorageBlock
	Workflows  []*Workflow
	Events     []*EventDecl
	Handlers   []*Handler
	Screens    []*Screen
	Configs    []*ConfigBlock
}

func (*Domain) Kind() NodeKind { return KindDomain }

// UseDecl is `use path.to.module (as alias)?`.
type UseDecl struct {
	Base
	Path  []string
	Alias string
}

func (*UseDecl) Kind() NodeKind { return KindUse }

// ImportDecl is `import "file.isl" (as alias)?`.
type ImportDecl struct {
	Base
	Path  string
	Alias string
}

func (*ImportDecl) Kind() NodeKind { return KindImport }

// TypeDecl is `type Name = TypeExpr`.
type TypeDecl struct {
	Base
	Name     string
	NameSpan source.Span
	Type     Type
}

func (*TypeDecl) Kind() NodeKind { return KindTypeDecl }

// EnumDecl is `enum Name { A, B, C }`.
type EnumDecl struct {
	Base
	Name     string
	NameSpan source.Span
	Variants []string
}

func (*EnumDecl) Kind() NodeKind { return KindEnumDecl }

// PartialNode stands in for a block fuzzy recovery could not restructure.
// It keeps the raw text span, a best-guess block kind, and the diagnostic
// that defeated the block's independent parse.
type PartialNode struct {
	Base
	// Raw is the exact source text of the unrecovered block.
	Raw string
	// Guess names the block kind suggested by its leading keyword, or
	// "unknown".
	Guess string
	// Reason is the first diagnostic from the failed block parse.
	Reason string
}

func (*PartialNode) Kind() NodeKind { return KindPartial }
