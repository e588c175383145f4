// Package ast defines the specification syntax tree. Every node carries a
// closed NodeKind discriminant and a source span; nodes form a tree owned
// exclusively by the Domain that contains them. Consumers (the printer, the
// validator) must switch exhaustively over NodeKind so new kinds cannot be
// silently ignored.
package ast

import (
	"isl/internal/source"
)

// NodeKind discriminates every syntax-tree node.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota

	// Declarations and domain members.
	KindDomain
	KindUse
	KindImport
	KindTypeDecl
	KindEnumDecl
	KindEntity
	KindField
	KindAnnotation
	KindInvariant
	KindLifecycle
	KindTransition
	KindBehavior
	KindOutput
	KindErrorVariant
	KindPostcondition
	KindTemporal
	KindProperty
	KindPolicy
	KindView
	KindScenario
	KindChaos
	KindAPI
	KindRoute
	KindStorage
	KindMapping
	KindWorkflow
	KindStep
	KindEvent
	KindHandler
	KindScreen
	KindScreenAction
	KindConfig
	KindPartial

	// Types.
	KindNamedType
	KindListType
	KindMapType
	KindOptionalType
	KindUnionType
	KindStructType
	KindConstrainedType
	KindGenericType

	// Expressions.
	KindIdentExpr
	KindQualifiedExpr
	KindStringLit
	KindNumberLit
	KindBoolLit
	KindNullLit
	KindDurationLit
	KindRegexLit
	KindBinaryExpr
	KindUnaryExpr
	KindCallExpr
	KindMemberExpr
	KindIndexExpr
	KindQuantifierExpr
	KindConditionalExpr
	KindOldExpr
	KindResultExpr
	KindInputExpr
	KindLambdaExpr
	KindListLit
	KindMapLit
)

// Node is implemented by every syntax-tree node.
type Node interface {
	Kind() NodeKind
	Span() source.Span
}

// Base carries the span shared by every concrete node. Constructed by the
// parser, read-only afterwards.
type Base struct {
	Sp source.Span
}

func (b Base) Span() source.Span { return b.Sp }
