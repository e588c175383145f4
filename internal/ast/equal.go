package ast

import "slices"

// EqualDomain reports structural equality of two domains, ignoring spans
// and formatting. Used by round-trip tests and the fuzzy merger.
func EqualDomain(a, b *Domain) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Version != b.Version || a.Owner != b.Owner {
		return false
	}
	return equalSlice(a.Uses, b.Uses, equalUse) &&
		equalSlice(a.Imports, b.Imports, equalImport) &&
		equalSlice(a.Types, b.Types, equalTypeDecl) &&
		equalSlice(a.Enums, b.Enums, equalEnum) &&
		equalSlice(a.Entities, b.Entities, EqualEntity) &&
		equalSlice(a.Behaviors, b.Behaviors, EqualBehavior) &&
		equalSlice(a.Invariants, b.Invariants, equalInvariant) &&
		equalSlice(a.Policies, b.Policies, equalPolicy) &&
		equalSlice(a.Views, b.Views, equalView) &&
		equalSlice(a.Scenarios, b.Scenarios, equalScenario) &&
		equalSlice(a.ChaosSpecs, b.ChaosSpecs, equalChaos) &&
		equalSlice(a.APIs, b.APIs, equalAPI) &&
		equalSlice(a.Storages, b.Storages, equalStorage) &&
		equalSlice(a.Workflows, b.Workflows, equalWorkflow) &&
		equalSlice(a.Events, b.Events, equalEvent) &&
		equalSlice(a.Handlers, b.Handlers, equalHandler) &&
		equalSlice(a.Screens, b.Screens, equalScreen) &&
		equalSlice(a.Configs, b.Configs, equalConfig)
}

func equalSlice[T any](a, b []T, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalUse(a, b *UseDecl) bool {
	return slices.Equal(a.Path, b.Path) && a.Alias == b.Alias
}

func equalImport(a, b *ImportDecl) bool {
	return a.Path == b.Path && a.Alias == b.Alias
}

func equalTypeDecl(a, b *TypeDecl) bool {
	return a.Name == b.Name && EqualType(a.Type, b.Type)
}

func equalEnum(a, b *EnumDecl) bool {
	return a.Name == b.Name && slices.Equal(a.Variants, b.Variants)
}

// EqualEntity reports structural equality of two entities.
func EqualEntity(a, b *Entity) bool {
	if a.Name != b.Name {
		return false
	}
	if !equalSlice(a.Fields, b.Fields, equalField) {
		return false
	}
	if !equalSlice(a.Invariants, b.Invariants, equalInvariant) {
		return false
	}
	if (a.Lifecycle == nil) != (b.Lifecycle == nil) {
		return false
	}
	if a.Lifecycle != nil {
		if !equalSlice(a.Lifecycle.Transitions, b.Lifecycle.Transitions, equalTransition) {
			return false
		}
	}
	return true
}

func equalField(a, b *Field) bool {
	if a.Name != b.Name || !EqualType(a.Type, b.Type) {
		return false
	}
	if !equalSlice(a.Annotations, b.Annotations, equalAnnotation) {
		return false
	}
	return EqualExpr(a.Default, b.Default)
}

func equalAnnotation(a, b *Annotation) bool {
	return a.Name == b.Name && equalSlice(a.Args, b.Args, EqualExpr)
}

func equalInvariant(a, b *Invariant) bool {
	return a.Name == b.Name && EqualExpr(a.Pred, b.Pred)
}

func equalTransition(a, b *Transition) bool {
	return a.From == b.From && a.To == b.To && a.Trigger == b.Trigger
}

// EqualBehavior reports structural equality of two behaviors.
func EqualBehavior(a, b *Behavior) bool {
	if a.Name != b.Name {
		return false
	}
	if !equalSlice(a.Input, b.Input, equalField) {
		return false
	}
	if (a.Output == nil) != (b.Output == nil) {
		return false
	}
	if a.Output != nil {
		if !EqualType(a.Output.Success, b.Output.Success) {
			return false
		}
		if !equalSlice(a.Output.Errors, b.Output.Errors, equalErrorVariant) {
			return false
		}
	}
	return equalSlice(a.Preconditions, b.Preconditions, equalInvariant) &&
		equalSlice(a.Postconditions, b.Postconditions, equalPostcondition) &&
		equalSlice(a.Invariants, b.Invariants, equalInvariant) &&
		equalSlice(a.Temporal, b.Temporal, equalTemporal) &&
		equalSlice(a.Security, b.Security, equalProperty) &&
		equalSlice(a.Compliance, b.Compliance, equalProperty) &&
		equalSlice(a.Observability, b.Observability, equalProperty)
}

func equalErrorVariant(a, b *ErrorVariant) bool {
	return a.Name == b.Name && equalSlice(a.Annotations, b.Annotations, equalAnnotation)
}

func equalPostcondition(a, b *Postcondition) bool {
	return a.Outcome == b.Outcome && a.ErrorName == b.ErrorName &&
		equalSlice(a.Predicates, b.Predicates, equalInvariant)
}

func equalTemporal(a, b *Temporal) bool {
	return a.TKind == b.TKind && EqualExpr(a.Pred, b.Pred) &&
		EqualExpr(a.Within, b.Within) && a.Percentile == b.Percentile
}

func equalProperty(a, b *Property) bool {
	return a.Name == b.Name && EqualExpr(a.Value, b.Value)
}

func equalPolicy(a, b *Policy) bool {
	return a.Name == b.Name && EqualExpr(a.When, b.When) &&
		EqualExpr(a.Then, b.Then) && EqualExpr(a.Within, b.Within)
}

func equalView(a, b *View) bool {
	return a.Name == b.Name && equalSlice(a.Fields, b.Fields, equalField)
}

func equalScenario(a, b *Scenario) bool {
	return a.Name == b.Name &&
		equalSlice(a.Given, b.Given, EqualExpr) &&
		equalSlice(a.When, b.When, EqualExpr) &&
		equalSlice(a.Then, b.Then, EqualExpr)
}

func equalChaos(a, b *Chaos) bool {
	return a.Name == b.Name && slices.Equal(a.Injections, b.Injections) &&
		equalSlice(a.Expectations, b.Expectations, equalTemporal)
}

func equalAPI(a, b *APIBlock) bool {
	return a.Name == b.Name && equalSlice(a.Routes, b.Routes, equalRoute)
}

func equalRoute(a, b *Route) bool {
	return a.Method == b.Method && a.Path == b.Path && a.Target == b.Target
}

func equalStorage(a, b *StorageBlock) bool {
	return a.Name == b.Name &&
		equalSlice(a.Mappings, b.Mappings, equalMapping) &&
		equalSlice(a.Properties, b.Properties, equalProperty)
}

func equalMapping(a, b *Mapping) bool {
	return a.Entity == b.Entity && a.Target == b.Target
}

func equalWorkflow(a, b *Workflow) bool {
	return a.Name == b.Name && equalSlice(a.Steps, b.Steps, equalStep)
}

func equalStep(a, b *Step) bool {
	return a.Name == b.Name && a.Target == b.Target
}

func equalEvent(a, b *EventDecl) bool {
	return a.Name == b.Name && equalSlice(a.Fields, b.Fields, equalField)
}

func equalHandler(a, b *Handler) bool {
	return a.Name == b.Name && a.On == b.On && a.Calls == b.Calls
}

func equalScreen(a, b *Screen) bool {
	return a.Name == b.Name && a.Shows == b.Shows &&
		equalSlice(a.Actions, b.Actions, equalScreenAction)
}

func equalScreenAction(a, b *ScreenAction) bool {
	return a.Name == b.Name && a.Target == b.Target
}

func equalConfig(a, b *ConfigBlock) bool {
	return a.Name == b.Name && equalSlice(a.Properties, b.Properties, equalProperty)
}

// EqualType reports structural type equality, ignoring spans. Both nils
// are equal.
func EqualType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case *NamedType:
		return slices.Equal(at.Parts, b.(*NamedType).Parts)
	case *ListType:
		return EqualType(at.Elem, b.(*ListType).Elem)
	case *MapType:
		bt := b.(*MapType)
		return EqualType(at.Key, bt.Key) && EqualType(at.Value, bt.Value)
	case *OptionalType:
		return EqualType(at.Elem, b.(*OptionalType).Elem)
	case *UnionType:
		return equalSlice(at.Members, b.(*UnionType).Members, EqualType)
	case *StructType:
		return equalSlice(at.Fields, b.(*StructType).Fields, equalField)
	case *ConstrainedType:
		bt := b.(*ConstrainedType)
		return EqualType(at.Elem, bt.Elem) &&
			equalSlice(at.Constraints, bt.Constraints, equalProperty)
	case *GenericType:
		bt := b.(*GenericType)
		return at.Name == bt.Name && equalSlice(at.Args, bt.Args, EqualType)
	}
	return false
}

// EqualExpr reports structural expression equality, ignoring spans. Both
// nils are equal.
func EqualExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch ae := a.(type) {
	case *IdentExpr:
		return ae.Name == b.(*IdentExpr).Name
	case *QualifiedExpr:
		return slices.Equal(ae.Parts, b.(*QualifiedExpr).Parts)
	case *StringLit:
		return ae.Value == b.(*StringLit).Value
	case *NumberLit:
		return ae.Raw == b.(*NumberLit).Raw
	case *BoolLit:
		return ae.Value == b.(*BoolLit).Value
	case *NullLit:
		return true
	case *DurationLit:
		return ae.Value == b.(*DurationLit).Value
	case *RegexLit:
		return ae.Pattern == b.(*RegexLit).Pattern
	case *BinaryExpr:
		be := b.(*BinaryExpr)
		return ae.Op == be.Op && EqualExpr(ae.Left, be.Left) && EqualExpr(ae.Right, be.Right)
	case *UnaryExpr:
		be := b.(*UnaryExpr)
		return ae.Op == be.Op && EqualExpr(ae.Operand, be.Operand)
	case *CallExpr:
		be := b.(*CallExpr)
		if !EqualExpr(ae.Callee, be.Callee) || len(ae.Args) != len(be.Args) {
			return false
		}
		for i := range ae.Args {
			if ae.Args[i].Name != be.Args[i].Name || !EqualExpr(ae.Args[i].Value, be.Args[i].Value) {
				return false
			}
		}
		return true
	case *MemberExpr:
		be := b.(*MemberExpr)
		return ae.Name == be.Name && EqualExpr(ae.Object, be.Object)
	case *IndexExpr:
		be := b.(*IndexExpr)
		return EqualExpr(ae.Object, be.Object) && EqualExpr(ae.Index, be.Index)
	case *QuantifierExpr:
		be := b.(*QuantifierExpr)
		return ae.QKind == be.QKind && ae.Binder == be.Binder &&
			EqualExpr(ae.Collection, be.Collection) && EqualExpr(ae.Predicate, be.Predicate)
	case *ConditionalExpr:
		be := b.(*ConditionalExpr)
		return EqualExpr(ae.Cond, be.Cond) && EqualExpr(ae.Then, be.Then) && EqualExpr(ae.Else, be.Else)
	case *OldExpr:
		return EqualExpr(ae.Operand, b.(*OldExpr).Operand)
	case *ResultExpr, *InputExpr:
		return true
	case *LambdaExpr:
		be := b.(*LambdaExpr)
		return ae.Param == be.Param && EqualExpr(ae.Body, be.Body)
	case *ListLit:
		return equalSlice(ae.Elems, b.(*ListLit).Elems, EqualExpr)
	case *MapLit:
		be := b.(*MapLit)
		if len(ae.Entries) != len(be.Entries) {
			return false
		}
		for i := range ae.Entries {
			if !EqualExpr(ae.Entries[i].Key, be.Entries[i].Key) ||
				!EqualExpr(ae.Entries[i].Value, be.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
