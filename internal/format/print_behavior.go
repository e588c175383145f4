package format

import (
	"isl/internal/ast"
)

func (p *printer) printBehavior(b *ast.Behavior) {
	p.w.open("behavior " + b.Name)

	if len(b.Input) > 0 {
		p.w.open("input")
		for _, f := range b.Input {
			p.w.line(p.fieldStr(f))
		}
		p.w.close()
	}
	if b.Output != nil {
		p.printOutput(b.Output)
	}
	if len(b.Preconditions) > 0 {
		p.printPredicateBlock("preconditions", b.Preconditions)
	}
	if len(b.Postconditions) > 0 {
		p.w.open("postconditions")
		for _, pc := range b.Postconditions {
			p.printPredicateBlock(outcomeHead(pc), pc.Predicates)
		}
		p.w.close()
	}
	if len(b.Invariants) > 0 {
		p.printPredicateBlock("invariants", b.Invariants)
	}
	if len(b.Temporal) > 0 {
		p.w.open("temporal")
		for _, t := range b.Temporal {
			p.w.line(p.temporalStr(t))
		}
		p.w.close()
	}
	if len(b.Security) > 0 {
		p.printPropertyBlock("security", b.Security)
	}
	if len(b.Compliance) > 0 {
		p.printPropertyBlock("compliance", b.Compliance)
	}
	if len(b.Observability) > 0 {
		p.printPropertyBlock("observability", b.Observability)
	}

	p.w.close()
}

func outcomeHead(pc *ast.Postcondition) string {
	switch pc.Outcome {
	case ast.OutcomeSuccess:
		return "success"
	case ast.OutcomeAnyError:
		return "any_error"
	default:
		return pc.ErrorName
	}
}

func (p *printer) printOutput(out *ast.Output) {
	p.w.open("output")
	if out.Success != nil {
		p.w.line("success: " + p.typeStr(out.Success))
	}
	if len(out.Errors) > 0 {
		p.w.str("errors { ")
		for i, ev := range out.Errors {
			if i > 0 {
				p.w.str(", ")
			}
			p.w.str(ev.Name)
			for _, ann := range ev.Annotations {
				p.w.str(" " + p.annotationStr(ann))
			}
		}
		p.w.line(" }")
	}
	p.w.close()
}

func (p *printer) temporalStr(t *ast.Temporal) string {
	s := t.TKind.String() + " " + p.exprStr(t.Pred)
	if t.Within != nil {
		s += " within " + p.exprStr(t.Within)
	}
	if t.Percentile != "" {
		s += " at " + t.Percentile
	}
	return s
}
