package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"isl/internal/ast"
	"isl/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// domain:
// 1) the domain span is non-empty and within file content bounds
// 2) every member span is non-empty and fully contained in the domain span
// 3) the domain span covers the union of member spans (if any exist)
func CheckSpanInvariants(dom *ast.Domain, sf *source.File) error {
	if dom == nil || sf == nil {
		return fmt.Errorf("nil domain or file")
	}

	// 1) domain span sanity
	if dom.Sp.End <= dom.Sp.Start {
		return fmt.Errorf("domain span is empty: %v", dom.Sp)
	}
	if dom.Sp.File != sf.ID {
		return fmt.Errorf("domain span points to different file id: got=%d want=%d", dom.Sp.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if dom.Sp.End > lenContent {
		return fmt.Errorf("domain span end beyond content: %d > %d", dom.Sp.End, lenContent)
	}

	// 2) member spans within domain span; 3) domain covers union
	var union source.Span
	var haveMember bool
	for _, sp := range memberSpans(dom) {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty member span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("member span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < dom.Sp.Start || sp.End > dom.Sp.End {
			return fmt.Errorf("member span %v is outside domain span %v", sp, dom.Sp)
		}
		if !haveMember {
			union = sp
			haveMember = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveMember {
		if union.Start < dom.Sp.Start || union.End > dom.Sp.End {
			return fmt.Errorf("domain span %v does not cover union of members %v", dom.Sp, union)
		}
	}
	return nil
}

func memberSpans(dom *ast.Domain) []source.Span {
	var spans []source.Span
	add := func(n ast.Node) { spans = append(spans, n.Span()) }
	for _, m := range dom.Uses {
		add(m)
	}
	for _, m := range dom.Imports {
		add(m)
	}
	for _, m := range dom.Types {
		add(m)
	}
	for _, m := range dom.Enums {
		add(m)
	}
	for _, m := range dom.Entities {
		add(m)
	}
	for _, m := range dom.Behaviors {
		add(m)
	}
	for _, m := range dom.Invariants {
		add(m)
	}
	for _, m := range dom.Policies {
		add(m)
	}
	for _, m := range dom.Views {
		add(m)
	}
	for _, m := range dom.Scenarios {
		add(m)
	}
	for _, m := range dom.ChaosSpecs {
		add(m)
	}
	for _, m := range dom.APIs {
		add(m)
	}
	for _, m := range dom.Storages {
		add(m)
	}
	for _, m := range dom.Workflows {
		add(m)
	}
	for _, m := range dom.Events {
		add(m)
	}
	for _, m := range dom.Handlers {
		add(m)
	}
	for _, m := range dom.Screens {
		add(m)
	}
	for _, m := range dom.Configs {
		add(m)
	}
	return spans
}
