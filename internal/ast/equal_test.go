package ast

import (
	"testing"

	"isl/internal/source"
)

func sampleDomain() *Domain {
	return &Domain{
		Name:    "Shop",
		Version: "1.0",
		Owner:   "team",
		Entities: []*Entity{
			{
				Name: "User",
				Fields: []*Field{
					{Name: "id", Type: &NamedType{Parts: []string{"UUID"}}},
					{Name: "email", Type: &NamedType{Parts: []string{"String"}}},
				},
			},
		},
		Enums: []*EnumDecl{
			{Name: "Status", Variants: []string{"Active", "Closed"}},
		},
	}
}

func TestEqualDomainIgnoresSpans(t *testing.T) {
	a := sampleDomain()
	b := sampleDomain()
	b.Sp = source.Span{File: 7, Start: 100, End: 200}
	b.NameSpan = source.Span{File: 7, Start: 107, End: 111}
	b.Entities[0].Sp = source.Span{File: 7, Start: 120, End: 180}
	b.Entities[0].Fields[0].NameSpan = source.Span{File: 7, Start: 130, End: 132}

	if !EqualDomain(a, b) {
		t.Fatal("domains differing only in spans must compare equal")
	}
}

func TestEqualDomainDetectsDifferences(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Domain)
	}{
		{"name", func(d *Domain) { d.Name = "Other" }},
		{"version", func(d *Domain) { d.Version = "2.0" }},
		{"owner", func(d *Domain) { d.Owner = "other-team" }},
		{"entity name", func(d *Domain) { d.Entities[0].Name = "Account" }},
		{"field type", func(d *Domain) { d.Entities[0].Fields[1].Type = &NamedType{Parts: []string{"Int"}} }},
		{"dropped field", func(d *Domain) { d.Entities[0].Fields = d.Entities[0].Fields[:1] }},
		{"enum variant", func(d *Domain) { d.Enums[0].Variants[1] = "Suspended" }},
		{"extra entity", func(d *Domain) { d.Entities = append(d.Entities, &Entity{Name: "Order"}) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := sampleDomain()
			b := sampleDomain()
			tc.mutate(b)
			if EqualDomain(a, b) {
				t.Fatal("expected domains to compare unequal")
			}
		})
	}
}

func TestEqualDomainNil(t *testing.T) {
	d := sampleDomain()
	if EqualDomain(nil, d) || EqualDomain(d, nil) {
		t.Fatal("nil must not equal a non-nil domain")
	}
	if !EqualDomain(nil, nil) {
		t.Fatal("two nil domains must compare equal")
	}
}
