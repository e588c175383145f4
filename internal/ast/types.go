package ast

// Type is implemented by every type-expression node.
type Type interface {
	Node
	typeNode()
}

// NamedType references a primitive, a declared type, or a qualified name
// like `ct.Money`.
type NamedType struct {
	Base
	Parts []string
}

func (*NamedType) Kind() NodeKind { return KindNamedType }
func (*NamedType) typeNode()      {}

// Name returns the dotted form.
func (t *NamedType) Name() string {
	out := ""
	for i, p := range t.Parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// ListType is `List<T>`.
type ListType struct {
	Base
	Elem Type
}

func (*ListType) Kind() NodeKind { return KindListType }
func (*ListType) typeNode()      {}

// MapType is `Map<K, V>`.
type MapType struct {
	Base
	Key   Type
	Value Type
}

func (*MapType) Kind() NodeKind { return KindMapType }
func (*MapType) typeNode()      {}

// OptionalType is `T?`.
type OptionalType struct {
	Base
	Elem Type
}

func (*OptionalType) Kind() NodeKind { return KindOptionalType }
func (*OptionalType) typeNode()      {}

// UnionType is `A | B | C`.
type UnionType struct {
	Base
	Members []Type
}

func (*UnionType) Kind() NodeKind { return KindUnionType }
func (*UnionType) typeNode()      {}

// StructType is an inline `{ field* }` shape.
type StructType struct {
	Base
	Fields []*Field
}

func (*StructType) Kind() NodeKind { return KindStructType }
func (*StructType) typeNode()      {}

// ConstrainedType is `Base { name: expr, ... }`.
type ConstrainedType struct {
	Base
	Elem        Type
	Constraints []*Property
}

func (*ConstrainedType) Kind() NodeKind { return KindConstrainedType }
func (*ConstrainedType) typeNode()      {}

// GenericType is `Name<Args...>` for heads other than List and Map.
type GenericType struct {
	Base
	Name string
	Args []Type
}

func (*GenericType) Kind() NodeKind { return KindGenericType }
func (*GenericType) typeNode()      {}
