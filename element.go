package edm

import "strings"

// ElementKind identifies the concrete kind of a schema element.
type ElementKind int

const (
	ElementKindNone ElementKind = iota
	ElementKindEntityType
	ElementKindComplexType
	ElementKindEnumType
	ElementKindFunction
	ElementKindAction
	ElementKindEntityContainer
)

// String returns a readable name for the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementKindEntityType:
		return "EntityType"
	case ElementKindComplexType:
		return "ComplexType"
	case ElementKindEnumType:
		return "EnumType"
	case ElementKindFunction:
		return "Function"
	case ElementKindAction:
		return "Action"
	case ElementKindEntityContainer:
		return "EntityContainer"
	default:
		return "None"
	}
}

// SchemaElement is implemented by every named element declared in a model:
// structured types, enumeration types, operations and the entity container.
type SchemaElement interface {
	// Name returns the unqualified name of the element.
	Name() string
	// FullName returns the namespace-qualified name of the element.
	FullName() string
	// ElementKind identifies the concrete element variant.
	ElementKind() ElementKind
}

// schemaElement carries the name and namespace shared by all schema elements.
type schemaElement struct {
	namespace string
	name      string
}

func (e *schemaElement) Name() string { return e.name }

func (e *schemaElement) Namespace() string { return e.namespace }

func (e *schemaElement) FullName() string {
	if e.namespace == "" {
		return e.name
	}
	return e.namespace + "." + e.name
}

// IsQualified reports whether name carries a namespace qualifier.
func IsQualified(name string) bool {
	return strings.Contains(name, ".")
}
