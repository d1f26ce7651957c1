package edm

// PropertyKind identifies the concrete kind of a property.
type PropertyKind int

const (
	PropertyKindStructural PropertyKind = iota + 1
	PropertyKindNavigation
)

// Property is a structural or navigation property of a structured type.
type Property interface {
	// Name returns the property name, unique within its declaring type.
	Name() string
	// PropertyKind identifies the concrete property variant.
	PropertyKind() PropertyKind
	// Type returns the property's type. For a collection-valued navigation
	// property this is a collection of the target entity type.
	Type() Type
	// DeclaringType returns the structured type the property is declared on.
	DeclaringType() StructuredType
}

// StructuredType is an entity or complex type: a named type owning an ordered
// sequence of properties, optionally deriving from a base type.
type StructuredType interface {
	SchemaType
	// ElementKind identifies the concrete element variant.
	ElementKind() ElementKind
	// BaseType returns the base type, or nil when the type has none.
	BaseType() StructuredType
	// DeclaredProperties returns the properties declared directly on this
	// type, in declaration order.
	DeclaredProperties() []Property
	// Properties returns all properties, base types first, in declaration
	// order.
	Properties() []Property
	// FindProperty returns the property with the exact given name, searching
	// base types, or nil when no such property exists.
	FindProperty(name string) Property
}

// structuredType carries the property storage shared by entity and complex
// types.
type structuredType struct {
	schemaElement
	base     StructuredType
	declared []Property
	index    map[string]Property
}

func (t *structuredType) BaseType() StructuredType { return t.base }

func (t *structuredType) DeclaredProperties() []Property { return t.declared }

func (t *structuredType) Properties() []Property {
	if t.base == nil {
		return t.declared
	}
	inherited := t.base.Properties()
	all := make([]Property, 0, len(inherited)+len(t.declared))
	all = append(all, inherited...)
	all = append(all, t.declared...)
	return all
}

func (t *structuredType) FindProperty(name string) Property {
	if p, ok := t.index[name]; ok {
		return p
	}
	if t.base != nil {
		return t.base.FindProperty(name)
	}
	return nil
}

// addProperty appends p. Property names must be unique within the declaring
// type; the first declaration wins for lookup purposes.
func (t *structuredType) addProperty(name string, p Property) {
	if t.index == nil {
		t.index = make(map[string]Property)
	}
	t.declared = append(t.declared, p)
	if _, ok := t.index[name]; !ok {
		t.index[name] = p
	}
}

// IsOrInheritsFrom reports whether t is ancestor or derives from it.
func IsOrInheritsFrom(t, ancestor StructuredType) bool {
	for cur := t; cur != nil; cur = cur.BaseType() {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// EntityType is a named structured type with identity.
type EntityType struct {
	structuredType
	key      []*StructuralProperty
	abstract bool
}

// NewEntityType creates an entity type in the given namespace.
func NewEntityType(namespace, name string) *EntityType {
	t := &EntityType{}
	t.namespace = namespace
	t.name = name
	return t
}

func (t *EntityType) ElementKind() ElementKind { return ElementKindEntityType }

func (t *EntityType) TypeKind() TypeKind { return TypeKindEntity }

// SetBaseType declares base as the type this entity type derives from.
func (t *EntityType) SetBaseType(base *EntityType) {
	if base != nil {
		t.base = base
	}
}

// SetAbstract marks the type as abstract.
func (t *EntityType) SetAbstract(abstract bool) { t.abstract = abstract }

// IsAbstract reports whether the type is abstract.
func (t *EntityType) IsAbstract() bool { return t.abstract }

// AddKey declares the given structural properties as the entity key.
func (t *EntityType) AddKey(props ...*StructuralProperty) {
	t.key = append(t.key, props...)
}

// Key returns the entity key, falling back to the base type's key when this
// type declares none.
func (t *EntityType) Key() []*StructuralProperty {
	if len(t.key) > 0 {
		return t.key
	}
	if base, ok := t.base.(*EntityType); ok {
		return base.Key()
	}
	return nil
}

// AddStructuralProperty declares a structural property on the type. The name
// must be unique within the type. Properties are nullable by default.
func (t *EntityType) AddStructuralProperty(name string, typ Type) *StructuralProperty {
	p := newStructuralProperty(t, name, typ)
	t.addProperty(name, p)
	return p
}

// AddNavigationProperty declares a navigation property targeting another
// entity type.
func (t *EntityType) AddNavigationProperty(name string, target *EntityType, collection bool) *NavigationProperty {
	p := newNavigationProperty(t, name, target, collection)
	t.addProperty(name, p)
	return p
}

// ComplexType is a named structured type without identity.
type ComplexType struct {
	structuredType
	abstract bool
}

// NewComplexType creates a complex type in the given namespace.
func NewComplexType(namespace, name string) *ComplexType {
	t := &ComplexType{}
	t.namespace = namespace
	t.name = name
	return t
}

func (t *ComplexType) ElementKind() ElementKind { return ElementKindComplexType }

func (t *ComplexType) TypeKind() TypeKind { return TypeKindComplex }

// SetBaseType declares base as the type this complex type derives from.
func (t *ComplexType) SetBaseType(base *ComplexType) {
	if base != nil {
		t.base = base
	}
}

// SetAbstract marks the type as abstract.
func (t *ComplexType) SetAbstract(abstract bool) { t.abstract = abstract }

// IsAbstract reports whether the type is abstract.
func (t *ComplexType) IsAbstract() bool { return t.abstract }

// AddStructuralProperty declares a structural property on the type. The name
// must be unique within the type. Properties are nullable by default.
func (t *ComplexType) AddStructuralProperty(name string, typ Type) *StructuralProperty {
	p := newStructuralProperty(t, name, typ)
	t.addProperty(name, p)
	return p
}

// AddNavigationProperty declares a navigation property targeting an entity
// type.
func (t *ComplexType) AddNavigationProperty(name string, target *EntityType, collection bool) *NavigationProperty {
	p := newNavigationProperty(t, name, target, collection)
	t.addProperty(name, p)
	return p
}

// StructuralProperty is a primitive-, complex- or enum-typed property.
type StructuralProperty struct {
	name         string
	declaring    StructuredType
	typ          Type
	nullable     bool
	defaultValue string
	maxLength    int
	precision    int
	scale        int
}

func newStructuralProperty(declaring StructuredType, name string, typ Type) *StructuralProperty {
	return &StructuralProperty{
		name:      name,
		declaring: declaring,
		typ:       typ,
		nullable:  true,
	}
}

func (p *StructuralProperty) Name() string { return p.name }

func (p *StructuralProperty) PropertyKind() PropertyKind { return PropertyKindStructural }

func (p *StructuralProperty) Type() Type { return p.typ }

func (p *StructuralProperty) DeclaringType() StructuredType { return p.declaring }

// Nullable reports whether the property accepts null values.
func (p *StructuralProperty) Nullable() bool { return p.nullable }

// SetNullable overrides the default nullability. Returns p for chaining.
func (p *StructuralProperty) SetNullable(nullable bool) *StructuralProperty {
	p.nullable = nullable
	return p
}

// DefaultValue returns the declared default value literal, if any.
func (p *StructuralProperty) DefaultValue() string { return p.defaultValue }

// SetDefaultValue declares a default value literal. Returns p for chaining.
func (p *StructuralProperty) SetDefaultValue(value string) *StructuralProperty {
	p.defaultValue = value
	return p
}

// MaxLength returns the maximum length facet, zero when unset.
func (p *StructuralProperty) MaxLength() int { return p.maxLength }

// SetMaxLength declares the maximum length facet. Returns p for chaining.
func (p *StructuralProperty) SetMaxLength(length int) *StructuralProperty {
	p.maxLength = length
	return p
}

// Precision returns the precision facet, zero when unset.
func (p *StructuralProperty) Precision() int { return p.precision }

// Scale returns the scale facet, zero when unset.
func (p *StructuralProperty) Scale() int { return p.scale }

// SetPrecision declares precision and scale facets. Returns p for chaining.
func (p *StructuralProperty) SetPrecision(precision, scale int) *StructuralProperty {
	p.precision = precision
	p.scale = scale
	return p
}

// NavigationProperty links a structured type to an entity or entity
// collection.
type NavigationProperty struct {
	name           string
	declaring      StructuredType
	target         *EntityType
	collection     bool
	containsTarget bool
	partner        string
	nullable       bool
}

func newNavigationProperty(declaring StructuredType, name string, target *EntityType, collection bool) *NavigationProperty {
	return &NavigationProperty{
		name:       name,
		declaring:  declaring,
		target:     target,
		collection: collection,
		nullable:   !collection,
	}
}

func (p *NavigationProperty) Name() string { return p.name }

func (p *NavigationProperty) PropertyKind() PropertyKind { return PropertyKindNavigation }

// Type returns the target entity type, wrapped in a collection type for
// collection-valued navigation properties.
func (p *NavigationProperty) Type() Type {
	if p.collection {
		return NewCollectionType(p.target)
	}
	return p.target
}

func (p *NavigationProperty) DeclaringType() StructuredType { return p.declaring }

// TargetEntityType returns the entity type the navigation leads to.
func (p *NavigationProperty) TargetEntityType() *EntityType { return p.target }

// IsCollection reports whether the navigation is collection-valued.
func (p *NavigationProperty) IsCollection() bool { return p.collection }

// ContainsTarget reports whether the target's lifetime is owned by the
// source. Contained navigations have no separate navigation property binding.
func (p *NavigationProperty) ContainsTarget() bool { return p.containsTarget }

// SetContainsTarget marks the navigation as containment. Returns p for
// chaining.
func (p *NavigationProperty) SetContainsTarget(contains bool) *NavigationProperty {
	p.containsTarget = contains
	return p
}

// Partner returns the name of the partner navigation property on the target
// type, if declared.
func (p *NavigationProperty) Partner() string { return p.partner }

// SetPartner declares the partner navigation property name. Returns p for
// chaining.
func (p *NavigationProperty) SetPartner(partner string) *NavigationProperty {
	p.partner = partner
	return p
}

// Nullable reports whether the navigation accepts a null target. Collection
// navigations are never nullable.
func (p *NavigationProperty) Nullable() bool { return p.nullable }

// SetNullable overrides the default nullability. Returns p for chaining.
func (p *NavigationProperty) SetNullable(nullable bool) *NavigationProperty {
	p.nullable = nullable && !p.collection
	return p
}
