package edm

// TypeKind identifies the concrete kind of a type.
type TypeKind int

const (
	TypeKindNone TypeKind = iota
	TypeKindPrimitive
	TypeKindEntity
	TypeKindComplex
	TypeKindEnum
	TypeKindCollection
)

// Type is implemented by every type usable for properties, parameters and
// return types: primitive, entity, complex and enumeration types, and
// collections of any of those.
type Type interface {
	TypeKind() TypeKind
}

// SchemaType is a named type that can be referenced by its qualified name.
type SchemaType interface {
	Type
	Name() string
	FullName() string
}

// PrimitiveType is one of the built-in Edm.* types. The package declares a
// singleton value per primitive; compare them by identity.
type PrimitiveType struct {
	name string
}

func (t *PrimitiveType) TypeKind() TypeKind { return TypeKindPrimitive }

func (t *PrimitiveType) Name() string { return t.name }

func (t *PrimitiveType) FullName() string { return "Edm." + t.name }

// Built-in primitive types defined by the OData v4.01 specification.
var (
	PrimitiveBinary         = &PrimitiveType{"Binary"}
	PrimitiveBoolean        = &PrimitiveType{"Boolean"}
	PrimitiveByte           = &PrimitiveType{"Byte"}
	PrimitiveDate           = &PrimitiveType{"Date"}
	PrimitiveDateTimeOffset = &PrimitiveType{"DateTimeOffset"}
	PrimitiveDecimal        = &PrimitiveType{"Decimal"}
	PrimitiveDouble         = &PrimitiveType{"Double"}
	PrimitiveDuration       = &PrimitiveType{"Duration"}
	PrimitiveGuid           = &PrimitiveType{"Guid"}
	PrimitiveInt16          = &PrimitiveType{"Int16"}
	PrimitiveInt32          = &PrimitiveType{"Int32"}
	PrimitiveInt64          = &PrimitiveType{"Int64"}
	PrimitiveSByte          = &PrimitiveType{"SByte"}
	PrimitiveSingle         = &PrimitiveType{"Single"}
	PrimitiveStream         = &PrimitiveType{"Stream"}
	PrimitiveString         = &PrimitiveType{"String"}
	PrimitiveTimeOfDay      = &PrimitiveType{"TimeOfDay"}

	// Geospatial primitives.
	PrimitiveGeography           = &PrimitiveType{"Geography"}
	PrimitiveGeographyPoint      = &PrimitiveType{"GeographyPoint"}
	PrimitiveGeographyLineString = &PrimitiveType{"GeographyLineString"}
	PrimitiveGeographyPolygon    = &PrimitiveType{"GeographyPolygon"}
	PrimitiveGeometry            = &PrimitiveType{"Geometry"}
	PrimitiveGeometryPoint       = &PrimitiveType{"GeometryPoint"}
	PrimitiveGeometryLineString  = &PrimitiveType{"GeometryLineString"}
	PrimitiveGeometryPolygon     = &PrimitiveType{"GeometryPolygon"}
)

var primitivesByName = map[string]*PrimitiveType{}

func init() {
	for _, p := range []*PrimitiveType{
		PrimitiveBinary, PrimitiveBoolean, PrimitiveByte, PrimitiveDate,
		PrimitiveDateTimeOffset, PrimitiveDecimal, PrimitiveDouble,
		PrimitiveDuration, PrimitiveGuid, PrimitiveInt16, PrimitiveInt32,
		PrimitiveInt64, PrimitiveSByte, PrimitiveSingle, PrimitiveStream,
		PrimitiveString, PrimitiveTimeOfDay,
		PrimitiveGeography, PrimitiveGeographyPoint, PrimitiveGeographyLineString,
		PrimitiveGeographyPolygon, PrimitiveGeometry, PrimitiveGeometryPoint,
		PrimitiveGeometryLineString, PrimitiveGeometryPolygon,
	} {
		primitivesByName[p.name] = p
		primitivesByName[p.FullName()] = p
	}
}

// PrimitiveByName returns the built-in primitive type for a name such as
// "Edm.String" or "String". Returns nil for unknown names.
func PrimitiveByName(name string) *PrimitiveType {
	return primitivesByName[name]
}

// CollectionType is a collection of a single element type.
type CollectionType struct {
	element Type
}

// NewCollectionType creates a collection type over element.
func NewCollectionType(element Type) *CollectionType {
	return &CollectionType{element: element}
}

func (t *CollectionType) TypeKind() TypeKind { return TypeKindCollection }

// ElementType returns the type of the collection's elements.
func (t *CollectionType) ElementType() Type { return t.element }

// EnumMember is a named constant of an enumeration type.
type EnumMember struct {
	Name  string
	Value int64
}

// EnumType is a named enumeration over an integral underlying type.
type EnumType struct {
	schemaElement
	underlying *PrimitiveType
	isFlags    bool
	members    []EnumMember
}

// NewEnumType creates an enumeration type. A nil underlying type defaults to
// Edm.Int32.
func NewEnumType(namespace, name string, underlying *PrimitiveType, isFlags bool) *EnumType {
	if underlying == nil {
		underlying = PrimitiveInt32
	}
	return &EnumType{
		schemaElement: schemaElement{namespace: namespace, name: name},
		underlying:    underlying,
		isFlags:       isFlags,
	}
}

func (t *EnumType) ElementKind() ElementKind { return ElementKindEnumType }

func (t *EnumType) TypeKind() TypeKind { return TypeKindEnum }

// UnderlyingType returns the integral type backing the enumeration.
func (t *EnumType) UnderlyingType() *PrimitiveType { return t.underlying }

// IsFlags reports whether members may be combined bitwise.
func (t *EnumType) IsFlags() bool { return t.isFlags }

// AddMember appends a named member with an explicit value.
func (t *EnumType) AddMember(name string, value int64) {
	t.members = append(t.members, EnumMember{Name: name, Value: value})
}

// Members returns the declared members in declaration order.
func (t *EnumType) Members() []EnumMember { return t.members }

// FindMember returns the member with the given name, or false if absent.
func (t *EnumType) FindMember(name string) (EnumMember, bool) {
	for _, m := range t.members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}
