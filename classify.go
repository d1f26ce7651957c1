package edm

// IsStructuredCollectionType reports whether t is a collection whose element
// type is an entity or complex type.
func IsStructuredCollectionType(t Type) bool {
	c, ok := t.(*CollectionType)
	if !ok {
		return false
	}
	switch c.ElementType().TypeKind() {
	case TypeKindEntity, TypeKindComplex:
		return true
	}
	return false
}

// IsEntityCollectionType reports whether t is a collection of entities,
// returning the element entity type.
func IsEntityCollectionType(t Type) (*EntityType, bool) {
	c, ok := t.(*CollectionType)
	if !ok {
		return nil, false
	}
	et, ok := c.ElementType().(*EntityType)
	return et, ok
}

// IsEntityOrEntityCollectionType reports whether t is an entity type or a
// collection of entities, returning the entity type either way.
func IsEntityOrEntityCollectionType(t Type) (*EntityType, bool) {
	if et, ok := t.(*EntityType); ok {
		return et, true
	}
	return IsEntityCollectionType(t)
}
