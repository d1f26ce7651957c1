package edm

import "testing"

func TestIsStructuredCollectionType(t *testing.T) {
	entity := NewEntityType("Shop", "Product")
	complexType := NewComplexType("Shop", "Dimensions")
	enum := NewEnumType("Shop", "Color", nil, false)

	cases := []struct {
		name string
		typ  Type
		want bool
	}{
		{"entity collection", NewCollectionType(entity), true},
		{"complex collection", NewCollectionType(complexType), true},
		{"primitive collection", NewCollectionType(PrimitiveString), false},
		{"enum collection", NewCollectionType(enum), false},
		{"bare entity", entity, false},
		{"bare primitive", PrimitiveString, false},
	}
	for _, tc := range cases {
		if got := IsStructuredCollectionType(tc.typ); got != tc.want {
			t.Errorf("%s: Expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsEntityCollectionType(t *testing.T) {
	entity := NewEntityType("Shop", "Product")

	et, ok := IsEntityCollectionType(NewCollectionType(entity))
	if !ok {
		t.Fatal("Expected a collection of entities to be recognized")
	}
	if et != entity {
		t.Error("Expected the element entity type to be returned")
	}

	if _, ok := IsEntityCollectionType(NewCollectionType(PrimitiveInt32)); ok {
		t.Error("Expected a primitive collection to be rejected")
	}
	if _, ok := IsEntityCollectionType(entity); ok {
		t.Error("Expected a bare entity type to be rejected")
	}
}

func TestIsEntityOrEntityCollectionType(t *testing.T) {
	entity := NewEntityType("Shop", "Product")

	et, ok := IsEntityOrEntityCollectionType(entity)
	if !ok || et != entity {
		t.Error("Expected a bare entity type to be accepted directly")
	}

	et, ok = IsEntityOrEntityCollectionType(NewCollectionType(entity))
	if !ok || et != entity {
		t.Error("Expected an entity collection to be accepted")
	}

	if _, ok := IsEntityOrEntityCollectionType(NewCollectionType(NewComplexType("Shop", "Dimensions"))); ok {
		t.Error("Expected a complex collection to be rejected")
	}
}
