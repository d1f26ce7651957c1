package edm

import (
	"errors"
	"testing"
)

func TestResolver_ResolveTypeExactModeNeverFallsBack(t *testing.T) {
	model := buildShopModel()
	r := Resolver{}

	found, err := r.ResolveType(model, "Shop.Product")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found != model.FindType("Shop.Product") {
		t.Error("Expected exact resolution to match Model.FindType")
	}

	found, err = r.ResolveType(model, "shop.product")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("Expected nil in case-sensitive mode, got %v", found)
	}
}

func TestResolver_ResolveTypeCaseInsensitive(t *testing.T) {
	model := buildShopModel()
	r := Resolver{EnableCaseInsensitive: true}

	found, err := r.ResolveType(model, "shop.product")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("Expected case-insensitive match for shop.product, got nil")
	}
	if found.FullName() != "Shop.Product" {
		t.Errorf("Expected %q, got %q", "Shop.Product", found.FullName())
	}

	found, err = r.ResolveType(model, "shop.nothere")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("Expected nil for an unknown identifier, got %v", found)
	}
}

func TestResolver_ResolveTypeAcrossReferencedModels(t *testing.T) {
	referenced := NewModel()
	referenced.AddElement(NewComplexType("Common", "Address"))

	model := buildShopModel()
	model.AddReferencedModel(referenced)
	r := Resolver{EnableCaseInsensitive: true}

	found, err := r.ResolveType(model, "common.ADDRESS")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found == nil || found.FullName() != "Common.Address" {
		t.Errorf("Expected Common.Address from the referenced model, got %v", found)
	}
}

func TestResolver_ResolveTypeAmbiguousAcrossModels(t *testing.T) {
	// M and referenced model R both declare Ns.Customer; the exact lookup
	// finds M's copy, but a case-mismatched identifier sees both.
	model := NewModel()
	model.AddElement(NewEntityType("Ns", "Customer"))
	referenced := NewModel()
	referenced.AddElement(NewEntityType("Ns", "Customer"))
	model.AddReferencedModel(referenced)

	r := Resolver{EnableCaseInsensitive: true}
	_, err := r.ResolveType(model, "ns.customer")
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Expected AmbiguousMatchError, got %v", err)
	}
	if ambiguous.Name != "ns.customer" {
		t.Errorf("Expected error to carry %q, got %q", "ns.customer", ambiguous.Name)
	}

	// The exact spelling still resolves: the primary model wins before the
	// fallback ever runs.
	found, err := r.ResolveType(model, "Ns.Customer")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found != model.FindDeclaredType("Ns.Customer") {
		t.Error("Expected the exact lookup to short-circuit to the primary model's type")
	}
}

func TestResolver_ResolveTypeAmbiguousWithinModel(t *testing.T) {
	model := NewModel()
	model.AddElement(NewEntityType("Ns", "Order"))
	model.AddElement(NewEntityType("Ns", "ORDER"))

	r := Resolver{EnableCaseInsensitive: true}
	_, err := r.ResolveType(model, "ns.order")
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Expected AmbiguousMatchError, got %v", err)
	}
}

func TestResolver_ResolveProperty(t *testing.T) {
	model := buildShopModel()
	person := model.FindDeclaredType("Shop.Person").(*EntityType)

	exact := Resolver{}
	p, err := exact.ResolveProperty(person, "name")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("Expected nil for case-sensitive resolve of %q, got %v", "name", p)
	}

	insensitive := Resolver{EnableCaseInsensitive: true}
	p, err = insensitive.ResolveProperty(person, "name")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("Expected case-insensitive resolve of name to find Name, got nil")
	}
	if p.Name() != "Name" {
		t.Errorf("Expected property %q, got %q", "Name", p.Name())
	}
}

func TestResolver_ResolvePropertyAmbiguous(t *testing.T) {
	// Property names are unique case-sensitively but not case-insensitively.
	et := NewEntityType("Ns", "Thing")
	et.AddStructuralProperty("Value", PrimitiveString)
	et.AddStructuralProperty("VALUE", PrimitiveString)

	r := Resolver{EnableCaseInsensitive: true}

	// The exact spelling short-circuits before the ambiguity is visible.
	p, err := r.ResolveProperty(et, "Value")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p == nil || p.Name() != "Value" {
		t.Errorf("Expected exact match for Value, got %v", p)
	}

	_, err = r.ResolveProperty(et, "value")
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Expected AmbiguousMatchError, got %v", err)
	}
}

func TestResolver_ResolveNavigationSource(t *testing.T) {
	model := buildShopModel()

	exact := Resolver{}
	s, err := exact.ResolveNavigationSource(model, "products")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil in case-sensitive mode, got %v", s)
	}

	insensitive := Resolver{EnableCaseInsensitive: true}
	s, err = insensitive.ResolveNavigationSource(model, "products")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s == nil || s.Name() != "Products" {
		t.Errorf("Expected Products, got %v", s)
	}

	s, err = insensitive.ResolveNavigationSource(model, "me")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s == nil || s.ContainerElementKind() != ContainerElementKindSingleton {
		t.Errorf("Expected the Me singleton, got %v", s)
	}
}

func TestResolver_ResolveNavigationSourceNoContainer(t *testing.T) {
	model := NewModel()
	for _, insensitive := range []bool{false, true} {
		r := Resolver{EnableCaseInsensitive: insensitive}
		s, err := r.ResolveNavigationSource(model, "Products")
		if err != nil {
			t.Fatalf("Unexpected error (caseInsensitive=%v): %v", insensitive, err)
		}
		if s != nil {
			t.Errorf("Expected nil on a container-less model (caseInsensitive=%v), got %v", insensitive, s)
		}
	}
}

func TestResolver_ResolveNavigationSourceAmbiguous(t *testing.T) {
	model := NewModel()
	et := NewEntityType("Ns", "Person")
	model.AddElement(et)
	container := model.AddEntityContainer("Ns", "Default")
	container.AddEntitySet("People", et)
	container.AddEntitySet("PEOPLE", et)

	r := Resolver{EnableCaseInsensitive: true}
	_, err := r.ResolveNavigationSource(model, "people")
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Expected AmbiguousMatchError, got %v", err)
	}
	if ambiguous.Name != "people" {
		t.Errorf("Expected error to carry %q, got %q", "people", ambiguous.Name)
	}
}
