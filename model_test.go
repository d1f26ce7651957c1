package edm

import "testing"

// buildShopModel builds a small commerce schema used across resolution tests:
// products and categories with navigations both ways, a People set whose
// BestFriend navigation has no binding, and a Me singleton.
func buildShopModel() *Model {
	model := NewModel()

	product := NewEntityType("Shop", "Product")
	id := product.AddStructuralProperty("ID", PrimitiveInt64).SetNullable(false)
	product.AddStructuralProperty("Name", PrimitiveString)
	product.AddKey(id)

	category := NewEntityType("Shop", "Category")
	catID := category.AddStructuralProperty("ID", PrimitiveInt64).SetNullable(false)
	category.AddStructuralProperty("Name", PrimitiveString)
	category.AddKey(catID)

	product.AddNavigationProperty("Category", category, false)
	category.AddNavigationProperty("Products", product, true)

	person := NewEntityType("Shop", "Person")
	personID := person.AddStructuralProperty("ID", PrimitiveInt64).SetNullable(false)
	person.AddStructuralProperty("Name", PrimitiveString)
	person.AddKey(personID)
	person.AddNavigationProperty("BestFriend", person, false)
	person.AddNavigationProperty("Friends", person, true)

	model.AddElement(product)
	model.AddElement(category)
	model.AddElement(person)

	container := model.AddEntityContainer("Shop", "Default")
	products := container.AddEntitySet("Products", product)
	categories := container.AddEntitySet("Categories", category)
	container.AddEntitySet("People", person)
	container.AddSingleton("Me", person)

	products.AddNavigationPropertyBinding(
		product.FindProperty("Category").(*NavigationProperty), categories)
	categories.AddNavigationPropertyBinding(
		category.FindProperty("Products").(*NavigationProperty), products)

	return model
}

func TestModel_FindDeclaredType(t *testing.T) {
	model := buildShopModel()

	found := model.FindDeclaredType("Shop.Product")
	if found == nil {
		t.Fatal("Expected Shop.Product to be found, got nil")
	}
	if found.Name() != "Product" {
		t.Errorf("Expected name %q, got %q", "Product", found.Name())
	}

	if got := model.FindDeclaredType("Shop.Missing"); got != nil {
		t.Errorf("Expected nil for unknown type, got %v", got)
	}
	if got := model.FindDeclaredType("shop.product"); got != nil {
		t.Errorf("Expected nil for case-mismatched type, got %v", got)
	}
}

func TestModel_FindTypeSearchesReferencedModels(t *testing.T) {
	referenced := NewModel()
	referenced.AddElement(NewComplexType("Common", "Address"))

	model := buildShopModel()
	model.AddReferencedModel(referenced)

	found := model.FindType("Common.Address")
	if found == nil {
		t.Fatal("Expected Common.Address to be found through the referenced model, got nil")
	}
	if found.FullName() != "Common.Address" {
		t.Errorf("Expected full name %q, got %q", "Common.Address", found.FullName())
	}

	// Declared lookup must stay limited to the primary model.
	if got := model.FindDeclaredType("Common.Address"); got != nil {
		t.Errorf("Expected FindDeclaredType to ignore referenced models, got %v", got)
	}
}

func TestModel_FindTypeResolvesPrimitives(t *testing.T) {
	model := NewModel()
	found := model.FindType("Edm.String")
	if found != PrimitiveString {
		t.Errorf("Expected Edm.String primitive, got %v", found)
	}
	if got := model.FindType("Edm.Nope"); got != nil {
		t.Errorf("Expected nil for unknown primitive, got %v", got)
	}
}

func TestModel_FindDeclaredNavigationSource(t *testing.T) {
	model := buildShopModel()

	set := model.FindDeclaredNavigationSource("Products")
	if set == nil {
		t.Fatal("Expected Products entity set, got nil")
	}
	if set.ContainerElementKind() != ContainerElementKindEntitySet {
		t.Errorf("Expected entity set kind, got %v", set.ContainerElementKind())
	}

	me := model.FindDeclaredNavigationSource("Me")
	if me == nil {
		t.Fatal("Expected Me singleton, got nil")
	}
	if me.ContainerElementKind() != ContainerElementKindSingleton {
		t.Errorf("Expected singleton kind, got %v", me.ContainerElementKind())
	}

	if got := model.FindDeclaredNavigationSource("products"); got != nil {
		t.Errorf("Expected nil for case-mismatched name, got %v", got)
	}

	empty := NewModel()
	if got := empty.FindDeclaredNavigationSource("Products"); got != nil {
		t.Errorf("Expected nil on a model without a container, got %v", got)
	}
}

func TestModel_FindDeclaredOperationImports(t *testing.T) {
	model := buildShopModel()
	fn := NewFunction("Shop", "TopProducts", false)
	model.AddElement(fn)
	container := model.EntityContainer()
	container.AddFunctionImport("TopProducts", fn)
	container.AddFunctionImport("TopProducts", fn)

	imports := model.FindDeclaredOperationImports("TopProducts")
	if len(imports) != 2 {
		t.Fatalf("Expected 2 imports sharing the name, got %d", len(imports))
	}

	// No match inside an existing container yields empty, not nil.
	imports = model.FindDeclaredOperationImports("Missing")
	if imports == nil {
		t.Fatal("Expected empty slice for a missing import, got nil")
	}
	if len(imports) != 0 {
		t.Errorf("Expected no imports, got %d", len(imports))
	}

	// No container yields nil.
	empty := NewModel()
	if got := empty.FindDeclaredOperationImports("TopProducts"); got != nil {
		t.Errorf("Expected nil on a model without a container, got %v", got)
	}
}

func TestModel_AddEntityContainerIsIdempotent(t *testing.T) {
	model := NewModel()
	first := model.AddEntityContainer("Shop", "Default")
	second := model.AddEntityContainer("Other", "Extra")
	if first != second {
		t.Error("Expected repeated AddEntityContainer to return the existing container")
	}
	if model.EntityContainer().FullName() != "Shop.Default" {
		t.Errorf("Expected container full name %q, got %q", "Shop.Default", model.EntityContainer().FullName())
	}
}

func TestStructuredType_PropertiesIncludeBaseTypes(t *testing.T) {
	base := NewEntityType("Shop", "Item")
	baseID := base.AddStructuralProperty("ID", PrimitiveInt64).SetNullable(false)
	base.AddKey(baseID)

	derived := NewEntityType("Shop", "DiscountedItem")
	derived.SetBaseType(base)
	derived.AddStructuralProperty("Discount", PrimitiveDecimal)

	props := derived.Properties()
	if len(props) != 2 {
		t.Fatalf("Expected 2 properties including inherited, got %d", len(props))
	}
	if props[0].Name() != "ID" {
		t.Errorf("Expected inherited property first, got %q", props[0].Name())
	}

	if derived.FindProperty("ID") == nil {
		t.Error("Expected FindProperty to search the base chain")
	}
	if len(derived.Key()) != 1 {
		t.Errorf("Expected key inherited from base, got %d properties", len(derived.Key()))
	}
	if !IsOrInheritsFrom(derived, base) {
		t.Error("Expected derived type to inherit from base")
	}
	if IsOrInheritsFrom(base, derived) {
		t.Error("Expected base type not to inherit from derived")
	}
}
