package edm

import "strings"

// Model is an immutable schema graph: a flat collection of schema elements, an
// optional entity container, and an ordered set of referenced models that are
// fully visible during lookup.
//
// Build a model once, then only read it. All Find methods are case-sensitive
// exact lookups; use Resolver for case-insensitive resolution.
type Model struct {
	elements   []SchemaElement
	byFullName map[string]SchemaElement
	container  *EntityContainer
	referenced []*Model
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{byFullName: make(map[string]SchemaElement)}
}

// AddElement declares a schema element. Full names must be unique within the
// model; the first declaration wins for lookup purposes.
func (m *Model) AddElement(e SchemaElement) {
	m.elements = append(m.elements, e)
	if _, ok := m.byFullName[e.FullName()]; !ok {
		m.byFullName[e.FullName()] = e
	}
}

// SchemaElements returns all declared schema elements in declaration order.
func (m *Model) SchemaElements() []SchemaElement { return m.elements }

// AddReferencedModel makes ref's schema elements visible for lookup within
// this model's scope.
func (m *Model) AddReferencedModel(ref *Model) {
	if ref != nil && ref != m {
		m.referenced = append(m.referenced, ref)
	}
}

// ReferencedModels returns the referenced models in declaration order.
func (m *Model) ReferencedModels() []*Model { return m.referenced }

// AddEntityContainer declares the model's entity container. A model has at
// most one; repeated calls return the existing container.
func (m *Model) AddEntityContainer(namespace, name string) *EntityContainer {
	if m.container != nil {
		return m.container
	}
	m.container = newEntityContainer(namespace, name)
	m.AddElement(m.container)
	return m.container
}

// EntityContainer returns the model's container, or nil when none is
// declared.
func (m *Model) EntityContainer() *EntityContainer { return m.container }

// FindDeclaredType returns the schema type declared in this model under the
// exact qualified name, or nil.
func (m *Model) FindDeclaredType(qualifiedName string) SchemaType {
	if t, ok := m.byFullName[qualifiedName].(SchemaType); ok {
		return t
	}
	return nil
}

// FindType returns the schema type with the exact qualified name, searching
// this model, the built-in Edm primitives, and every referenced model.
// Returns nil when no such type exists.
func (m *Model) FindType(qualifiedName string) SchemaType {
	if strings.HasPrefix(qualifiedName, "Edm.") {
		if p := PrimitiveByName(qualifiedName); p != nil {
			return p
		}
	}
	for _, model := range m.allModels() {
		if t := model.FindDeclaredType(qualifiedName); t != nil {
			return t
		}
	}
	return nil
}

// FindDeclaredNavigationSource returns the entity set or singleton declared
// in this model's container under the exact name, or nil.
func (m *Model) FindDeclaredNavigationSource(name string) NavigationSource {
	if m.container == nil {
		return nil
	}
	return m.container.FindNavigationSource(name)
}

// FindDeclaredOperationImports returns all operation imports declared under
// the exact name. Returns nil when the model has no container, and an empty
// slice when the container declares no import with that name.
func (m *Model) FindDeclaredOperationImports(name string) []OperationImport {
	if m.container == nil {
		return nil
	}
	return m.container.FindOperationImports(name)
}

// FindDeclaredOperations returns all operations declared in this model under
// the exact qualified name. Operations may share a name for overloading.
func (m *Model) FindDeclaredOperations(qualifiedName string) []Operation {
	var ops []Operation
	for _, e := range m.elements {
		op, ok := e.(Operation)
		if !ok {
			continue
		}
		if op.FullName() == qualifiedName {
			ops = append(ops, op)
		}
	}
	return ops
}

// FindOperations returns all operations with the exact qualified name across
// this model and every referenced model.
func (m *Model) FindOperations(qualifiedName string) []Operation {
	var ops []Operation
	for _, model := range m.allModels() {
		ops = append(ops, model.FindDeclaredOperations(qualifiedName)...)
	}
	return ops
}

// allModels returns this model followed by each directly referenced model,
// visiting every model exactly once even when referenced repeatedly.
func (m *Model) allModels() []*Model {
	models := make([]*Model, 0, 1+len(m.referenced))
	models = append(models, m)
	seen := map[*Model]bool{m: true}
	for _, ref := range m.referenced {
		if !seen[ref] {
			seen[ref] = true
			models = append(models, ref)
		}
	}
	return models
}
