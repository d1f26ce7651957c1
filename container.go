package edm

// ContainerElementKind identifies the concrete kind of a container element.
type ContainerElementKind int

const (
	ContainerElementKindEntitySet ContainerElementKind = iota + 1
	ContainerElementKindSingleton
	ContainerElementKindFunctionImport
	ContainerElementKindActionImport
)

// ContainerElement is an element declared inside an entity container: an
// entity set, a singleton, or an operation import.
type ContainerElement interface {
	// Name returns the element name, unique among navigation sources within
	// the container. Operation imports may share a name for overloading.
	Name() string
	// ContainerElementKind identifies the concrete element variant.
	ContainerElementKind() ContainerElementKind
	// Container returns the declaring container.
	Container() *EntityContainer
}

// EntityContainer groups the navigation sources and operation imports exposed
// by a model. A model has at most one container.
type EntityContainer struct {
	schemaElement
	elements []ContainerElement
	sources  map[string]NavigationSource
}

func newEntityContainer(namespace, name string) *EntityContainer {
	return &EntityContainer{
		schemaElement: schemaElement{namespace: namespace, name: name},
		sources:       make(map[string]NavigationSource),
	}
}

func (c *EntityContainer) ElementKind() ElementKind { return ElementKindEntityContainer }

// Elements returns all container elements in declaration order.
func (c *EntityContainer) Elements() []ContainerElement { return c.elements }

// AddEntitySet declares an entity set over the given entity type.
func (c *EntityContainer) AddEntitySet(name string, entityType *EntityType) *EntitySet {
	s := &EntitySet{}
	s.name = name
	s.container = c
	s.entityType = entityType
	c.addNavigationSource(name, s)
	return s
}

// AddSingleton declares a singleton of the given entity type.
func (c *EntityContainer) AddSingleton(name string, entityType *EntityType) *Singleton {
	s := &Singleton{}
	s.name = name
	s.container = c
	s.entityType = entityType
	c.addNavigationSource(name, s)
	return s
}

func (c *EntityContainer) addNavigationSource(name string, s NavigationSource) {
	c.elements = append(c.elements, s)
	if _, ok := c.sources[name]; !ok {
		c.sources[name] = s
	}
}

// AddFunctionImport exposes a function through the container.
func (c *EntityContainer) AddFunctionImport(name string, function *Function) *FunctionImport {
	imp := &FunctionImport{operationImport{name: name, container: c, operation: function}}
	c.elements = append(c.elements, imp)
	return imp
}

// AddActionImport exposes an action through the container.
func (c *EntityContainer) AddActionImport(name string, action *Action) *ActionImport {
	imp := &ActionImport{operationImport{name: name, container: c, operation: action}}
	c.elements = append(c.elements, imp)
	return imp
}

// FindNavigationSource returns the declared entity set or singleton with the
// exact given name, or nil.
func (c *EntityContainer) FindNavigationSource(name string) NavigationSource {
	return c.sources[name]
}

// FindOperationImports returns all operation imports with the exact given
// name. Imports may legitimately share a name for overload resolution.
func (c *EntityContainer) FindOperationImports(name string) []OperationImport {
	imports := []OperationImport{}
	for _, el := range c.elements {
		imp, ok := el.(OperationImport)
		if !ok {
			continue
		}
		if imp.Name() == name {
			imports = append(imports, imp)
		}
	}
	return imports
}

// NavigationSource is an entity set or singleton: a named source of entities
// that navigation properties can be resolved against.
type NavigationSource interface {
	ContainerElement
	// EntityType returns the entity type of the source's entities.
	EntityType() *EntityType
	// NavigationPropertyBindings returns all declared bindings in declaration
	// order.
	NavigationPropertyBindings() []*NavigationPropertyBinding
	// FindNavigationPropertyBindings returns the declared bindings for the
	// given navigation property, in declaration order.
	FindNavigationPropertyBindings(property *NavigationProperty) []*NavigationPropertyBinding
	// AddNavigationPropertyBinding declares where property leads when
	// navigated from this source. An empty path declares the default binding
	// path, which is just the property name.
	AddNavigationPropertyBinding(property *NavigationProperty, target NavigationSource, path ...string) *NavigationPropertyBinding
}

// navigationSource carries the state shared by entity sets and singletons.
type navigationSource struct {
	name       string
	container  *EntityContainer
	entityType *EntityType
	bindings   []*NavigationPropertyBinding
}

func (s *navigationSource) Name() string { return s.name }

func (s *navigationSource) Container() *EntityContainer { return s.container }

func (s *navigationSource) EntityType() *EntityType { return s.entityType }

func (s *navigationSource) NavigationPropertyBindings() []*NavigationPropertyBinding {
	return s.bindings
}

func (s *navigationSource) FindNavigationPropertyBindings(property *NavigationProperty) []*NavigationPropertyBinding {
	var matches []*NavigationPropertyBinding
	for _, b := range s.bindings {
		if b.property == property {
			matches = append(matches, b)
		}
	}
	return matches
}

// AddNavigationPropertyBinding declares where the given navigation property
// leads when navigated from this source. An empty path declares the default
// binding path, which is just the property name.
func (s *navigationSource) AddNavigationPropertyBinding(property *NavigationProperty, target NavigationSource, path ...string) *NavigationPropertyBinding {
	expr := NewPathExpression(path...)
	if len(path) == 0 {
		expr = NewPathExpression(property.Name())
	}
	b := &NavigationPropertyBinding{property: property, path: expr, target: target}
	s.bindings = append(s.bindings, b)
	return b
}

// EntitySet is a named collection of entities of a single entity type.
type EntitySet struct {
	navigationSource
}

func (s *EntitySet) ContainerElementKind() ContainerElementKind {
	return ContainerElementKindEntitySet
}

// Singleton is a named single entity instance.
type Singleton struct {
	navigationSource
}

func (s *Singleton) ContainerElementKind() ContainerElementKind {
	return ContainerElementKindSingleton
}

// NavigationPropertyBinding maps a navigation property, qualified by a binding
// path, to the navigation source it leads to.
type NavigationPropertyBinding struct {
	property *NavigationProperty
	path     PathExpression
	target   NavigationSource
}

// NavigationProperty returns the bound navigation property.
func (b *NavigationPropertyBinding) NavigationProperty() *NavigationProperty { return b.property }

// Path returns the binding path. Its last segment is the navigation property
// name.
func (b *NavigationPropertyBinding) Path() PathExpression { return b.path }

// Target returns the navigation source the binding leads to.
func (b *NavigationPropertyBinding) Target() NavigationSource { return b.target }

// OperationImport exposes a function or action through the container.
type OperationImport interface {
	ContainerElement
	// Operation returns the imported function or action.
	Operation() Operation
}

// operationImport carries the state shared by function and action imports.
type operationImport struct {
	name      string
	container *EntityContainer
	operation Operation
}

func (i *operationImport) Name() string { return i.name }

func (i *operationImport) Container() *EntityContainer { return i.container }

func (i *operationImport) Operation() Operation { return i.operation }

// FunctionImport exposes a function through the container.
type FunctionImport struct {
	operationImport
}

func (i *FunctionImport) ContainerElementKind() ContainerElementKind {
	return ContainerElementKindFunctionImport
}

// Function returns the imported function.
func (i *FunctionImport) Function() *Function {
	f, _ := i.operation.(*Function)
	return f
}

// ActionImport exposes an action through the container.
type ActionImport struct {
	operationImport
}

func (i *ActionImport) ContainerElementKind() ContainerElementKind {
	return ContainerElementKindActionImport
}

// Action returns the imported action.
func (i *ActionImport) Action() *Action {
	a, _ := i.operation.(*Action)
	return a
}
