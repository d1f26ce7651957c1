package edm

import (
	"errors"
	"fmt"
)

// Parameter is a declared parameter of a function or action.
type Parameter struct {
	name     string
	typ      Type
	nullable bool
}

func (p *Parameter) Name() string { return p.name }

func (p *Parameter) Type() Type { return p.typ }

// Nullable reports whether the parameter accepts null.
func (p *Parameter) Nullable() bool { return p.nullable }

// SetNullable overrides the default nullability. Returns p for chaining.
func (p *Parameter) SetNullable(nullable bool) *Parameter {
	p.nullable = nullable
	return p
}

// Operation is a function or action. A bound operation's first parameter is
// the binding parameter: the instance the operation is invoked on.
type Operation interface {
	SchemaElement
	// IsBound reports whether the operation is bound to an instance.
	IsBound() bool
	// IsFunction reports whether the operation is a function (as opposed to
	// an action).
	IsFunction() bool
	// Parameters returns the declared parameters in declaration order.
	Parameters() []*Parameter
	// BindingParameter returns the first parameter of a bound operation, or
	// nil for unbound or parameterless operations.
	BindingParameter() *Parameter
	// ReturnType returns the declared return type, or nil for actions without
	// one.
	ReturnType() Type
	// EntitySetPath returns the declared entity set path expression, or nil.
	EntitySetPath() PathExpression
	// TryGetRelativeEntitySetPath decomposes the operation's entity set path
	// into the binding parameter and the navigation steps leading from it.
	// It fails for unbound operations, operations without an entity set path,
	// and paths whose segments cannot be resolved against model.
	TryGetRelativeEntitySetPath(model *Model) (*RelativeEntitySetPath, error)
}

// operation carries the state shared by functions and actions.
type operation struct {
	schemaElement
	function      bool
	bound         bool
	params        []*Parameter
	returnType    Type
	entitySetPath PathExpression
}

func (o *operation) IsBound() bool { return o.bound }

func (o *operation) IsFunction() bool { return o.function }

func (o *operation) Parameters() []*Parameter { return o.params }

func (o *operation) BindingParameter() *Parameter {
	if !o.bound || len(o.params) == 0 {
		return nil
	}
	return o.params[0]
}

func (o *operation) ReturnType() Type { return o.returnType }

// SetReturnType declares the operation's return type.
func (o *operation) SetReturnType(t Type) { o.returnType = t }

func (o *operation) EntitySetPath() PathExpression { return o.entitySetPath }

// SetEntitySetPath declares the entity set path, e.g. ("bindingParam",
// "Orders").
func (o *operation) SetEntitySetPath(segments ...string) {
	o.entitySetPath = NewPathExpression(segments...)
}

// AddParameter declares a parameter. For bound operations the first parameter
// added is the binding parameter.
func (o *operation) AddParameter(name string, typ Type) *Parameter {
	p := &Parameter{name: name, typ: typ, nullable: true}
	o.params = append(o.params, p)
	return p
}

// RelativeEntitySetPath is the decomposed entity set path of a bound
// operation: the binding parameter, the navigation steps leading from it, and
// the entity type the path ends on.
type RelativeEntitySetPath struct {
	BindingParameter *Parameter
	Path             []*NavigationProperty
	LastEntityType   *EntityType
}

func (o *operation) TryGetRelativeEntitySetPath(model *Model) (*RelativeEntitySetPath, error) {
	if !o.bound || len(o.params) == 0 {
		return nil, fmt.Errorf("operation %s: entity set paths apply to bound operations only", o.FullName())
	}
	segments := o.entitySetPath.Segments()
	if len(segments) == 0 {
		return nil, fmt.Errorf("operation %s: no entity set path declared", o.FullName())
	}
	binding := o.params[0]
	if segments[0] != binding.Name() {
		return nil, fmt.Errorf("operation %s: entity set path must start with binding parameter %q, got %q",
			o.FullName(), binding.Name(), segments[0])
	}
	current, ok := IsEntityOrEntityCollectionType(binding.Type())
	if !ok {
		return nil, fmt.Errorf("operation %s: binding parameter %q is not an entity or entity collection",
			o.FullName(), binding.Name())
	}

	var steps []*NavigationProperty
	var errs []error
	for _, segment := range segments[1:] {
		if IsQualified(segment) {
			// Type cast segment: must name an entity type related to the
			// current one.
			cast, castOK := typeByName(model, segment).(*EntityType)
			if !castOK {
				errs = append(errs, fmt.Errorf("segment %q does not name an entity type", segment))
				break
			}
			if !IsOrInheritsFrom(cast, current) && !IsOrInheritsFrom(current, cast) {
				errs = append(errs, fmt.Errorf("type cast %q is unrelated to %s", segment, current.FullName()))
				break
			}
			current = cast
			continue
		}
		nav, navOK := current.FindProperty(segment).(*NavigationProperty)
		if !navOK {
			errs = append(errs, fmt.Errorf("segment %q is not a navigation property of %s", segment, current.FullName()))
			break
		}
		steps = append(steps, nav)
		current = nav.TargetEntityType()
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("operation %s: invalid entity set path %s: %w",
			o.FullName(), o.entitySetPath, errors.Join(errs...))
	}
	return &RelativeEntitySetPath{
		BindingParameter: binding,
		Path:             steps,
		LastEntityType:   current,
	}, nil
}

// typeByName looks a schema type up without tripping over typed-nil interface
// values.
func typeByName(model *Model, name string) SchemaType {
	if model == nil {
		return nil
	}
	return model.FindType(name)
}

// Function is a side-effect-free operation.
type Function struct {
	operation
}

// NewFunction creates a function. Bound functions receive the instance they
// operate on as their first parameter.
func NewFunction(namespace, name string, bound bool) *Function {
	f := &Function{}
	f.namespace = namespace
	f.name = name
	f.function = true
	f.bound = bound
	return f
}

func (f *Function) ElementKind() ElementKind { return ElementKindFunction }

// Action is an operation that may have side effects.
type Action struct {
	operation
}

// NewAction creates an action. Bound actions receive the instance they
// operate on as their first parameter.
func NewAction(namespace, name string, bound bool) *Action {
	a := &Action{}
	a.namespace = namespace
	a.name = name
	a.bound = bound
	return a
}

func (a *Action) ElementKind() ElementKind { return ElementKindAction }

// HasEquivalentBindingType reports whether op is bound and its binding
// parameter can accept a value of bindingType. A binding type is accepted when
// it is the parameter type itself, a structured type deriving from it, or a
// collection whose element type satisfies either rule against the parameter's
// element type.
func HasEquivalentBindingType(op Operation, bindingType Type) bool {
	if op == nil || bindingType == nil || !op.IsBound() {
		return false
	}
	param := op.BindingParameter()
	if param == nil || param.Type() == nil {
		return false
	}
	return bindingTypesEquivalent(param.Type(), bindingType)
}

func bindingTypesEquivalent(parameter, binding Type) bool {
	paramColl, paramIsColl := parameter.(*CollectionType)
	bindColl, bindIsColl := binding.(*CollectionType)
	if paramIsColl != bindIsColl {
		return false
	}
	if paramIsColl {
		parameter = paramColl.ElementType()
		binding = bindColl.ElementType()
	}
	if parameter == binding {
		return true
	}
	paramStructured, ok := parameter.(StructuredType)
	if !ok {
		return false
	}
	bindStructured, ok := binding.(StructuredType)
	if !ok {
		return false
	}
	return IsOrInheritsFrom(bindStructured, paramStructured)
}
