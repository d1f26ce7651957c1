package csdl

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	edm "github.com/nlstn/go-edm"
)

// Decoder decodes CSDL documents into edm models.
type Decoder struct {
	// Logger receives warnings about skipped elements. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// NewDecoder creates a decoder with default settings.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a CSDL document into a model. Each additional document in
// references is decoded into its own model and attached as a referenced
// model, so cross-document type references resolve.
func Decode(doc []byte, references ...[]byte) (*edm.Model, error) {
	return NewDecoder().Decode(doc, references...)
}

// Decode decodes a CSDL document into a model, attaching one referenced model
// per additional document.
func (d *Decoder) Decode(doc []byte, references ...[]byte) (*edm.Model, error) {
	var refs []*edm.Model
	for i, data := range references {
		ref, err := d.decodeDocument(data, nil)
		if err != nil {
			return nil, fmt.Errorf("csdl: failed to decode reference document %d: %w", i, err)
		}
		refs = append(refs, ref)
	}
	model, err := d.decodeDocument(doc, refs)
	if err != nil {
		return nil, fmt.Errorf("csdl: %w", err)
	}
	return model, nil
}

func (d *Decoder) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *Decoder) decodeDocument(data []byte, references []*edm.Model) (*edm.Model, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	model := edm.NewModel()
	for _, ref := range references {
		model.AddReferencedModel(ref)
	}

	b := &builder{
		model:   model,
		aliases: make(map[string]string),
		logger:  d.logger(),
	}

	schemas := doc.DataServices.Schemas
	for _, s := range schemas {
		if s.Alias != "" {
			b.aliases[s.Alias] = s.Namespace
		}
	}

	// Type shells first so base types and property types can refer to any
	// type in the document regardless of declaration order.
	for _, s := range schemas {
		b.declareTypes(s)
	}
	for _, s := range schemas {
		if err := b.buildStructuredTypes(s); err != nil {
			return nil, err
		}
	}
	for _, s := range schemas {
		b.buildOperations(s)
	}
	for _, s := range schemas {
		b.buildContainer(s)
	}
	for _, s := range schemas {
		b.buildBindings(s)
	}
	return model, nil
}

// builder holds the intermediate state of a single document decode.
type builder struct {
	model   *edm.Model
	aliases map[string]string
	logger  *slog.Logger
}

func (b *builder) declareTypes(s schema) {
	for _, et := range s.EntityTypes {
		b.model.AddElement(edm.NewEntityType(s.Namespace, et.Name))
	}
	for _, ct := range s.ComplexTypes {
		b.model.AddElement(edm.NewComplexType(s.Namespace, ct.Name))
	}
	for _, en := range s.EnumTypes {
		underlying := edm.PrimitiveByName(en.UnderlyingType)
		enum := edm.NewEnumType(s.Namespace, en.Name, underlying, en.IsFlags)
		// Member values are optional and default to the member's position.
		next := int64(0)
		for _, m := range en.Members {
			value := next
			if m.Value != nil {
				value = *m.Value
			}
			enum.AddMember(m.Name, value)
			next = value + 1
		}
		b.model.AddElement(enum)
	}
}

func (b *builder) buildStructuredTypes(s schema) error {
	for _, raw := range s.EntityTypes {
		fullName := s.Namespace + "." + raw.Name
		et, ok := b.model.FindDeclaredType(fullName).(*edm.EntityType)
		if !ok {
			return fmt.Errorf("entity type %s vanished during decoding", fullName)
		}
		et.SetAbstract(raw.Abstract)
		if raw.BaseType != "" {
			if base, ok := b.resolveType(raw.BaseType).(*edm.EntityType); ok {
				et.SetBaseType(base)
			} else {
				b.logger.Warn("skipping unresolvable base type", "type", fullName, "baseType", raw.BaseType)
			}
		}
		if err := b.buildProperties(fullName, structuredAdder{entity: et}, raw.Properties, raw.NavigationProperties); err != nil {
			return err
		}
		if raw.Key != nil {
			for _, ref := range raw.Key.PropertyRefs {
				sp, ok := et.FindProperty(ref.Name).(*edm.StructuralProperty)
				if !ok {
					b.logger.Warn("skipping key reference to unknown property", "type", fullName, "property", ref.Name)
					continue
				}
				sp.SetNullable(false)
				et.AddKey(sp)
			}
		}
	}
	for _, raw := range s.ComplexTypes {
		fullName := s.Namespace + "." + raw.Name
		ct, ok := b.model.FindDeclaredType(fullName).(*edm.ComplexType)
		if !ok {
			return fmt.Errorf("complex type %s vanished during decoding", fullName)
		}
		ct.SetAbstract(raw.Abstract)
		if raw.BaseType != "" {
			if base, ok := b.resolveType(raw.BaseType).(*edm.ComplexType); ok {
				ct.SetBaseType(base)
			} else {
				b.logger.Warn("skipping unresolvable base type", "type", fullName, "baseType", raw.BaseType)
			}
		}
		if err := b.buildProperties(fullName, structuredAdder{complex: ct}, raw.Properties, raw.NavigationProperties); err != nil {
			return err
		}
	}
	return nil
}

// structuredAdder papers over entity and complex types sharing their property
// builder methods without a common interface for them.
type structuredAdder struct {
	entity  *edm.EntityType
	complex *edm.ComplexType
}

func (a structuredAdder) addStructural(name string, typ edm.Type) *edm.StructuralProperty {
	if a.entity != nil {
		return a.entity.AddStructuralProperty(name, typ)
	}
	return a.complex.AddStructuralProperty(name, typ)
}

func (a structuredAdder) addNavigation(name string, target *edm.EntityType, collection bool) *edm.NavigationProperty {
	if a.entity != nil {
		return a.entity.AddNavigationProperty(name, target, collection)
	}
	return a.complex.AddNavigationProperty(name, target, collection)
}

func (b *builder) buildProperties(owner string, adder structuredAdder, props []property, navProps []navigationProperty) error {
	for _, p := range props {
		typ := b.resolveType(p.Type)
		if typ == nil {
			b.logger.Warn("skipping property with unresolvable type", "type", owner, "property", p.Name, "propertyType", p.Type)
			continue
		}
		sp := adder.addStructural(p.Name, typ)
		if p.Nullable != nil {
			sp.SetNullable(*p.Nullable)
		}
		if p.MaxLength > 0 {
			sp.SetMaxLength(p.MaxLength)
		}
		if p.Precision > 0 || p.Scale > 0 {
			sp.SetPrecision(p.Precision, p.Scale)
		}
		if p.DefaultValue != "" {
			if typ == edm.Type(edm.PrimitiveDecimal) {
				dec, err := decimal.NewFromString(p.DefaultValue)
				if err != nil {
					return fmt.Errorf("property %s.%s: invalid decimal default %q: %w", owner, p.Name, p.DefaultValue, err)
				}
				sp.SetDefaultValue(dec.String())
			} else {
				sp.SetDefaultValue(p.DefaultValue)
			}
		}
	}
	for _, np := range navProps {
		typ := b.resolveType(np.Type)
		if typ == nil {
			b.logger.Warn("skipping navigation property with unresolvable type", "type", owner, "property", np.Name, "propertyType", np.Type)
			continue
		}
		target, ok := edm.IsEntityOrEntityCollectionType(typ)
		if !ok {
			b.logger.Warn("skipping navigation property with non-entity type", "type", owner, "property", np.Name, "propertyType", np.Type)
			continue
		}
		_, isCollection := edm.IsEntityCollectionType(typ)
		nav := adder.addNavigation(np.Name, target, isCollection)
		nav.SetContainsTarget(np.ContainsTarget)
		if np.Partner != "" {
			nav.SetPartner(np.Partner)
		}
		if np.Nullable != nil {
			nav.SetNullable(*np.Nullable)
		}
	}
	return nil
}

func (b *builder) buildOperations(s schema) {
	for _, raw := range s.Functions {
		fn := edm.NewFunction(s.Namespace, raw.Name, raw.IsBound)
		if b.buildOperationMembers(fn, raw) {
			b.model.AddElement(fn)
		}
	}
	for _, raw := range s.Actions {
		action := edm.NewAction(s.Namespace, raw.Name, raw.IsBound)
		if b.buildOperationMembers(action, raw) {
			b.model.AddElement(action)
		}
	}
}

func (b *builder) buildContainer(s schema) {
	for _, raw := range s.Containers {
		if b.model.EntityContainer() != nil {
			b.logger.Warn("skipping additional entity container", "container", raw.Name)
			continue
		}
		container := b.model.AddEntityContainer(s.Namespace, raw.Name)
		for _, set := range raw.EntitySets {
			et, ok := b.resolveType(set.EntityType).(*edm.EntityType)
			if !ok {
				b.logger.Warn("skipping entity set with unresolvable type", "entitySet", set.Name, "entityType", set.EntityType)
				continue
			}
			container.AddEntitySet(set.Name, et)
		}
		for _, single := range raw.Singletons {
			et, ok := b.resolveType(single.Type).(*edm.EntityType)
			if !ok {
				b.logger.Warn("skipping singleton with unresolvable type", "singleton", single.Name, "type", single.Type)
				continue
			}
			container.AddSingleton(single.Name, et)
		}
		for _, imp := range raw.FunctionImports {
			ops := b.model.FindOperations(b.expandAlias(imp.Function))
			fn := firstFunction(ops)
			if fn == nil {
				b.logger.Warn("skipping function import with unresolvable function", "import", imp.Name, "function", imp.Function)
				continue
			}
			container.AddFunctionImport(imp.Name, fn)
		}
		for _, imp := range raw.ActionImports {
			ops := b.model.FindOperations(b.expandAlias(imp.Action))
			action := firstAction(ops)
			if action == nil {
				b.logger.Warn("skipping action import with unresolvable action", "import", imp.Name, "action", imp.Action)
				continue
			}
			container.AddActionImport(imp.Name, action)
		}
	}
}

func (b *builder) buildBindings(s schema) {
	for _, raw := range s.Containers {
		for _, set := range raw.EntitySets {
			if source := b.model.FindDeclaredNavigationSource(set.Name); source != nil {
				b.addBindings(source, set.Bindings)
			}
		}
		for _, single := range raw.Singletons {
			if source := b.model.FindDeclaredNavigationSource(single.Name); source != nil {
				b.addBindings(source, single.Bindings)
			}
		}
	}
}

func (b *builder) addBindings(source edm.NavigationSource, bindings []navPropertyBinding) {
	for _, binding := range bindings {
		path := edm.ParsePathExpression(binding.Path)
		nav := b.resolveBindingProperty(source.EntityType(), path)
		if nav == nil {
			b.logger.Warn("skipping binding with unresolvable path",
				"source", source.Name(), "path", binding.Path)
			continue
		}
		target := b.resolveBindingTarget(binding.Target)
		if target == nil {
			b.logger.Warn("skipping binding with unresolvable target",
				"source", source.Name(), "path", binding.Path, "target", binding.Target)
			continue
		}
		source.AddNavigationPropertyBinding(nav, target, path.Segments()...)
	}
}

// resolveBindingProperty walks a binding path down to the navigation property
// it names. Segments are structural property names, type casts, or, for the
// final segment, the navigation property name.
func (b *builder) resolveBindingProperty(root edm.StructuredType, path edm.PathExpression) *edm.NavigationProperty {
	segments := path.Segments()
	if len(segments) == 0 || root == nil {
		return nil
	}
	current := root
	for i, segment := range segments {
		last := i == len(segments)-1
		if edm.IsQualified(segment) {
			cast, ok := b.resolveType(segment).(edm.StructuredType)
			if !ok {
				return nil
			}
			current = cast
			continue
		}
		switch prop := current.FindProperty(segment).(type) {
		case *edm.NavigationProperty:
			if last {
				return prop
			}
			current = prop.TargetEntityType()
		case *edm.StructuralProperty:
			if last {
				return nil
			}
			next, ok := structuredTypeOf(prop.Type())
			if !ok {
				return nil
			}
			current = next
		default:
			return nil
		}
	}
	return nil
}

// resolveBindingTarget resolves a binding target such as "Orders" or
// "Shop.Default/Orders" to a declared navigation source.
func (b *builder) resolveBindingTarget(target string) edm.NavigationSource {
	name := target
	if idx := strings.LastIndex(target, "/"); idx >= 0 {
		name = target[idx+1:]
	}
	return b.model.FindDeclaredNavigationSource(name)
}

// structuredTypeOf unwraps collections and reports the structured type behind
// a property type, if any.
func structuredTypeOf(t edm.Type) (edm.StructuredType, bool) {
	if c, ok := t.(*edm.CollectionType); ok {
		t = c.ElementType()
	}
	s, ok := t.(edm.StructuredType)
	return s, ok
}

// operationBuilder is satisfied by *edm.Function and *edm.Action.
type operationBuilder interface {
	FullName() string
	AddParameter(name string, typ edm.Type) *edm.Parameter
	SetEntitySetPath(segments ...string)
	SetReturnType(t edm.Type)
}

// buildOperationMembers populates parameters, entity set path and return
// type. Reports whether the operation is usable.
func (b *builder) buildOperationMembers(op operationBuilder, raw operationDef) bool {
	for _, p := range raw.Parameters {
		typ := b.resolveType(p.Type)
		if typ == nil {
			b.logger.Warn("skipping operation with unresolvable parameter type",
				"operation", op.FullName(), "parameter", p.Name, "parameterType", p.Type)
			return false
		}
		param := op.AddParameter(p.Name, typ)
		if p.Nullable != nil {
			param.SetNullable(*p.Nullable)
		}
	}
	if raw.EntitySetPath != "" {
		op.SetEntitySetPath(edm.ParsePathExpression(raw.EntitySetPath).Segments()...)
	}
	if raw.ReturnType != nil {
		typ := b.resolveType(raw.ReturnType.Type)
		if typ == nil {
			b.logger.Warn("skipping operation with unresolvable return type",
				"operation", op.FullName(), "returnType", raw.ReturnType.Type)
			return false
		}
		op.SetReturnType(typ)
	}
	return true
}

// resolveType resolves a CSDL type reference such as "Edm.String",
// "self.Product" or "Collection(Shop.Product)". Returns nil for unknown
// types.
func (b *builder) resolveType(ref string) edm.Type {
	if inner, ok := strings.CutPrefix(ref, "Collection("); ok {
		inner = strings.TrimSuffix(inner, ")")
		element := b.resolveType(inner)
		if element == nil {
			return nil
		}
		return edm.NewCollectionType(element)
	}
	name := b.expandAlias(ref)
	if p := edm.PrimitiveByName(name); p != nil {
		return p
	}
	if t := b.model.FindType(name); t != nil {
		return t
	}
	return nil
}

// expandAlias replaces a schema alias qualifier with its namespace. The
// qualifier is everything before the last dot; aliases never contain dots.
func (b *builder) expandAlias(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name
	}
	if namespace, ok := b.aliases[name[:idx]]; ok {
		return namespace + name[idx:]
	}
	return name
}

func firstFunction(ops []edm.Operation) *edm.Function {
	for _, op := range ops {
		if fn, ok := op.(*edm.Function); ok {
			return fn
		}
	}
	return nil
}

func firstAction(ops []edm.Operation) *edm.Action {
	for _, op := range ops {
		if action, ok := op.(*edm.Action); ok {
			return action
		}
	}
	return nil
}
