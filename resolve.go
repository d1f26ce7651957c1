package edm

import "strings"

// Resolver resolves identifiers against a model, optionally falling back to a
// case-insensitive search when the exact lookup finds nothing. The zero value
// resolves exactly like the model's own Find methods.
//
// Case-sensitive name uniqueness is guaranteed by the model; case-insensitive
// uniqueness is not. The fallback therefore always scans the full candidate
// set, across the model and every referenced model, and reports an
// AmbiguousMatchError when more than one element matches. Not finding
// anything is never an error: single-valued resolutions return nil, sequence
// resolutions return an empty result.
type Resolver struct {
	// EnableCaseInsensitive enables the case-insensitive fallback. The exact
	// lookup always runs first and short-circuits when it finds a match.
	EnableCaseInsensitive bool
}

// ResolveProperty resolves a property of a structured type by name. With the
// fallback enabled, an identifier matching several properties
// case-insensitively yields an AmbiguousMatchError.
func (r *Resolver) ResolveProperty(t StructuredType, name string) (Property, error) {
	if t == nil {
		return nil, nil
	}
	if p := t.FindProperty(name); p != nil || !r.EnableCaseInsensitive {
		return p, nil
	}
	var match Property
	for _, p := range t.Properties() {
		if !strings.EqualFold(p.Name(), name) {
			continue
		}
		if match != nil {
			return nil, &AmbiguousMatchError{Name: name}
		}
		match = p
	}
	return match, nil
}

// ResolveType resolves a schema type by qualified name across the model and
// every referenced model. With the fallback enabled, an identifier matching
// several types case-insensitively yields an AmbiguousMatchError.
func (r *Resolver) ResolveType(model *Model, name string) (SchemaType, error) {
	if model == nil {
		return nil, nil
	}
	if t := model.FindType(name); t != nil || !r.EnableCaseInsensitive {
		return t, nil
	}
	var match SchemaType
	for _, m := range model.allModels() {
		for _, e := range m.SchemaElements() {
			t, ok := e.(SchemaType)
			if !ok {
				continue
			}
			if !strings.EqualFold(t.FullName(), name) {
				continue
			}
			if match != nil {
				return nil, &AmbiguousMatchError{Name: name}
			}
			match = t
		}
	}
	return match, nil
}

// ResolveNavigationSource resolves an entity set or singleton declared in the
// model's container. A model without a container resolves to nil. With the
// fallback enabled, an identifier matching several sources case-insensitively
// yields an AmbiguousMatchError.
func (r *Resolver) ResolveNavigationSource(model *Model, name string) (NavigationSource, error) {
	if model == nil {
		return nil, nil
	}
	if s := model.FindDeclaredNavigationSource(name); s != nil || !r.EnableCaseInsensitive {
		return s, nil
	}
	container := model.EntityContainer()
	if container == nil {
		return nil, nil
	}
	var match NavigationSource
	for _, el := range container.Elements() {
		s, ok := el.(NavigationSource)
		if !ok {
			continue
		}
		if !strings.EqualFold(s.Name(), name) {
			continue
		}
		if match != nil {
			return nil, &AmbiguousMatchError{Name: name}
		}
		match = s
	}
	return match, nil
}
