package edm

import "strings"

// ResolveOperationImports resolves operation imports by name. Several imports
// may share a name for overload resolution, so multiple matches are returned
// rather than treated as ambiguous.
//
// Returns nil when the model has no container, and an empty slice when the
// container declares no matching import; callers must treat both as "nothing
// found".
func (r *Resolver) ResolveOperationImports(model *Model, name string) []OperationImport {
	if model == nil {
		return nil
	}
	imports := model.FindDeclaredOperationImports(name)
	if len(imports) > 0 || !r.EnableCaseInsensitive {
		return imports
	}
	container := model.EntityContainer()
	if container == nil {
		return nil
	}
	matches := []OperationImport{}
	for _, el := range container.Elements() {
		imp, ok := el.(OperationImport)
		if !ok {
			continue
		}
		if strings.EqualFold(imp.Name(), name) {
			matches = append(matches, imp)
		}
	}
	return matches
}

// ResolveBoundOperations resolves operations by name across the model and
// every referenced model, keeping only those whose binding parameter can
// accept a value of bindingType. A qualified name matches against full names,
// an unqualified one against short names. Never returns nil.
func (r *Resolver) ResolveBoundOperations(model *Model, name string, bindingType Type) []Operation {
	matches := []Operation{}
	if model == nil {
		return matches
	}
	for _, op := range r.resolveOperations(model, name) {
		if HasEquivalentBindingType(op, bindingType) {
			matches = append(matches, op)
		}
	}
	return matches
}

// resolveOperations merges the matching operations of every model in scope.
// No short-circuiting: overloads may be spread across referenced models.
func (r *Resolver) resolveOperations(model *Model, name string) []Operation {
	qualified := IsQualified(name)
	var ops []Operation
	for _, m := range model.allModels() {
		for _, e := range m.SchemaElements() {
			op, ok := e.(Operation)
			if !ok {
				continue
			}
			candidate := op.Name()
			if qualified {
				candidate = op.FullName()
			}
			if candidate == name || (r.EnableCaseInsensitive && strings.EqualFold(candidate, name)) {
				ops = append(ops, op)
			}
		}
	}
	return ops
}
