package edm

// FindNavigationTarget determines where property leads when navigated from
// source along the already-walked request path.
//
// For a containment navigation the target lives inside the source itself:
// the source is returned with no binding path, and declared bindings are
// ignored. Otherwise the source's declared bindings for the property are
// tried in declaration order and the first one whose binding path matches the
// parsed path wins. Returns (nil, nil) when no binding matches.
func FindNavigationTarget(source NavigationSource, property *NavigationProperty, parsedPath []PathSegment) (NavigationSource, PathExpression) {
	if source == nil || property == nil {
		return nil, nil
	}
	if property.ContainsTarget() {
		return source, nil
	}
	for _, binding := range source.FindNavigationPropertyBindings(property) {
		if MatchBindingPath(binding.Path(), parsedPath) {
			return binding.Target(), binding.Path()
		}
	}
	return nil, nil
}

// TargetEntitySet resolves the entity set a bound operation ultimately
// operates on, by walking the operation's relative entity set path hop by hop
// starting from source. Returns nil whenever the target cannot be determined
// statically: an unbound or parameterless operation, an invalid entity set
// path, a hop without a matching binding, or a final target that is not an
// entity set.
func TargetEntitySet(op Operation, source NavigationSource, model *Model) *EntitySet {
	if op == nil || source == nil || !op.IsBound() || len(op.Parameters()) == 0 {
		return nil
	}
	relative, err := op.TryGetRelativeEntitySetPath(model)
	if err != nil || relative == nil {
		return nil
	}
	current := source
	var walked []PathSegment
	for _, step := range relative.Path {
		current, _ = FindNavigationTarget(current, step, walked)
		if current == nil {
			return nil
		}
		walked = append(walked, PathSegment{Kind: PathSegmentNavigation, Name: step.Name()})
	}
	set, _ := current.(*EntitySet)
	return set
}
