// Package edm provides an in-memory representation of the OData v4.01 Entity
// Data Model and the resolution logic needed to look schema elements up by
// identifier.
//
// A Model is an immutable graph of schema elements: entity and complex types
// with their structural and navigation properties, enumeration types, functions
// and actions, and a single entity container grouping entity sets, singletons
// and operation imports. A model may reference further models, which are fully
// visible during lookup.
//
// Models are built once, by one of the loader packages or by hand, and then
// only read. All lookup operations are synchronous traversals over the graph
// and hold no internal state, so a model may be shared freely between
// goroutines once construction is finished.
//
// # Resolution
//
// Exact, case-sensitive lookup is available directly on the model:
//
//	t := model.FindType("Shop.Product")
//	s := model.FindDeclaredNavigationSource("Products")
//
// Resolver adds the case-insensitive fallback used for lenient URL parsing. An
// identifier that matches more than one element case-insensitively yields an
// AmbiguousMatchError rather than an arbitrary pick:
//
//	r := edm.Resolver{EnableCaseInsensitive: true}
//	t, err := r.ResolveType(model, "shop.product")
//
// FindNavigationTarget determines where a navigation property leads from a
// given entity set or singleton, honoring containment and declared navigation
// property bindings.
//
// # Building models
//
// The csdl package decodes CSDL XML ($metadata) documents, the dbmodel package
// derives a model from a live database schema, and the reflection package
// analyzes Go structs. All three produce *edm.Model values that behave
// identically under resolution.
package edm
