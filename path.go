package edm

import "strings"

// PathExpression is an ordered sequence of path segment strings, as used by
// navigation property bindings and operation entity set paths. Segments are
// property names, except for type casts which are namespace-qualified type
// names.
type PathExpression []string

// NewPathExpression creates a path expression from the given segments.
func NewPathExpression(segments ...string) PathExpression {
	if len(segments) == 0 {
		return nil
	}
	return PathExpression(segments)
}

// ParsePathExpression splits a slash-separated path such as
// "binding/Orders" into a path expression.
func ParsePathExpression(path string) PathExpression {
	if path == "" {
		return nil
	}
	return PathExpression(strings.Split(path, "/"))
}

// Segments returns the ordered segments of the path.
func (p PathExpression) Segments() []string { return p }

// String returns the slash-separated form of the path.
func (p PathExpression) String() string { return strings.Join(p, "/") }

// PathSegmentKind identifies the kind of a parsed request path segment.
type PathSegmentKind int

const (
	PathSegmentEntitySet PathSegmentKind = iota + 1
	PathSegmentSingleton
	PathSegmentNavigation
	PathSegmentStructural
	PathSegmentTypeCast
	PathSegmentKey
	PathSegmentOperation
)

// PathSegment is one step of an already-parsed request path. The resolution
// layer only reads segments; producing them is the URL parser's concern.
type PathSegment struct {
	// Kind identifies what the segment addresses.
	Kind PathSegmentKind
	// Name is the property or source name, or the qualified type name for
	// type cast segments. Key segments carry no name.
	Name string
}

// MatchBindingPath reports whether the declared binding path applies to the
// walked request path. The declared path's last segment names the navigation
// property itself; the preceding segments are matched against the tail of
// parsed, in reverse:
//
//   - key and operation segments in parsed are skipped
//   - a type cast segment matches a declared cast segment with the same
//     qualified name; casts absent from the declared path are skipped, since
//     binding paths may omit them
//   - structural and navigation segments must match the declared segment name
//     exactly
//   - once the declared prefix is consumed, the next significant parsed
//     segment must be the binding's source: an entity set, singleton or
//     navigation segment
//
// An empty declared path is the default binding path and matches any walked
// path.
func MatchBindingPath(declared PathExpression, parsed []PathSegment) bool {
	prefix := declared.Segments()
	if len(prefix) > 0 {
		prefix = prefix[:len(prefix)-1]
	}
	i := len(prefix) - 1
	for j := len(parsed) - 1; j >= 0; j-- {
		segment := parsed[j]
		if segment.Kind == PathSegmentKey || segment.Kind == PathSegmentOperation {
			continue
		}
		if i < 0 {
			return segment.Kind == PathSegmentEntitySet ||
				segment.Kind == PathSegmentSingleton ||
				segment.Kind == PathSegmentNavigation
		}
		switch segment.Kind {
		case PathSegmentTypeCast:
			if IsQualified(prefix[i]) {
				if prefix[i] != segment.Name {
					return false
				}
				i--
			}
		case PathSegmentStructural, PathSegmentNavigation:
			if prefix[i] != segment.Name {
				return false
			}
			i--
		default:
			// Reached the path root with declared prefix segments left over.
			return false
		}
	}
	return i < 0
}
