package edm

import "testing"

func TestMatchBindingPath_DefaultPath(t *testing.T) {
	declared := NewPathExpression("Friend")

	if !MatchBindingPath(declared, nil) {
		t.Error("Expected a single-segment binding path to match an empty parsed path")
	}
	if !MatchBindingPath(nil, nil) {
		t.Error("Expected an empty binding path to match an empty parsed path")
	}
	parsed := []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "People"},
		{Kind: PathSegmentKey},
	}
	if !MatchBindingPath(declared, parsed) {
		t.Error("Expected a single-segment binding path to match a path rooted at an entity set")
	}
}

func TestMatchBindingPath_StructuralPrefix(t *testing.T) {
	declared := ParsePathExpression("WorkAddress/City")

	matching := []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "People"},
		{Kind: PathSegmentKey},
		{Kind: PathSegmentStructural, Name: "WorkAddress"},
	}
	if !MatchBindingPath(declared, matching) {
		t.Error("Expected WorkAddress/City to match a walk through WorkAddress")
	}

	other := []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "People"},
		{Kind: PathSegmentKey},
		{Kind: PathSegmentStructural, Name: "HomeAddress"},
	}
	if MatchBindingPath(declared, other) {
		t.Error("Expected WorkAddress/City not to match a walk through HomeAddress")
	}
}

func TestMatchBindingPath_PrefixLongerThanParsedPath(t *testing.T) {
	declared := ParsePathExpression("A/B/C/Nav")
	parsed := []PathSegment{
		{Kind: PathSegmentStructural, Name: "B"},
		{Kind: PathSegmentStructural, Name: "C"},
	}
	if MatchBindingPath(declared, parsed) {
		t.Error("Expected a declared prefix longer than the parsed path not to match")
	}
}

func TestMatchBindingPath_TypeCasts(t *testing.T) {
	// A cast present in both paths must agree.
	declared := ParsePathExpression("Shop.PremiumCustomer/Orders")
	parsed := []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "Customers"},
		{Kind: PathSegmentKey},
		{Kind: PathSegmentTypeCast, Name: "Shop.PremiumCustomer"},
	}
	if !MatchBindingPath(declared, parsed) {
		t.Error("Expected matching type casts to be accepted")
	}

	parsed[2].Name = "Shop.ArchivedCustomer"
	if MatchBindingPath(declared, parsed) {
		t.Error("Expected mismatched type casts to be rejected")
	}

	// A cast omitted from the binding path is skipped in the parsed path.
	declared = ParsePathExpression("WorkAddress/City")
	parsed = []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "People"},
		{Kind: PathSegmentStructural, Name: "WorkAddress"},
		{Kind: PathSegmentTypeCast, Name: "HR.VerifiedAddress"},
	}
	if !MatchBindingPath(declared, parsed) {
		t.Error("Expected a cast absent from the binding path to be skipped")
	}
}

func TestMatchBindingPath_NavigationResetsContext(t *testing.T) {
	// Bindings are declared on the target of the preceding navigation, so an
	// earlier navigation segment counts as the path root.
	declared := ParsePathExpression("Address/City")
	parsed := []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "Companies"},
		{Kind: PathSegmentKey},
		{Kind: PathSegmentNavigation, Name: "Owner"},
		{Kind: PathSegmentStructural, Name: "Address"},
	}
	if !MatchBindingPath(declared, parsed) {
		t.Error("Expected the declared prefix to match relative to the last navigation")
	}

	// A structural segment left over once the prefix is consumed means the
	// binding was declared for a longer path.
	parsed = []PathSegment{
		{Kind: PathSegmentEntitySet, Name: "Companies"},
		{Kind: PathSegmentStructural, Name: "Branch"},
		{Kind: PathSegmentStructural, Name: "Address"},
	}
	if MatchBindingPath(declared, parsed) {
		t.Error("Expected unmatched structural context to be rejected")
	}
}

func TestParsePathExpression(t *testing.T) {
	p := ParsePathExpression("binding/Orders")
	if len(p.Segments()) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(p.Segments()))
	}
	if p.String() != "binding/Orders" {
		t.Errorf("Expected round-trip %q, got %q", "binding/Orders", p.String())
	}
	if got := ParsePathExpression(""); got != nil {
		t.Errorf("Expected nil for an empty path, got %v", got)
	}
}
