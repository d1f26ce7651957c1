package edm

import "fmt"

// AmbiguousMatchError reports that a case-insensitive lookup matched more
// than one schema element across the model and its referenced models. Not
// finding anything is not an error; finding too much is.
type AmbiguousMatchError struct {
	// Name is the identifier that matched multiple elements.
	Name string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("edm: identifier %q matches more than one schema element case-insensitively", e.Name)
}
