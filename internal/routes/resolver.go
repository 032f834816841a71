// Package routes maps topic ids to navigable paths.
package routes

// foundingDocuments are the topic ids rendered in the full-document view
// rather than the generic detail view.
var foundingDocuments = map[string]struct{}{
	"declaration":               {},
	"articles-of-confederation": {},
	"constitution":              {},
	"bill-of-rights":            {},
	"federalist-papers":         {},
}

// Resolve returns the navigable path for a topic id. The function is total:
// unknown ids still get a syntactically valid detail path, and existence is
// checked by whatever renders the path, not here.
func Resolve(topicID string) string {
	if _, ok := foundingDocuments[topicID]; ok {
		return "/documents/" + topicID
	}
	return "/topics/" + topicID
}

// IsFoundingDocument reports whether the id belongs to the fixed
// founding-document set.
func IsFoundingDocument(topicID string) bool {
	_, ok := foundingDocuments[topicID]
	return ok
}
