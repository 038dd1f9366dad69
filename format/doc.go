// Package format names the textual forms a property document can take.
//
// JSONFormat renders a document as a single JSON object of string values,
// BlockFormat renders one "name: value" entry per line.
//
// # Related Packages
//
//   - github.com/propfield/propfield/parse - Parse text to documents
//   - github.com/propfield/propfield/encode - Encode documents to text
package format
