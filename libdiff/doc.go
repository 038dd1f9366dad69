// Package libdiff compares property documents.
//
// Diff aligns the key sequences of two documents with a minimal edit
// script and reports each entry as equal, replaced, inserted, or
// deleted. Render prints the result in a line-per-entry form suited
// to terminals.
package libdiff
