// Package convert resolves per-type text converters for schema fields.
//
// A Converter pairs a ToString and a FromString function for one static
// Go type. The Registry supplies built-ins for strings, booleans, the
// numeric types, and sequences of any convertible element type; custom
// types participate either by implementing encoding.TextMarshaler and
// TextUnmarshaler or by an explicit Register call:
//
//	convert.Register(
//		func(id EntityID) string { return id.String() },
//		ParseEntityID,
//	)
//
// A type with no resolvable converter is not an error: schema fields of
// such a type simply take no part in serialization.
package convert
