// Package objmap maps live game object instances to and from property
// documents through a composed schema view.
//
// Serialization walks the view's fields in composed order (base-most
// schema first) and emits one document entry per serializable field.
// Deserialization is tolerant by construction: unknown keys are
// ignored, missing keys leave fields at their prior values, and a
// field that fails to parse or validate is reported in the Report
// without aborting the rest of the document. Schema evolution in
// either direction therefore never turns into a hard error.
//
//	view := schema.MustBind[Monster](monsterChain)
//	data, err := objmap.Marshal(view, &m)
//	report, err := objmap.Unmarshal(view, &m, data)
package objmap
