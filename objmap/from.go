package objmap

import (
	"fmt"
	"reflect"

	"github.com/propfield/propfield/ir"
	"github.com/propfield/propfield/parse"
	"github.com/propfield/propfield/schema"
)

// Report summarizes one deserialization pass. Deserialization never
// aborts on field-level problems; everything that went wrong is here.
type Report struct {
	// Applied lists fields written, in document order.
	Applied []string

	// Failed lists fields whose value did not parse or validate;
	// each keeps its prior value.
	Failed []*FieldError

	// Unknown lists document keys with no matching schema field,
	// ignored for forward compatibility.
	Unknown []string
}

// Ok reports whether every matched field applied cleanly.
func (r *Report) Ok() bool {
	return len(r.Failed) == 0
}

// FromDoc applies a property document to inst through the view.
//
// Each document key is looked up in composed order and the first
// matching field is written; when a key repeats, its n-th occurrence
// addresses the n-th same-named field, so documents produced from a
// colliding chain round-trip positionally. Keys with no matching field
// are ignored and reported as Unknown; fields absent from the document
// keep their current values.
func FromDoc(v *schema.View, inst any, doc *ir.Doc) (*Report, error) {
	if err := checkInstance(v, inst); err != nil {
		return nil, err
	}
	report := &Report{}
	fields := v.Fields()
	seen := make(map[string]int)
	for i := range doc.Keys {
		key, val := doc.Keys[i], doc.Values[i]
		bf := nthNamed(fields, key, seen[key])
		seen[key]++
		if bf == nil {
			report.Unknown = append(report.Unknown, key)
			continue
		}
		if err := bf.Deserialize(inst, val); err != nil {
			report.Failed = append(report.Failed, &FieldError{Field: key, Err: err})
			continue
		}
		report.Applied = append(report.Applied, key)
	}
	return report, nil
}

// nthNamed returns the n-th field named key in composed order, nil
// when there are not that many.
func nthNamed(fields []*schema.BoundField, key string, n int) *schema.BoundField {
	for _, bf := range fields {
		if bf.Name() != key || !bf.Serializable() {
			continue
		}
		if n == 0 {
			return bf
		}
		n--
	}
	return nil
}

// Unmarshal parses data and applies it to inst through the view.
func Unmarshal(v *schema.View, inst any, data []byte, opts ...parse.ParseOption) (*Report, error) {
	doc, err := parse.Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	return FromDoc(v, inst, doc)
}

func checkInstance(v *schema.View, inst any) error {
	val := reflect.ValueOf(inst)
	if !val.IsValid() || val.Kind() != reflect.Pointer || val.IsNil() ||
		val.Type().Elem() != v.GoType() {
		return fmt.Errorf("instance must be a non-nil *%s", v.GoType())
	}
	return nil
}

// Reset writes every field's declared default into inst; fields
// without a Default declaration are untouched.
func Reset(v *schema.View, inst any) error {
	if err := checkInstance(v, inst); err != nil {
		return err
	}
	for _, bf := range v.Fields() {
		def, ok := bf.Descriptor().Default()
		if !ok {
			continue
		}
		if err := bf.Deserialize(inst, def); err != nil {
			// defaults were validated at declaration time
			return err
		}
	}
	return nil
}
