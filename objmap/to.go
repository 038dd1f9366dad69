package objmap

import (
	"bytes"

	"github.com/propfield/propfield/encode"
	"github.com/propfield/propfield/ir"
	"github.com/propfield/propfield/schema"
)

// ToDoc serializes inst through the view into an ordered property
// document: one entry per serializable field, base-most schema first.
// Fields with no converter are skipped. Serializing the same instance
// twice without mutation yields equal documents.
func ToDoc(v *schema.View, inst any) (*ir.Doc, error) {
	doc := ir.New()
	for _, bf := range v.Fields() {
		if !bf.Serializable() {
			continue
		}
		s, err := bf.Serialize(inst)
		if err != nil {
			return nil, &MarshalError{
				Field:   bf.Name(),
				Message: err.Error(),
				Err:     err,
			}
		}
		doc.Append(bf.Name(), s)
	}
	return doc, nil
}

// Marshal serializes inst to text; encode options choose the format.
func Marshal(v *schema.View, inst any, opts ...encode.EncodeOption) ([]byte, error) {
	doc, err := ToDoc(v, inst)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(doc, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
