package schema

import (
	"reflect"

	"github.com/expr-lang/expr/vm"

	"github.com/propfield/propfield/convert"
)

// FieldDescriptor is the metadata for one declared schema member: its
// serialized name, the Go struct field backing it, its static type, and
// the converter resolved for that type. Descriptors are built inside
// New and are immutable afterwards; they belong to exactly one Schema.
type FieldDescriptor struct {
	name    string
	goField string
	typ     reflect.Type
	owner   reflect.Type
	index   []int

	// conv is nil when the field's type resolved no converter; such a
	// field stays visible in metadata but takes no part in
	// serialization.
	conv *convert.Converter

	checkSrc string
	check    *vm.Program

	defValue   string
	hasDefault bool
}

// Name returns the declared (serialized) field name.
func (f *FieldDescriptor) Name() string {
	return f.name
}

// GoField returns the name of the backing struct member.
func (f *FieldDescriptor) GoField() string {
	return f.goField
}

// Type returns the field's static Go type.
func (f *FieldDescriptor) Type() reflect.Type {
	return f.typ
}

// Owner returns the struct type the field was declared on.
func (f *FieldDescriptor) Owner() reflect.Type {
	return f.owner
}

// Serializable reports whether a converter resolved for the field's
// type.
func (f *FieldDescriptor) Serializable() bool {
	return f.conv != nil
}

// Check returns the field's validation expression, if any.
func (f *FieldDescriptor) Check() string {
	return f.checkSrc
}

// Default returns the field's declared default in its text encoding.
func (f *FieldDescriptor) Default() (string, bool) {
	return f.defValue, f.hasDefault
}

// FieldDecl declares one schema member. Build it with Field.
type FieldDecl struct {
	name    string
	goField string
	opts    fieldOpts
}

type fieldOpts struct {
	conv     *convert.Converter
	checkSrc string
	def      *string
}

type FieldOption func(*fieldOpts)

// Field declares a schema member: name is the serialized identifier,
// goField the exported struct member backing it.
func Field(name, goField string, opts ...FieldOption) FieldDecl {
	d := FieldDecl{name: name, goField: goField}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// WithConverter overrides converter resolution for this field.
func WithConverter(c *convert.Converter) FieldOption {
	return func(fo *fieldOpts) { fo.conv = c }
}

// Check attaches a validation expression evaluated against the parsed
// value (bound as "value") before a deserialized write. A failing or
// erroring check leaves the field unchanged.
func Check(src string) FieldOption {
	return func(fo *fieldOpts) { fo.checkSrc = src }
}

// Default declares the field's default in its text encoding, e.g.
// Default("50") for an int field. Defaults are parsed at declaration
// time, so a malformed default is a definition error.
func Default(v string) FieldOption {
	return func(fo *fieldOpts) { fo.def = &v }
}
