package schema

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"

	"github.com/propfield/propfield/convert"
)

// Schema is the ordered set of fields declared directly on one Go
// struct type, excluding anything inherited through embedding. Build
// one per schema-bearing type, once, in a package var:
//
//	type Monster struct {
//		Health int
//		Damage int
//	}
//
//	var MonsterSchema = schema.MustNew[Monster]("Monster",
//		schema.Field("health", "Health", schema.Default("50")),
//		schema.Field("damage", "Damage", schema.Default("10")),
//	)
//
// Package-var initialization runs before any application goroutine, so
// every schema exists before the first instance is serialized.
type Schema struct {
	name   string
	goType reflect.Type
	fields []*FieldDescriptor
	byName map[string]*FieldDescriptor
}

// New builds the schema for struct type S with converters resolved
// against convert.Default. Field order follows declaration order.
func New[S any](name string, decls ...FieldDecl) (*Schema, error) {
	return NewIn[S](convert.Default, name, decls...)
}

// MustNew is New for package-var initialization; it panics on a
// definition error.
func MustNew[S any](name string, decls ...FieldDecl) *Schema {
	s, err := New[S](name, decls...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewIn is New with an explicit converter registry.
func NewIn[S any](reg *convert.Registry, name string, decls ...FieldDecl) (*Schema, error) {
	goType := reflect.TypeFor[S]()
	if goType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema type %s is not a struct", goType)
	}
	if name == "" {
		return nil, fmt.Errorf("schema for %s must have a name", goType)
	}
	s := &Schema{
		name:   name,
		goType: goType,
		byName: make(map[string]*FieldDescriptor, len(decls)),
	}
	for _, decl := range decls {
		fd, err := buildField(reg, goType, decl)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
		if _, dup := s.byName[fd.name]; dup {
			return nil, fmt.Errorf("schema %q: duplicate field name %q", name, fd.name)
		}
		for _, prev := range s.fields {
			if prev.goField == fd.goField {
				return nil, fmt.Errorf("schema %q: struct member %s declared twice", name, fd.goField)
			}
		}
		s.byName[fd.name] = fd
		s.fields = append(s.fields, fd)
	}
	return s, nil
}

func buildField(reg *convert.Registry, goType reflect.Type, decl FieldDecl) (*FieldDescriptor, error) {
	if decl.name == "" {
		return nil, fmt.Errorf("field for member %s must have a name", decl.goField)
	}
	sf, ok := goType.FieldByName(decl.goField)
	if !ok || len(sf.Index) != 1 {
		return nil, fmt.Errorf("field %q: %s has no member %s", decl.name, goType, decl.goField)
	}
	if !sf.IsExported() {
		return nil, fmt.Errorf("field %q: member %s is not exported", decl.name, decl.goField)
	}
	fd := &FieldDescriptor{
		name:    decl.name,
		goField: decl.goField,
		typ:     sf.Type,
		owner:   goType,
		index:   sf.Index,
		conv:    decl.opts.conv,
	}
	if fd.conv == nil {
		fd.conv, _ = reg.Lookup(sf.Type)
	}
	if src := decl.opts.checkSrc; src != "" {
		if fd.conv == nil {
			return nil, fmt.Errorf("field %q: check on unconvertible type %s", decl.name, sf.Type)
		}
		prog, err := expr.Compile(src, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("field %q: bad check %q: %w", decl.name, src, err)
		}
		fd.checkSrc = src
		fd.check = prog
	}
	if decl.opts.def != nil {
		if fd.conv == nil {
			return nil, fmt.Errorf("field %q: default on unconvertible type %s", decl.name, sf.Type)
		}
		scratch := reflect.New(sf.Type).Elem()
		if err := fd.conv.FromString(*decl.opts.def, scratch); err != nil {
			return nil, fmt.Errorf("field %q: bad default %q: %w", decl.name, *decl.opts.def, err)
		}
		if fd.check != nil {
			out, err := expr.Run(fd.check, map[string]any{"value": scratch.Interface()})
			if err != nil {
				return nil, fmt.Errorf("field %q: default %q: check %q: %w",
					decl.name, *decl.opts.def, fd.checkSrc, err)
			}
			if ok, _ := out.(bool); !ok {
				return nil, fmt.Errorf("field %q: default %q fails check %q",
					decl.name, *decl.opts.def, fd.checkSrc)
			}
		}
		fd.defValue = *decl.opts.def
		fd.hasDefault = true
	}
	return fd, nil
}

// Name returns the schema's registered name.
func (s *Schema) Name() string {
	return s.name
}

// GoType returns the struct type the schema describes.
func (s *Schema) GoType() reflect.Type {
	return s.goType
}

// Fields returns the schema's own fields in declaration order.
func (s *Schema) Fields() []*FieldDescriptor {
	res := make([]*FieldDescriptor, len(s.fields))
	copy(res, s.fields)
	return res
}

// Field returns the schema's own field with the given declared name.
func (s *Schema) Field(name string) (*FieldDescriptor, bool) {
	fd, ok := s.byName[name]
	return fd, ok
}

func (s *Schema) String() string {
	return fmt.Sprintf("schema %s (%s, %d fields)", s.name, s.goType, len(s.fields))
}
