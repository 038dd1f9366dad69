package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"

	"github.com/propfield/propfield/debug"
)

var (
	// ErrNotSerializable marks fields whose type resolved no converter.
	ErrNotSerializable = errors.New("field is not serializable")

	// ErrCheckFailed marks deserialized values rejected by a field's
	// check expression.
	ErrCheckFailed = errors.New("check failed")
)

// View is the composed field list of one concrete type: every field of
// every schema in its chain, base-most schema first, each schema's own
// declaration order preserved. A View is computed once per concrete
// type, is immutable, and is shared by all instances of that type.
type View struct {
	goType reflect.Type
	chain  *Chain
	fields []*BoundField
	byName map[string]int
}

// BoundField is a FieldDescriptor resolved against a concrete type: it
// knows the full index path from the concrete struct to the member,
// through whatever embedded ancestor structs lie between.
type BoundField struct {
	desc   *FieldDescriptor
	goType reflect.Type
	path   []int
}

// Bind composes a chain against concrete struct type S, resolving each
// schema's storage through S's embedded fields. Every schema in the
// chain must be reachable: its struct type is either S itself or
// embedded (transitively, through exported embedded fields) in S.
func Bind[S any](c *Chain) (*View, error) {
	goType := reflect.TypeFor[S]()
	if goType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind type %s is not a struct", goType)
	}
	v := &View{
		goType: goType,
		chain:  c,
		byName: make(map[string]int),
	}
	for _, s := range c.Schemas() {
		prefix, ok := embedPath(goType, s.GoType())
		if !ok {
			return nil, fmt.Errorf("bind %s: schema %q type %s is not embedded in %s",
				goType, s.Name(), s.GoType(), goType)
		}
		if debug.Bind() {
			debug.Logf("bind %s: schema %q at index path %v\n", goType, s.Name(), prefix)
		}
		for _, fd := range s.Fields() {
			bf := &BoundField{
				desc:   fd,
				goType: goType,
				path:   append(append([]int{}, prefix...), fd.index...),
			}
			// first occurrence wins for name lookup; duplicates
			// across the chain stay in the field list
			if _, seen := v.byName[fd.Name()]; !seen {
				v.byName[fd.Name()] = len(v.fields)
			}
			v.fields = append(v.fields, bf)
		}
	}
	return v, nil
}

// MustBind is Bind for package-var initialization; it panics on error.
func MustBind[S any](c *Chain) *View {
	v, err := Bind[S](c)
	if err != nil {
		panic(err)
	}
	return v
}

// embedPath finds the index path from t to an embedded struct of type
// owner, breadth first, so the shallowest embedding wins. The empty
// path means t is owner itself.
func embedPath(t, owner reflect.Type) ([]int, bool) {
	if t == owner {
		return nil, true
	}
	type node struct {
		t    reflect.Type
		path []int
	}
	queue := []node{{t: t}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for i := 0; i < n.t.NumField(); i++ {
			sf := n.t.Field(i)
			// unexported embedded fields are invisible to reflect
			// value access, so they cannot carry schema storage
			if !sf.Anonymous || !sf.IsExported() {
				continue
			}
			path := append(append([]int{}, n.path...), i)
			if sf.Type == owner {
				return path, true
			}
			if sf.Type.Kind() == reflect.Struct {
				queue = append(queue, node{t: sf.Type, path: path})
			}
		}
	}
	return nil, false
}

// GoType returns the concrete type the view was bound against.
func (v *View) GoType() reflect.Type {
	return v.goType
}

// Chain returns the chain the view was composed from.
func (v *View) Chain() *Chain {
	return v.chain
}

// Fields returns every bound field, base-most schema first.
func (v *View) Fields() []*BoundField {
	res := make([]*BoundField, len(v.fields))
	copy(res, v.fields)
	return res
}

// Lookup returns the FIRST field with the given name in composed
// order; later same-named fields remain reachable through Fields.
func (v *View) Lookup(name string) (*BoundField, bool) {
	i, ok := v.byName[name]
	if !ok {
		return nil, false
	}
	return v.fields[i], true
}

// Descriptor returns the underlying schema field metadata.
func (b *BoundField) Descriptor() *FieldDescriptor {
	return b.desc
}

// Name returns the declared field name.
func (b *BoundField) Name() string {
	return b.desc.name
}

// Serializable reports whether the field participates in
// serialization.
func (b *BoundField) Serializable() bool {
	return b.desc.conv != nil
}

// Serialize reads the member from inst, which must be a pointer to the
// type the view was bound against, and encodes it to text.
func (b *BoundField) Serialize(inst any) (string, error) {
	fv, err := b.storage(inst)
	if err != nil {
		return "", err
	}
	if b.desc.conv == nil {
		return "", fmt.Errorf("field %q: %w", b.desc.name, ErrNotSerializable)
	}
	return b.desc.conv.ToString(fv)
}

// Deserialize parses s and writes the member on success. A parse
// failure or a failing check expression leaves the member unchanged.
func (b *BoundField) Deserialize(inst any, s string) error {
	fv, err := b.storage(inst)
	if err != nil {
		return err
	}
	if b.desc.conv == nil {
		return fmt.Errorf("field %q: %w", b.desc.name, ErrNotSerializable)
	}
	scratch := reflect.New(b.desc.typ).Elem()
	if err := b.desc.conv.FromString(s, scratch); err != nil {
		return fmt.Errorf("field %q: %w", b.desc.name, err)
	}
	if b.desc.check != nil {
		out, err := expr.Run(b.desc.check, map[string]any{"value": scratch.Interface()})
		if err != nil {
			return fmt.Errorf("field %q: check %q: %w", b.desc.name, b.desc.checkSrc, err)
		}
		if ok, _ := out.(bool); !ok {
			return fmt.Errorf("field %q: value %q: %w (%s)", b.desc.name, s, ErrCheckFailed, b.desc.checkSrc)
		}
	}
	fv.Set(scratch)
	return nil
}

func (b *BoundField) storage(inst any) (reflect.Value, error) {
	val := reflect.ValueOf(inst)
	if !val.IsValid() || val.Kind() != reflect.Pointer || val.IsNil() {
		return reflect.Value{}, fmt.Errorf("instance must be a non-nil *%s", b.goType)
	}
	if val.Type().Elem() != b.goType {
		return reflect.Value{}, fmt.Errorf("instance is %s, view is bound to *%s", val.Type(), b.goType)
	}
	return val.Elem().FieldByIndex(b.path), nil
}
