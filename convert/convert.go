package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"

	"github.com/propfield/propfield/debug"
)

// Converter translates values of one static Go type to and from text.
// FromString must leave dst untouched when it returns an error, so a
// failed parse never corrupts previously valid state.
type Converter struct {
	// Type is the Go type this converter handles.
	Type reflect.Type

	// ToString encodes v, which is guaranteed to be of Type.
	ToString func(v reflect.Value) (string, error)

	// FromString decodes s into dst, an addressable value of Type.
	FromString func(s string, dst reflect.Value) error
}

// Registry resolves converters by Go type. Sequence types (slices and
// arrays) of any already-convertible element type resolve automatically;
// so do types implementing encoding.TextMarshaler and TextUnmarshaler.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Converter
}

// Default is the process-wide registry, populated with the built-in
// primitive converters. Custom registrations made during package init
// complete before any application goroutine serializes a field.
var Default = NewRegistry()

func NewRegistry() *Registry {
	r := &Registry{byType: make(map[reflect.Type]*Converter)}
	registerBuiltins(r)
	return r
}

// Register adds a converter for its Type. Registering a type twice,
// including one covered by a built-in, is an error.
func (r *Registry) Register(c *Converter) error {
	if c == nil {
		return fmt.Errorf("cannot register nil converter")
	}
	if c.Type == nil {
		return fmt.Errorf("converter must have a type")
	}
	if c.ToString == nil || c.FromString == nil {
		return fmt.Errorf("converter for %s must have both ToString and FromString", c.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byType[c.Type]; exists {
		return fmt.Errorf("converter for %s already registered", c.Type)
	}
	r.byType[c.Type] = c
	return nil
}

// Lookup resolves the converter for t. Resolution order: explicit
// registrations and built-ins, then encoding.TextMarshaler support,
// then derived sequence converters. Derived converters are cached.
func (r *Registry) Lookup(t reflect.Type) (*Converter, bool) {
	r.mu.RLock()
	c, ok := r.byType[t]
	r.mu.RUnlock()
	if ok {
		return c, true
	}
	if c := textConverter(t); c != nil {
		if debug.Convert() {
			debug.Logf("convert: derived text converter for %s\n", t)
		}
		return r.cache(c), true
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elem, ok := r.Lookup(t.Elem())
		if !ok {
			return nil, false
		}
		if debug.Convert() {
			debug.Logf("convert: derived sequence converter for %s\n", t)
		}
		return r.cache(seqConverter(t, elem)), true
	}
	if debug.Convert() {
		debug.Logf("convert: no converter for %s\n", t)
	}
	return nil, false
}

// Convertible reports whether fields of type t can be serialized.
func (r *Registry) Convertible(t reflect.Type) bool {
	_, ok := r.Lookup(t)
	return ok
}

func (r *Registry) cache(c *Converter) *Converter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.byType[c.Type]; exists {
		return prev
	}
	r.byType[c.Type] = c
	return c
}

// Register adds a typed converter pair to the Default registry.
// The from function's error result guards the write: on error the
// destination keeps its prior value.
func Register[T any](to func(T) string, from func(string) (T, error)) error {
	return RegisterIn[T](Default, to, from)
}

// RegisterIn is Register against a specific registry.
func RegisterIn[T any](r *Registry, to func(T) string, from func(string) (T, error)) error {
	return r.Register(&Converter{
		Type: reflect.TypeFor[T](),
		ToString: func(v reflect.Value) (string, error) {
			return to(v.Interface().(T)), nil
		},
		FromString: func(s string, dst reflect.Value) error {
			parsed, err := from(s)
			if err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(parsed))
			return nil
		},
	})
}

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// textConverter builds a converter for types carrying MarshalText and
// UnmarshalText. UnmarshalText decodes into a scratch value first so a
// failed parse leaves the destination unchanged.
func textConverter(t reflect.Type) *Converter {
	pt := reflect.PointerTo(t)
	if !pt.Implements(textUnmarshalerType) {
		return nil
	}
	if !t.Implements(textMarshalerType) && !pt.Implements(textMarshalerType) {
		return nil
	}
	return &Converter{
		Type: t,
		ToString: func(v reflect.Value) (string, error) {
			var tm encoding.TextMarshaler
			if t.Implements(textMarshalerType) {
				tm = v.Interface().(encoding.TextMarshaler)
			} else {
				p := reflect.New(t)
				p.Elem().Set(v)
				tm = p.Interface().(encoding.TextMarshaler)
			}
			d, err := tm.MarshalText()
			if err != nil {
				return "", err
			}
			return string(d), nil
		},
		FromString: func(s string, dst reflect.Value) error {
			scratch := reflect.New(t)
			if err := scratch.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return err
			}
			dst.Set(scratch.Elem())
			return nil
		},
	}
}
