package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// seqConverter derives a converter for a slice or array type from its
// element converter. The encoding is "[a, b, c]"; elements that would
// be ambiguous in that form are Go-quoted. Nesting recurses naturally
// since the element converter may itself be a sequence converter.
func seqConverter(t reflect.Type, elem *Converter) *Converter {
	return &Converter{
		Type: t,
		ToString: func(v reflect.Value) (string, error) {
			var sb strings.Builder
			sb.WriteByte('[')
			for i := 0; i < v.Len(); i++ {
				if i > 0 {
					sb.WriteString(", ")
				}
				s, err := elem.ToString(v.Index(i))
				if err != nil {
					return "", fmt.Errorf("element %d: %w", i, err)
				}
				sb.WriteString(escapeElem(s))
			}
			sb.WriteByte(']')
			return sb.String(), nil
		},
		FromString: func(s string, dst reflect.Value) error {
			elems, err := splitElems(s)
			if err != nil {
				return err
			}
			if t.Kind() == reflect.Array && len(elems) != t.Len() {
				return fmt.Errorf("expected %d elements for %s, got %d", t.Len(), t, len(elems))
			}
			// decode into scratch storage so dst is untouched on failure
			var scratch reflect.Value
			if t.Kind() == reflect.Array {
				scratch = reflect.New(t).Elem()
			} else {
				scratch = reflect.MakeSlice(t, len(elems), len(elems))
			}
			for i, es := range elems {
				if err := elem.FromString(es, scratch.Index(i)); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
			}
			dst.Set(scratch)
			return nil
		},
	}
}

// escapeElem quotes an element whose raw form would confuse splitElems.
func escapeElem(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, `[],"\`) ||
		s != strings.TrimSpace(s) {
		return strconv.Quote(s)
	}
	return s
}

// splitElems splits the "[a, b, c]" sequence encoding into raw element
// strings, honoring quoting and bracket nesting.
func splitElems(s string) ([]string, error) {
	body := strings.TrimSpace(s)
	if len(body) < 2 || body[0] != '[' || body[len(body)-1] != ']' {
		return nil, fmt.Errorf("not a sequence: %q", s)
	}
	body = body[1 : len(body)-1]
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	var elems []string
	depth := 0
	start := 0
	for i := 0; i < len(body); {
		switch body[i] {
		case '"':
			q, err := strconv.QuotedPrefix(body[i:])
			if err != nil {
				return nil, fmt.Errorf("unterminated quote in sequence %q", s)
			}
			i += len(q)
		case '[':
			depth++
			i++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced brackets in sequence %q", s)
			}
			i++
		case ',':
			if depth == 0 {
				elems = append(elems, body[start:i])
				start = i + 1
			}
			i++
		default:
			i++
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets in sequence %q", s)
	}
	elems = append(elems, body[start:])
	res := make([]string, len(elems))
	for i, e := range elems {
		e = strings.TrimSpace(e)
		if strings.HasPrefix(e, `"`) {
			u, err := strconv.Unquote(e)
			if err != nil {
				return nil, fmt.Errorf("bad quoted element %q: %w", e, err)
			}
			e = u
		}
		res[i] = e
	}
	return res, nil
}
