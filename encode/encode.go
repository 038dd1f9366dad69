package encode

import (
	"io"
	"strconv"
	"strings"

	"github.com/propfield/propfield/format"
	"github.com/propfield/propfield/ir"
)

type EncState struct {
	indent int
	wire   bool

	format format.Format

	Color func(ColorAttr, string) string
}

// Encode writes a property document. JSONFormat output is a JSON object
// of string values, one entry per line unless EncodeWire is set;
// BlockFormat output is one "name: value" line per entry. Encoding the
// same document twice yields identical bytes.
func Encode(doc *ir.Doc, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsBlock() {
		return encodeBlock(doc, w, es)
	}
	return encodeJSON(doc, w, es)
}

func encodeJSON(doc *ir.Doc, w io.Writer, es *EncState) error {
	if doc.Len() == 0 {
		return writeString(w, "{}\n")
	}
	open, sep, close := "{\n", ",\n", "\n}\n"
	pad := strings.Repeat(" ", es.indent)
	if es.wire {
		open, sep, close, pad = "{", ", ", "}", ""
	}
	if err := writeString(w, open); err != nil {
		return err
	}
	for i := range doc.Keys {
		if i > 0 {
			if err := writeString(w, sep); err != nil {
				return err
			}
		}
		entry := pad +
			es.color(FieldColor, strconv.Quote(doc.Keys[i])) +
			es.color(SepColor, ": ") +
			es.color(ValueColor, strconv.Quote(doc.Values[i]))
		if err := writeString(w, entry); err != nil {
			return err
		}
	}
	return writeString(w, close)
}

func encodeBlock(doc *ir.Doc, w io.Writer, es *EncState) error {
	for i := range doc.Keys {
		line := es.color(FieldColor, blockKey(doc.Keys[i])) +
			es.color(SepColor, ": ") +
			es.color(ValueColor, blockValue(doc.Values[i])) + "\n"
		if err := writeString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// blockKey quotes keys the block parser could not read back bare.
func blockKey(k string) string {
	if k == "" || strings.ContainsAny(k, ":#\"\n") || k != strings.TrimSpace(k) {
		return strconv.Quote(k)
	}
	return k
}

// blockValue quotes values whose raw form would not round-trip on one
// line: empty values, padded values, multi-line values, and values the
// parser would mistake for a quoted string.
func blockValue(v string) string {
	if v == "" || strings.HasPrefix(v, `"`) || strings.ContainsRune(v, '\n') ||
		v != strings.TrimSpace(v) {
		return strconv.Quote(v)
	}
	return v
}

func (es *EncState) color(attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(attr, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
