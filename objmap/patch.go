package objmap

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/propfield/propfield/debug"
	"github.com/propfield/propfield/encode"
	"github.com/propfield/propfield/ir"
	"github.com/propfield/propfield/parse"
	"github.com/propfield/propfield/schema"
)

// MergePatch applies an RFC 7386 merge patch to the instance's
// serialized form and writes the merged document back through the
// view. Keys the patch sets to null disappear from the merged
// document, which leaves those fields at their current values; patch
// keys outside the schema are ignored like any unknown key. The
// returned report covers the write-back pass.
//
// JSON objects cannot carry duplicate keys, so when a chain's schemas
// collide on a field name the merge base holds only the first
// occurrence; later same-named fields are never read or written here.
func MergePatch(v *schema.View, inst any, patch []byte) (*Report, error) {
	doc, err := ToDoc(v, inst)
	if err != nil {
		return nil, err
	}
	orig, err := encodeWireFirst(doc)
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("merge patch %s onto %s\n", patch, orig)
	}
	merged, err := jsonpatch.MergePatch(orig, patch)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	mergedDoc, err := parse.Parse(merged)
	if err != nil {
		return nil, fmt.Errorf("merge patch produced unreadable document: %w", err)
	}
	return FromDoc(v, inst, mergedDoc)
}

// encodeWireFirst renders doc as a compact JSON object keeping only
// the first occurrence of each key. The patch library decodes objects
// into a Go map, where a duplicate key's last occurrence would win and
// bleed into the first field on write-back.
func encodeWireFirst(doc *ir.Doc) ([]byte, error) {
	first := ir.New()
	seen := make(map[string]bool)
	for i := range doc.Keys {
		if seen[doc.Keys[i]] {
			continue
		}
		seen[doc.Keys[i]] = true
		first.Append(doc.Keys[i], doc.Values[i])
	}
	var buf bytes.Buffer
	if err := encode.Encode(first, &buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
