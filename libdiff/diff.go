package libdiff

import (
	"fmt"
	"io"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/propfield/propfield/ir"
)

// Op classifies one entry of a document diff.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("<err: %d is not an op>", o)
	}
}

// Change describes what happened to one document entry. From is the
// old value and To the new one; deletes have no To, inserts no From.
type Change struct {
	Op   Op
	Key  string
	From string
	To   string
}

// Diff compares two property documents entry by entry and returns one
// Change per aligned entry, in document order. Keys are aligned by a
// minimal edit script over the key sequences, so a value change on a
// stable key reports as a replace rather than a delete plus insert,
// and duplicate keys align positionally.
func Diff(from, to *ir.Doc) []Change {
	keyMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapKeys(keyMap, runeMap, from)
	toRunes := mapKeys(keyMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Change
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				res = append(res, Change{
					Op:   OpDelete,
					Key:  runeMap[r],
					From: from.Values[fi],
				})
				fi++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				c := Change{
					Key:  runeMap[r],
					From: from.Values[fi],
					To:   to.Values[ti],
				}
				if c.From != c.To {
					c.Op = OpReplace
				}
				res = append(res, c)
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				res = append(res, Change{
					Op:  OpInsert,
					Key: runeMap[r],
					To:  to.Values[ti],
				})
				ti++
			}
		}
	}
	return res
}

// Equal reports whether two documents have the same entries in the
// same order.
func Equal(from, to *ir.Doc) bool {
	for _, c := range Diff(from, to) {
		if c.Op != OpEqual {
			return false
		}
	}
	return true
}

// Render writes changes as prefixed lines, one per entry: "  " for
// unchanged, "- " for removed, "+ " for added, and a remove/add pair
// for replaced values.
func Render(w io.Writer, changes []Change) error {
	for _, c := range changes {
		var err error
		switch c.Op {
		case OpEqual:
			_, err = fmt.Fprintf(w, "  %s: %s\n", c.Key, c.From)
		case OpDelete:
			_, err = fmt.Fprintf(w, "- %s: %s\n", c.Key, c.From)
		case OpInsert:
			_, err = fmt.Fprintf(w, "+ %s: %s\n", c.Key, c.To)
		case OpReplace:
			_, err = fmt.Fprintf(w, "- %s: %s\n+ %s: %s\n", c.Key, c.From, c.Key, c.To)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func mapKeys(m map[string]rune, im map[rune]string, doc *ir.Doc) []rune {
	rs := make([]rune, len(doc.Keys))
	for i, k := range doc.Keys {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}
