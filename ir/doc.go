package ir

import "slices"

// Doc is an ordered mapping from field names to string-encoded values.
// Keys and Values are parallel; duplicate keys are representable and
// preserved in order, so a composed schema chain whose members declare
// the same field name round-trips without loss.
type Doc struct {
	Keys   []string
	Values []string
}

// Entry is one key/value pair of a Doc.
type Entry struct {
	Key   string
	Value string
}

func New() *Doc {
	return &Doc{}
}

func FromEntries(entries []Entry) *Doc {
	d := &Doc{
		Keys:   make([]string, len(entries)),
		Values: make([]string, len(entries)),
	}
	for i := range entries {
		d.Keys[i] = entries[i].Key
		d.Values[i] = entries[i].Value
	}
	return d
}

func (d *Doc) Len() int {
	return len(d.Keys)
}

// Append adds an entry; it does not deduplicate.
func (d *Doc) Append(key, value string) {
	d.Keys = append(d.Keys, key)
	d.Values = append(d.Values, value)
}

// Get returns the value of the first entry named key, in entry order.
func (d *Doc) Get(key string) (string, bool) {
	for i, k := range d.Keys {
		if k == key {
			return d.Values[i], true
		}
	}
	return "", false
}

// Set overwrites the first entry named key, appending when absent.
func (d *Doc) Set(key, value string) {
	for i, k := range d.Keys {
		if k == key {
			d.Values[i] = value
			return
		}
	}
	d.Append(key, value)
}

// Delete removes every entry named key, reporting whether any was removed.
func (d *Doc) Delete(key string) bool {
	removed := false
	for i := 0; i < len(d.Keys); {
		if d.Keys[i] != key {
			i++
			continue
		}
		d.Keys = slices.Delete(d.Keys, i, i+1)
		d.Values = slices.Delete(d.Values, i, i+1)
		removed = true
	}
	return removed
}

func (d *Doc) Entries() []Entry {
	entries := make([]Entry, len(d.Keys))
	for i := range d.Keys {
		entries[i] = Entry{Key: d.Keys[i], Value: d.Values[i]}
	}
	return entries
}

func (d *Doc) Clone() *Doc {
	return &Doc{
		Keys:   slices.Clone(d.Keys),
		Values: slices.Clone(d.Values),
	}
}

// Equal reports whether two docs have the same entries in the same order.
func (d *Doc) Equal(o *Doc) bool {
	return slices.Equal(d.Keys, o.Keys) && slices.Equal(d.Values, o.Values)
}
