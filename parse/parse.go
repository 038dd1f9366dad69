// Package parse reads property documents in either text format.
package parse

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/propfield/propfield/format"
	"github.com/propfield/propfield/ir"
)

// Parse reads a property document. The format is auto-detected unless
// forced via ParseFormat: input whose first non-space byte is '{' is
// treated as JSON form, everything else as block form.
//
// The parser is deliberately tolerant: unknown keys are kept (the
// serializer decides what to do with them), duplicate keys are kept in
// order, and nested "{...}"/"[...]" values are captured as raw text so
// documents written by a richer schema still parse.
func Parse(d []byte, opts ...ParseOption) (*ir.Doc, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	in := bytes.TrimSpace(d)
	f := detect(in, pOpts)
	var (
		doc *ir.Doc
		err error
	)
	switch f {
	case format.JSONFormat:
		doc, err = parseJSON(string(in))
	default:
		doc, err = parseBlock(string(in))
	}
	if err != nil {
		return nil, err
	}
	if pOpts.strictDup {
		if key, ok := firstDup(doc); ok {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, key)
		}
	}
	return doc, nil
}

func detect(in []byte, pOpts *parseOpts) format.Format {
	if pOpts.format != nil {
		return *pOpts.format
	}
	if len(in) > 0 && in[0] == '{' {
		return format.JSONFormat
	}
	return format.BlockFormat
}

func firstDup(doc *ir.Doc) (string, bool) {
	seen := make(map[string]bool, doc.Len())
	for _, k := range doc.Keys {
		if seen[k] {
			return k, true
		}
		seen[k] = true
	}
	return "", false
}

func parseJSON(s string) (*ir.Doc, error) {
	doc := ir.New()
	i := 0
	skipSpace(s, &i)
	if i >= len(s) || s[i] != '{' {
		return nil, fmt.Errorf("%w: expected '{' at offset %d", ErrParse, i)
	}
	i++
	for {
		skipSpace(s, &i)
		if i >= len(s) {
			return nil, fmt.Errorf("%w: unterminated object", ErrParse)
		}
		if s[i] == '}' {
			i++
			break
		}
		key, err := readKey(s, &i)
		if err != nil {
			return nil, err
		}
		skipSpace(s, &i)
		if i >= len(s) || s[i] != ':' {
			return nil, fmt.Errorf("%w: expected ':' after key %q", ErrParse, key)
		}
		i++
		skipSpace(s, &i)
		val, err := readValue(s, &i)
		if err != nil {
			return nil, fmt.Errorf("%w (key %q)", err, key)
		}
		doc.Append(key, val)
		skipSpace(s, &i)
		if i < len(s) && s[i] == ',' {
			i++
			continue
		}
		if i < len(s) && s[i] == '}' {
			i++
			break
		}
		return nil, fmt.Errorf("%w: expected ',' or '}' after value of %q", ErrParse, key)
	}
	skipSpace(s, &i)
	if i != len(s) {
		return nil, fmt.Errorf("%w: trailing input at offset %d", ErrParse, i)
	}
	return doc, nil
}

func skipSpace(s string, i *int) {
	for *i < len(s) {
		switch s[*i] {
		case ' ', '\t', '\n', '\r':
			*i++
		default:
			return
		}
	}
}

func readKey(s string, i *int) (string, error) {
	if s[*i] == '"' {
		return readQuoted(s, i)
	}
	start := *i
	for *i < len(s) && !strings.ContainsRune(" \t\n\r:,{}", rune(s[*i])) {
		*i++
	}
	if *i == start {
		return "", fmt.Errorf("%w: empty key at offset %d", ErrParse, start)
	}
	return s[start:*i], nil
}

func readQuoted(s string, i *int) (string, error) {
	q, err := strconv.QuotedPrefix(s[*i:])
	if err != nil {
		return "", fmt.Errorf("%w: bad quoted string at offset %d", ErrParse, *i)
	}
	*i += len(q)
	u, err := strconv.Unquote(q)
	if err != nil {
		return "", fmt.Errorf("%w: bad quoted string at offset %d", ErrParse, *i)
	}
	return u, nil
}

// readValue reads a quoted string, a raw balanced "{...}"/"[...]"
// fragment, or a bare scalar terminated by ',' or '}'.
func readValue(s string, i *int) (string, error) {
	if *i >= len(s) {
		return "", fmt.Errorf("%w: missing value", ErrParse)
	}
	switch s[*i] {
	case '"':
		return readQuoted(s, i)
	case '{', '[':
		return readBalanced(s, i)
	}
	start := *i
	for *i < len(s) && s[*i] != ',' && s[*i] != '}' && s[*i] != '\n' {
		*i++
	}
	v := strings.TrimSpace(s[start:*i])
	if v == "" {
		return "", fmt.Errorf("%w: missing value at offset %d", ErrParse, start)
	}
	return v, nil
}

func readBalanced(s string, i *int) (string, error) {
	start := *i
	depth := 0
	for *i < len(s) {
		switch s[*i] {
		case '"':
			q, err := strconv.QuotedPrefix(s[*i:])
			if err != nil {
				return "", fmt.Errorf("%w: bad quoted string at offset %d", ErrParse, *i)
			}
			*i += len(q)
			continue
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				*i++
				return s[start:*i], nil
			}
			if depth < 0 {
				return "", fmt.Errorf("%w: unbalanced brackets at offset %d", ErrParse, *i)
			}
		}
		*i++
	}
	return "", fmt.Errorf("%w: unterminated value at offset %d", ErrParse, start)
}

func parseBlock(s string) (*ir.Doc, error) {
	doc := ir.New()
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, rest, err := splitEntry(line)
		if err != nil {
			return nil, fmt.Errorf("%w on line %d", err, n+1)
		}
		val := strings.TrimSpace(rest)
		if strings.HasPrefix(val, `"`) {
			u, err := strconv.Unquote(val)
			if err != nil {
				return nil, fmt.Errorf("%w: bad quoted value on line %d", ErrParse, n+1)
			}
			val = u
		}
		doc.Append(key, val)
	}
	return doc, nil
}

func splitEntry(line string) (key, rest string, err error) {
	if strings.HasPrefix(line, `"`) {
		i := 0
		key, err = readQuoted(line, &i)
		if err != nil {
			return "", "", err
		}
		rest = strings.TrimSpace(line[i:])
		if !strings.HasPrefix(rest, ":") {
			return "", "", fmt.Errorf("%w: expected ':' after key %q", ErrParse, key)
		}
		return key, rest[1:], nil
	}
	key, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: no ':' separator", ErrParse)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("%w: empty key", ErrParse)
	}
	return key, rest, nil
}
