package parse

import "github.com/propfield/propfield/format"

type ParseOption func(*parseOpts)

type parseOpts struct {
	format    *format.Format
	strictDup bool
}

// ParseFormat forces the input format instead of auto-detecting it.
func ParseFormat(f format.Format) ParseOption {
	return func(po *parseOpts) { po.format = &f }
}

// RejectDuplicates makes duplicate keys a parse error. The default keeps
// all occurrences, which composed schema chains rely on.
func RejectDuplicates(v bool) ParseOption {
	return func(po *parseOpts) { po.strictDup = v }
}
