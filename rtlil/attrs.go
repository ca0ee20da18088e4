package rtlil

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Attrs is a set of RTLIL attributes attached to a module, wire, cell,
// or switch case. Keys are sorted before emission so output does not
// depend on Go's randomized map iteration (spec §9 "Determinism under
// iteration").
type Attrs map[string]AttrValue

// AttrValue is one attribute's value: either a plain string (quoted on
// emission) or a pre-rendered sized constant (used for the "init"
// attribute of synchronously driven signals).
type AttrValue struct {
	raw  bool
	text string
}

// StrAttr wraps a plain string attribute value.
func StrAttr(s string) AttrValue { return AttrValue{text: formatString(s)} }

// ConstAttr wraps a sized-constant attribute value.
func ConstAttr(v *big.Int, width int) AttrValue {
	return AttrValue{raw: true, text: formatConstWidth(v, width)}
}

// IntAttr wraps a small non-negative integer attribute value (e.g. the
// conventional "1" used for boolean-flag attributes such as "top").
func IntAttr(v int) AttrValue { return AttrValue{raw: true, text: fmt.Sprintf("%d", v)} }

func (v AttrValue) render() string {
	if v.raw {
		return v.text
	}
	return v.text
}

// writeAttrs appends one "attribute \name value" line per entry in a,
// sorted by name, at the given indent, followed by a src attribute line
// when src is non-empty and emitSrc is set.
func writeAttrs(buf *strings.Builder, a Attrs, src string, emitSrc bool, indent int) {
	pad := strings.Repeat("  ", indent)
	keys := maps.Keys(a)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%sattribute \\%s %s\n", pad, k, a[k].render())
	}
	if src != "" && emitSrc {
		fmt.Fprintf(buf, "%sattribute \\src %s\n", pad, formatString(src))
	}
}
