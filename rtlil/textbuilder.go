package rtlil

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/exp/slices"
)

// Param is one cell parameter value: a string, a real, or a sized
// two's-complement constant (spec §4.7.6 "cell parameters"), matching
// the three value.Const-shaped branches the source backend's cell()
// accepts.
type Param struct {
	kind   paramKind
	str    string
	real   float64
	val    *big.Int
	width  int
	signed bool
}

type paramKind int

const (
	paramString paramKind = iota
	paramReal
	paramConst
)

// StrParam builds a string-valued parameter.
func StrParam(s string) Param { return Param{kind: paramString, str: s} }

// RealParam builds a floating point parameter.
func RealParam(f float64) Param { return Param{kind: paramReal, real: f} }

// ConstParam builds a sized constant parameter.
func ConstParam(v *big.Int, width int, signed bool) Param {
	return Param{kind: paramConst, val: v, width: width, signed: signed}
}

// IntParam is a convenience ConstParam for a small non-negative integer,
// sized to exactly fit v.
func IntParam(v int) Param {
	width := bitsFor(big.NewInt(int64(v)))
	return ConstParam(big.NewInt(int64(v)), width, false)
}

func (p Param) render() (line string, signed bool) {
	switch p.kind {
	case paramString:
		return formatString(p.str), false
	case paramReal:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", p.real)), false
	default:
		return formatConstWidth(p.val, p.width), p.signed
	}
}

// Builder assembles a complete RTLIL design: zero or more modules in
// the order they are finished, sharing one module-name namespace.
type Builder struct {
	buf      strings.Builder
	names    *namer
	emitSrc  bool
}

// NewBuilder returns a fresh, empty design builder. emitSrc controls
// whether \src attributes are written alongside every attributable
// construct (spec §4.7, "emit_src").
func NewBuilder(emitSrc bool) *Builder {
	return &Builder{names: newNamer(), emitSrc: emitSrc}
}

// String returns the complete RTLIL text assembled so far.
func (b *Builder) String() string { return b.buf.String() }

// Module starts a new module named name (anonymous, indexed name if
// empty), applying generator + attrs. The returned ModuleBuilder owns
// its own wire/cell namespace, distinct from b's module namespace.
func (b *Builder) Module(name string, attrs Attrs) *ModuleBuilder {
	resolved := b.names.makeName(name, false)
	m := &ModuleBuilder{
		parent:  b,
		names:   newNamer(),
		name:    resolved,
		emitSrc: b.emitSrc,
	}
	merged := Attrs{"generator": StrAttr("torii-go")}
	for k, v := range attrs {
		merged[k] = v
	}
	writeAttrs(&m.buf, merged, "", b.emitSrc, 0)
	fmt.Fprintf(&m.buf, "module %s\n", resolved)
	return m
}

// ModuleBuilder accumulates one module's body text.
type ModuleBuilder struct {
	parent  *Builder
	buf     strings.Builder
	names   *namer
	name    string
	emitSrc bool
}

// Name returns the module's resolved RTLIL identifier.
func (m *ModuleBuilder) Name() string { return m.name }

// Anonymous returns a fresh unique name for an unnamed subfragment cell.
func (m *ModuleBuilder) Anonymous() string { return m.names.anonymous() }

// Wire declares a wire of the given width, optionally as a numbered
// port ("input"/"output"/"inout"), returning its resolved name.
func (m *ModuleBuilder) Wire(width int, portID int, portKind string, name string, attrs Attrs, src string) (string, error) {
	if width > maxWireWidth {
		return "", fmt.Errorf("rtlil.Wire(%q): width %d: %w", name, width, ErrWireTooWide)
	}
	writeAttrs(&m.buf, attrs, src, m.emitSrc, 1)
	resolved := m.names.makeName(name, false)
	if portID == 0 {
		fmt.Fprintf(&m.buf, "  wire width %d %s\n", width, resolved)
		return resolved, nil
	}
	switch portKind {
	case "input", "output", "inout":
	default:
		return "", fmt.Errorf("rtlil.Wire(%q): %w", name, ErrBadPortKind)
	}
	fmt.Fprintf(&m.buf, "  wire width %d %s %d %s\n", width, portKind, portID, resolved)
	return resolved, nil
}

// Connect emits a direct continuous assignment between two already
// resolved signal specifications.
func (m *ModuleBuilder) Connect(lhs, rhs string) {
	fmt.Fprintf(&m.buf, "  connect %s %s\n", lhs, rhs)
}

// Memory declares a named memory cell's backing storage (spec §4.7.7),
// returning its resolved name.
func (m *ModuleBuilder) Memory(width, size int, name string, attrs Attrs, src string) string {
	writeAttrs(&m.buf, attrs, src, m.emitSrc, 1)
	resolved := m.names.makeName(name, false)
	fmt.Fprintf(&m.buf, "  memory width %d size %d %s\n", width, size, resolved)
	return resolved
}

// Cell instantiates kind, connecting params and ports. A port name made
// only of decimal digits is rejected with ErrPositionalPort: this module
// never connects cell ports positionally (spec §4.7.6).
func (m *ModuleBuilder) Cell(kind, name string, params map[string]Param, ports map[string]string, portOrder []string, attrs Attrs, src string) (string, error) {
	writeAttrs(&m.buf, attrs, src, m.emitSrc, 1)
	resolved := m.names.makeName(name, false)
	fmt.Fprintf(&m.buf, "  cell %s %s\n", kind, resolved)
	for _, pname := range paramOrder(params) {
		line, signed := params[pname].render()
		if signed {
			fmt.Fprintf(&m.buf, "    parameter signed \\%s %s\n", pname, line)
		} else {
			fmt.Fprintf(&m.buf, "    parameter \\%s %s\n", pname, line)
		}
	}
	for _, port := range portOrder {
		if isPositionalPortName(port) {
			return "", fmt.Errorf("rtlil.Cell(%q): port %q: %w", kind, port, ErrPositionalPort)
		}
		fmt.Fprintf(&m.buf, "    connect \\%s %s\n", port, ports[port])
	}
	m.buf.WriteString("  end\n")
	return resolved, nil
}

func isPositionalPortName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func paramOrder(params map[string]Param) []string {
	out := make([]string, 0, len(params))
	for k := range params {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Process starts a named process (one per LHS group, spec §4.7.3).
func (m *ModuleBuilder) Process(name string, attrs Attrs, src string) *ProcessBuilder {
	writeAttrs(&m.buf, attrs, src, m.emitSrc, 1)
	resolved := m.names.makeName(name, true)
	fmt.Fprintf(&m.buf, "  process %s\n", resolved)
	return &ProcessBuilder{mod: m, name: resolved}
}

// Finish closes the module and flushes it into the parent Builder.
func (m *ModuleBuilder) Finish() {
	m.buf.WriteString("end\n")
	m.parent.buf.WriteString(m.buf.String())
}

// ProcessBuilder accumulates one process's body.
type ProcessBuilder struct {
	mod  *ModuleBuilder
	name string
}

// Case opens the process's single top-level (unconditional) case.
func (p *ProcessBuilder) Case() *CaseBuilder {
	return &CaseBuilder{mod: p.mod, indent: 2}
}

// Finish closes the process.
func (p *ProcessBuilder) Finish() {
	p.mod.buf.WriteString("  end\n")
}

// CaseBuilder accumulates one switch-case arm's (or the top-level
// process case's) assignments and nested switches.
type CaseBuilder struct {
	mod    *ModuleBuilder
	indent int
}

// Assign emits one RTLIL `assign` statement.
func (c *CaseBuilder) Assign(lhs, rhs string) {
	fmt.Fprintf(&c.mod.buf, "%sassign %s %s\n", strings.Repeat("  ", c.indent), lhs, rhs)
}

// Switch opens a nested switch on cond within this case.
func (c *CaseBuilder) Switch(cond string, attrs Attrs, src string) *SwitchBuilder {
	writeAttrs(&c.mod.buf, attrs, src, c.mod.emitSrc, c.indent)
	fmt.Fprintf(&c.mod.buf, "%sswitch %s\n", strings.Repeat("  ", c.indent), cond)
	return &SwitchBuilder{mod: c.mod, indent: c.indent}
}

// SwitchBuilder accumulates a switch's case arms.
type SwitchBuilder struct {
	mod    *ModuleBuilder
	indent int
}

// Case opens one arm matching any of values (a bare "case" with no
// values matches unconditionally, used as the default arm).
func (s *SwitchBuilder) Case(attrs Attrs, src string, values ...string) *CaseBuilder {
	writeAttrs(&s.mod.buf, attrs, src, s.mod.emitSrc, s.indent+1)
	pad := strings.Repeat("  ", s.indent+1)
	if len(values) == 0 {
		fmt.Fprintf(&s.mod.buf, "%scase\n", pad)
	} else {
		fmt.Fprintf(&s.mod.buf, "%scase %s\n", pad, strings.Join(values, ", "))
	}
	return &CaseBuilder{mod: s.mod, indent: s.indent + 2}
}

// Finish closes the switch.
func (s *SwitchBuilder) Finish() {
	fmt.Fprintf(&s.mod.buf, "%send\n", strings.Repeat("  ", s.indent))
}
