// Package torii is a single-import facade over this module's
// subpackages (value, shape, domain, fragment, builder, memory, ir,
// rtlil), grounded on the teacher's own root package: one place to read
// the common constructors without chasing down which subpackage defines
// them.
//
// A typical design: allocate an Arena, build Signals and a Module from
// it, call Prepare once elaboration is complete, then Convert to RTLIL
// text.
package torii
