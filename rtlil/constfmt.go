package rtlil

import (
	"fmt"
	"math/big"
	"strings"
)

var stringEscaper = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
	"\t", `\t`,
	"\r", `\r`,
	"\n", `\n`,
)

// formatString renders s as an RTLIL string literal.
func formatString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// bitsFor returns the number of bits needed to represent v as an
// unsigned value (1 for zero). For a negative v it returns the bit
// length of |v|, with no sign bit.
func bitsFor(v *big.Int) int {
	if v.Sign() == 0 {
		return 1
	}
	return v.BitLen()
}

// formatConstWidth renders v (reduced into width bits of two's
// complement) as an RTLIL sized bit-string constant: "<width>'<bits>".
func formatConstWidth(v *big.Int, width int) string {
	if width == 0 {
		return "0'"
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	twos := new(big.Int).Mod(v, mod)
	if twos.Sign() < 0 {
		twos.Add(twos, mod)
	}
	bits := twos.Text(2)
	if len(bits) < width {
		bits = strings.Repeat("0", width-len(bits)) + bits
	}
	return fmt.Sprintf("%d'%s", width, bits)
}

// formatIntParam renders a plain non-negative Go int the way the source
// backend's _const(int) branch does: small values print as plain
// decimal, values needing Verilog-style sign-extension are instead
// rendered as a sized constant at least 32 bits wide.
func formatIntParam(v int64) string {
	if v >= 0 && v < (1<<31)-1 {
		return fmt.Sprintf("%d", v)
	}
	width := bitsFor(big.NewInt(v))
	if width < 32 {
		width = 32
	}
	return formatConstWidth(big.NewInt(v), width)
}
