package domain

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// ResetValue returns the signal whose value this domain's reset asserts
// to, erroring if the domain is reset-less and allowResetLess is false
// (spec §3 ResetSignal: "allow_reset_less: bool").
func (d *ClockDomain) ResetValue(allowResetLess bool) (*value.Signal, error) {
	if d.Reset != nil {
		return d.Reset, nil
	}
	if allowResetLess {
		return nil, nil
	}
	return nil, fmt.Errorf("domain %q: %w", d.Name, ErrResetLessWithReset)
}
