package ir

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/stmt"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

// EnableInserter gathers every top-level Assign driven in domainName and
// re-wraps them under a single `Switch(enable){1: <assigns>}` guard,
// leaving every other statement's relative order untouched. This is one
// of the spec's two helper transforms for wrapping a fragment boundary
// in an arbitrary, caller-supplied gating condition; it is distinct
// from (and not a substitute for) the domain's own mandatory sync reset,
// which LowerDomains folds in unconditionally regardless of whether
// this helper is ever called. A no-op if domainName has no statements.
func EnableInserter(f *fragment.Fragment, domainName string, enable value.Value) error {
	var matched, rest stmt.List
	for _, s := range f.Statements {
		if a, ok := s.(*stmt.Assign); ok && a.Domain == domainName {
			matched = append(matched, a)
			continue
		}
		rest = append(rest, s)
	}
	if len(matched) == 0 {
		return nil
	}
	sw, err := stmt.NewSwitch(enable, []stmt.Case{{Patterns: []stmt.Pattern{"1"}, Body: matched}})
	if err != nil {
		return fmt.Errorf("ir.EnableInserter: %w", err)
	}
	f.Statements = append(rest, sw)
	return nil
}

// ResetInserter appends a `Switch(rst){1: <signal <= reset value>}`
// block overriding every signal domainName drives within f back to its
// Reset value whenever rst is asserted, exactly like EnableInserter but
// for an arbitrary, caller-supplied reset condition rather than a whole
// domain's own. It is the second of the spec's two helper transforms:
// unlike the mandatory sync-reset folding LowerDomains already performs
// for a domain's own non-async reset, rst here need not be (and usually
// isn't) that domain's ClockDomain.Reset signal — callers reach for this
// when they want some other condition (a soft reset, a shared global
// reset) to also force a domain's signals back to their reset values. A
// no-op if f drives no signals in domainName.
func ResetInserter(f *fragment.Fragment, domainName string, rst value.Value) error {
	return injectSyncReset(f, domainName, rst)
}
