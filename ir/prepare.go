package ir

import (
	"fmt"

	"github.com/shrine-maiden-heavy-industries/torii-go/fragment"
	"github.com/shrine-maiden-heavy-industries/torii-go/value"
)

type enableSpec struct {
	domain string
	enable value.Value
}

// Options configures Prepare.
type Options struct {
	enables       []enableSpec
	topPorts      []*value.Signal
	missingDomain MissingDomainFn
}

// Option configures Prepare at call time, following this module's
// functional-options convention.
type Option func(*Options)

// WithEnable registers an EnableInserter pass for domainName, run on
// every fragment in the tree that has statements driven in that domain.
func WithEnable(domainName string, enable value.Value) Option {
	return func(o *Options) { o.enables = append(o.enables, enableSpec{domainName, enable}) }
}

// WithMissingDomain overrides how Prepare synthesizes a ClockDomain for
// a name referenced by a ClockSignal/ResetSignal but never registered
// anywhere in the fragment tree (spec §4.6 step 2). The default
// constructs a plain domain.New(arena, name) with no reset-less/
// async-reset options.
func WithMissingDomain(fn MissingDomainFn) Option {
	return func(o *Options) { o.missingDomain = fn }
}

// WithTopPorts requests that each signal be exposed as a port on root
// once preparation finishes (spec §4.6 "Prepare ... given the externally
// requested port list"). Direction is inferred from root's own driver
// set: a signal root drives becomes Out, otherwise In.
func WithTopPorts(signals ...*value.Signal) Option {
	return func(o *Options) { o.topPorts = append(o.topPorts, signals...) }
}

// Prepare runs the full elaboration pipeline over root in the fixed
// order spec §4.6 requires: sample lowering, clock-domain propagation,
// missing-domain resolution, clock-domain lowering (which
// unconditionally folds each domain's own sync reset into the signals
// it drives), the EnableInserter passes requested with WithEnable, then
// port propagation and the WithTopPorts ports. Prepare never runs
// ResetInserter.
func Prepare(arena *value.Arena, root *fragment.Fragment, opts ...Option) error {
	cfg := &Options{}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := LowerSamples(arena, root); err != nil {
		return fmt.Errorf("ir.Prepare: %w", err)
	}

	table, err := PropagateDomains(root)
	if err != nil {
		return fmt.Errorf("ir.Prepare: %w", err)
	}

	if err := ResolveMissingDomains(arena, root, table, cfg.missingDomain); err != nil {
		return fmt.Errorf("ir.Prepare: %w", err)
	}

	if err := LowerDomains(root, table); err != nil {
		return fmt.Errorf("ir.Prepare: %w", err)
	}

	for _, es := range cfg.enables {
		if err := walkAll(root, func(f *fragment.Fragment) error {
			return EnableInserter(f, es.domain, es.enable)
		}); err != nil {
			return fmt.Errorf("ir.Prepare: %w", err)
		}
	}

	if err := PropagatePorts(root); err != nil {
		return fmt.Errorf("ir.Prepare: %w", err)
	}

	for _, sig := range cfg.topPorts {
		dir := fragment.In
		if _, driven := root.DomainOf(sig.ID); driven {
			dir = fragment.Out
		}
		if err := root.Ports.Add(sig, dir); err != nil {
			return fmt.Errorf("ir.Prepare: %w", err)
		}
	}
	return nil
}

func walkAll(f *fragment.Fragment, fn func(*fragment.Fragment) error) error {
	if err := fn(f); err != nil {
		return err
	}
	for _, sub := range f.Subfragments {
		if err := walkAll(sub.Frag, fn); err != nil {
			return err
		}
	}
	return nil
}
