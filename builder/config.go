// Package builder provides the DSL surface for constructing a
// fragment.Fragment by hand. This file holds the functional-options
// type used to configure a Module at construction time; see doc.go for
// the package overview.
//
// Option mutates a config before the Module's Fragment is created.
// config holds two fields: attrs (fragment-level attributes, emitted
// verbatim by the rtlil package) and flatten (spec §3 "Flatten"). Use
// newConfig to obtain defaults, then apply any number of Options in
// order; later options override earlier ones.
package builder

// Option customizes a Module at construction time. Option constructors
// never panic and ignore nil inputs.
type Option func(cfg *config)

// config holds the configurable parameters for Module construction.
type config struct {
	attrs   map[string]string
	flatten bool
}

// newConfig returns a config initialized with defaults, then applies
// each Option in order.
func newConfig(opts ...Option) *config {
	cfg := &config{attrs: map[string]string{}}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithAttr attaches a fragment-level attribute, emitted verbatim as an
// RTLIL `attribute` line (spec §4.7).
func WithAttr(key, val string) Option {
	return func(cfg *config) {
		if key != "" {
			cfg.attrs[key] = val
		}
	}
}

// WithFlatten marks the fragment for inlining into its parent during
// elaboration (spec §3 "Flatten").
func WithFlatten() Option {
	return func(cfg *config) { cfg.flatten = true }
}
