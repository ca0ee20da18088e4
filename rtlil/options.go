package rtlil

// Options configures one Convert call (spec §4.7, "emit_src").
type Options struct {
	emitSrc bool
	topName string
}

// Option configures Options, following the functional-options
// convention used throughout this module.
type Option func(*Options)

// WithEmitSrc controls whether `\src` attributes are written alongside
// every attributable wire/cell/process/switch construct, recording the
// originating Go call site captured in each stmt.SrcLoc. Off by
// default, since most callers convert programmatically-built fragments
// with no meaningful source location to report.
func WithEmitSrc(emit bool) Option {
	return func(o *Options) { o.emitSrc = emit }
}

// WithTopName overrides the root module's name (default "top").
func WithTopName(name string) Option {
	return func(o *Options) { o.topName = name }
}

func newOptions(opts ...Option) *Options {
	o := &Options{topName: "top"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
