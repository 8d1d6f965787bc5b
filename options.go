package safeharbor

import "github.com/ethereum/go-ethereum/log"

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger warnings are written to.
// Default is log.Root().
func WithLogger(logger log.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithEncoder sets the encoder used for agreement calls.
// Default is an ABIEncoder.
func WithEncoder(enc Encoder) BuilderOption {
	return func(b *Builder) {
		if enc != nil {
			b.encoder = enc
		}
	}
}

// WithStrictChains makes desired chains missing from the chain directory a
// fatal error instead of a warning. Disabled by default.
func WithStrictChains(strict bool) BuilderOption {
	return func(b *Builder) {
		b.strict = strict
	}
}
