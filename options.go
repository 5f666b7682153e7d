package normalmap

// Option configures a Generator during creation.
//
// Example:
//
//	// Defaults: strength 1, no flip, DirectX, single-threaded
//	g, _ := normalmap.NewGenerator()
//
//	// Stronger relief, inverted embossing, all CPUs
//	g, _ := normalmap.NewGenerator(
//	    normalmap.WithStrength(3),
//	    normalmap.WithFlip(true),
//	    normalmap.WithWorkers(0),
//	)
type Option func(*options)

// options holds the Generator configuration.
type options struct {
	strength   float64
	flip       bool
	convention Convention
	workers    int
}

// DefaultStrength is the gradient amplification used when none is given.
const DefaultStrength = 1.0

// defaultOptions returns the default generator options.
func defaultOptions() options {
	return options{
		strength:   DefaultStrength,
		flip:       false,
		convention: DirectX,
		workers:    1,
	}
}

// WithStrength sets the gradient amplification applied before
// normalization. It must be positive; values in (0, 10] are typical.
func WithStrength(strength float64) Option {
	return func(o *options) {
		o.strength = strength
	}
}

// WithFlip inverts the sign of both gradient contributions, flipping the
// apparent embossing direction without touching the height field.
func WithFlip(flip bool) Option {
	return func(o *options) {
		o.flip = flip
	}
}

// WithConvention selects the channel encoding. The default is DirectX.
func WithConvention(c Convention) Option {
	return func(o *options) {
		o.convention = c
	}
}

// WithWorkers sets how many goroutines split the rows of one image.
// 1 (the default) runs on the calling goroutine; 0 or negative uses
// GOMAXPROCS.
//
// The Generator owns the resulting pool; call Close when done.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
