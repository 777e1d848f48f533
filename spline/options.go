package spline

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// BoundaryKind selects the end condition of the spline.
type BoundaryKind int

const (
	// Natural sets the second derivative at the end to zero.
	Natural BoundaryKind = iota

	// Clamped prescribes the first derivative at the end.
	Clamped
)

// Boundary is the end condition for one end of the spline.
type Boundary struct {
	Kind  BoundaryKind
	Slope float64 // first derivative, used when Kind == Clamped
}

// NaturalBoundary returns a zero-curvature end condition.
func NaturalBoundary() Boundary {
	return Boundary{Kind: Natural}
}

// ClampedBoundary returns an end condition with the given first derivative.
func ClampedBoundary(slope float64) Boundary {
	return Boundary{Kind: Clamped, Slope: slope}
}

// String returns a human-readable description of the boundary.
func (b Boundary) String() string {
	switch b.Kind {
	case Natural:
		return "natural"
	case Clamped:
		return fmt.Sprintf("clamped(%g)", b.Slope)
	default:
		return "unknown"
	}
}

// Extrapolation selects how queries outside [x[0], x[n-1]] are answered.
type Extrapolation int

const (
	// ExtrapolateCubic extends the first and last cubic pieces.
	ExtrapolateCubic Extrapolation = iota

	// ExtrapolateConstant holds the end values.
	ExtrapolateConstant

	// ExtrapolateNaN returns NaN.
	ExtrapolateNaN
)

// String returns the name accepted by ParseExtrapolation.
func (e Extrapolation) String() string {
	switch e {
	case ExtrapolateCubic:
		return "cubic"
	case ExtrapolateConstant:
		return "constant"
	case ExtrapolateNaN:
		return "nan"
	default:
		return "unknown"
	}
}

// ParseExtrapolation converts a policy name to an Extrapolation.
// The empty string selects ExtrapolateCubic.
func ParseExtrapolation(name string) (Extrapolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cubic", "extend":
		return ExtrapolateCubic, nil
	case "constant", "hold":
		return ExtrapolateConstant, nil
	case "nan":
		return ExtrapolateNaN, nil
	default:
		return ExtrapolateCubic, fmt.Errorf("spline: unknown extrapolation %q", name)
	}
}

// Config holds construction and evaluation settings.
type Config struct {
	Start         Boundary
	End           Boundary
	Extrapolation Extrapolation

	// Workers bounds the number of goroutines used by parallel evaluation.
	Workers int
	// BlockSize is the number of queries combined per vector block.
	BlockSize int
	// ParallelThreshold is the smallest query count for which a parallel
	// request actually fans out.
	ParallelThreshold int

	Logger *zap.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a natural spline with cubic extrapolation.
func DefaultConfig() Config {
	return Config{
		Start:             NaturalBoundary(),
		End:               NaturalBoundary(),
		Extrapolation:     ExtrapolateCubic,
		Workers:           runtime.GOMAXPROCS(0),
		BlockSize:         256,
		ParallelThreshold: 4096,
		Logger:            zap.NewNop(),
	}
}

// WithBoundary sets both end conditions.
func WithBoundary(start, end Boundary) Option {
	return func(cfg *Config) {
		cfg.Start = start
		cfg.End = end
	}
}

// WithStartSlope clamps the first derivative at x[0].
func WithStartSlope(slope float64) Option {
	return func(cfg *Config) {
		cfg.Start = ClampedBoundary(slope)
	}
}

// WithEndSlope clamps the first derivative at x[n-1].
func WithEndSlope(slope float64) Option {
	return func(cfg *Config) {
		cfg.End = ClampedBoundary(slope)
	}
}

// WithExtrapolation sets the out-of-range policy.
func WithExtrapolation(e Extrapolation) Option {
	return func(cfg *Config) {
		cfg.Extrapolation = e
	}
}

// WithWorkers sets the goroutine budget for parallel evaluation.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithBlockSize sets the vector block length.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithParallelThreshold sets the minimum query count for parallel fan-out.
// Zero makes every parallel request fan out.
func WithParallelThreshold(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.ParallelThreshold = n
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
