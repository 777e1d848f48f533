// Package config loads interpolation problems from YAML files.
//
// A file names the knot table, the boundary slopes and the evaluation
// settings:
//
//	knots:  [1, 2, 3, 4]
//	values: [0.84, 0.91, 0.14, -0.76]
//	start_slope: 0.54     # optional, natural when absent
//	extrapolation: cubic  # cubic | constant | nan
//	parallel: true
//	workers: 4
//	block_size: 256
//	parallel_threshold: 1024  # queries below this run serially
//
// Unknown keys are rejected so a misspelled setting does not silently fall
// back to its default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/erikcs/mnspline/spline"
)

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("config: invalid")

// Config describes one spline and how to evaluate it.
type Config struct {
	Knots         []float64 `yaml:"knots"`
	Values        []float64 `yaml:"values"`
	StartSlope    *float64  `yaml:"start_slope,omitempty"`
	EndSlope      *float64  `yaml:"end_slope,omitempty"`
	Extrapolation string    `yaml:"extrapolation,omitempty"`
	Parallel      bool      `yaml:"parallel"`
	Workers       int       `yaml:"workers,omitempty"`
	BlockSize     int       `yaml:"block_size,omitempty"`

	// ParallelThreshold overrides the query count below which parallel
	// requests run serially. Zero always fans out.
	ParallelThreshold *int `yaml:"parallel_threshold,omitempty"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that do not need a spline to be built.
// Knot ordering is left to spline.New.
func (c *Config) Validate() error {
	if len(c.Knots) != len(c.Values) {
		return fmt.Errorf("%w: %d knots but %d values", ErrInvalid, len(c.Knots), len(c.Values))
	}
	if len(c.Knots) < 2 {
		return fmt.Errorf("%w: need at least two knots, got %d", ErrInvalid, len(c.Knots))
	}
	if _, err := spline.ParseExtrapolation(c.Extrapolation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers = %d", ErrInvalid, c.Workers)
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("%w: block_size = %d", ErrInvalid, c.BlockSize)
	}
	if c.ParallelThreshold != nil && *c.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel_threshold = %d", ErrInvalid, *c.ParallelThreshold)
	}
	return nil
}

// SplineOptions converts the configuration into spline options.
func (c *Config) SplineOptions(logger *zap.Logger) []spline.Option {
	extrapolation, _ := spline.ParseExtrapolation(c.Extrapolation)

	opts := []spline.Option{
		spline.WithExtrapolation(extrapolation),
		spline.WithWorkers(c.Workers),
		spline.WithBlockSize(c.BlockSize),
		spline.WithLogger(logger),
	}
	if c.StartSlope != nil {
		opts = append(opts, spline.WithStartSlope(*c.StartSlope))
	}
	if c.EndSlope != nil {
		opts = append(opts, spline.WithEndSlope(*c.EndSlope))
	}
	if c.ParallelThreshold != nil {
		opts = append(opts, spline.WithParallelThreshold(*c.ParallelThreshold))
	}
	return opts
}

// Build constructs the configured spline.
func (c *Config) Build(logger *zap.Logger) (*spline.Spline, error) {
	return spline.New(c.Knots, c.Values, c.SplineOptions(logger)...)
}
