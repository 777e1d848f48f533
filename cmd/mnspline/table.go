package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erikcs/mnspline/internal/config"
	"github.com/erikcs/mnspline/spline"
)

// tableFlags selects the knot table and spline settings.
type tableFlags struct {
	configPath    string
	knots         string
	values        string
	startSlope    string
	endSlope      string
	extrapolation string
	workers       int
}

func (f *tableFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML file with knots, values and settings")
	fs.StringVar(&f.knots, "knots", "", "comma-separated strictly increasing knots")
	fs.StringVar(&f.values, "values", "", "comma-separated values at the knots")
	fs.StringVar(&f.startSlope, "start-slope", "", "clamp the first derivative at the first knot")
	fs.StringVar(&f.endSlope, "end-slope", "", "clamp the first derivative at the last knot")
	fs.StringVar(&f.extrapolation, "extrapolation", "", "out-of-range policy: cubic, constant or nan")
	fs.IntVar(&f.workers, "workers", 0, "goroutines for parallel evaluation (0 = GOMAXPROCS)")
}

// load resolves the flags into a validated configuration. Flags given
// explicitly override the file.
func (f *tableFlags) load(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		if f.knots == "" || f.values == "" {
			return nil, fmt.Errorf("either --config or both --knots and --values are required")
		}
		cfg = &config.Config{}
	}

	fs := cmd.Flags()
	if fs.Changed("knots") {
		knots, err := parseFloats(f.knots)
		if err != nil {
			return nil, fmt.Errorf("--knots: %w", err)
		}
		cfg.Knots = knots
	}
	if fs.Changed("values") {
		values, err := parseFloats(f.values)
		if err != nil {
			return nil, fmt.Errorf("--values: %w", err)
		}
		cfg.Values = values
	}
	if fs.Changed("start-slope") {
		s, err := cast.ToFloat64E(f.startSlope)
		if err != nil {
			return nil, fmt.Errorf("--start-slope: %w", err)
		}
		cfg.StartSlope = &s
	}
	if fs.Changed("end-slope") {
		s, err := cast.ToFloat64E(f.endSlope)
		if err != nil {
			return nil, fmt.Errorf("--end-slope: %w", err)
		}
		cfg.EndSlope = &s
	}
	if fs.Changed("extrapolation") {
		cfg.Extrapolation = f.extrapolation
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *tableFlags) build(cmd *cobra.Command, logger *zap.Logger) (*spline.Spline, *config.Config, error) {
	cfg, err := f.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := cfg.Build(logger)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// parseFloats splits s on commas and whitespace and converts every field.
func parseFloats(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := cast.ToFloat64E(field)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// readFloats parses every number in the file at path; "-" reads stdin.
func readFloats(path string, stdin io.Reader) ([]float64, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parseFloats(string(data))
}
