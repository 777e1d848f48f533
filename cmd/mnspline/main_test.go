package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(zap.NewNop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeSineConfig(t *testing.T, extra string) string {
	t.Helper()

	knots := make([]string, 10)
	values := make([]string, 10)
	for i := range knots {
		x := float64(i + 1)
		knots[i] = strconv.FormatFloat(x, 'g', -1, 64)
		values[i] = strconv.FormatFloat(math.Sin(x), 'g', -1, 64)
	}
	doc := fmt.Sprintf("knots: [%s]\nvalues: [%s]\n%s",
		strings.Join(knots, ", "), strings.Join(values, ", "), extra)

	path := filepath.Join(t.TempDir(), "sine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestSelftest(t *testing.T) {
	out, err := execute(t, "", "selftest")
	require.NoError(t, err)
	assert.Equal(t, "Test OK\n", out)
}

func TestEvalLinearFlags(t *testing.T) {
	out, err := execute(t, "", "eval", "--knots", "0,1,2", "--values", "0,2,4", "0.5", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.000000\n3.000000\n", out)
}

func TestEvalConfigRegression(t *testing.T) {
	path := writeSineConfig(t, "parallel: true\n")

	out, err := execute(t, "", "eval", "--config", path, "--precision", "7",
		"1.5", "2.5", "3.5", "4.5", "5.5", "6.5", "7.5", "8.5", "9.5", "9.8")
	require.NoError(t, err)

	want := []float64{
		0.952391, 0.607689, -0.352613, -0.973527, -0.703281,
		0.213946, 0.936819, 0.788606, -0.0478781, -0.34354,
	}
	lines := strings.Fields(out)
	require.Len(t, lines, len(want))
	for i, line := range lines {
		v, err := strconv.ParseFloat(line, 64)
		require.NoError(t, err)
		assert.InDelta(t, want[i], v, 1.5e-6, "line %d", i)
	}
}

func TestEvalQueriesFromStdin(t *testing.T) {
	out, err := execute(t, "0.25, 0.75\n1.25",
		"eval", "--knots", "0 1 2", "--values", "1 1 1", "--queries", "-")
	require.NoError(t, err)
	assert.Equal(t, "1.000000\n1.000000\n1.000000\n", out)
}

func TestEvalQueriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o600))

	out, err := execute(t, "", "eval", "--knots", "0,4", "--values", "0,8", "--queries", path, "3")
	require.NoError(t, err)
	assert.Equal(t, "6.000000\n2.000000\n4.000000\n", out)
}

func TestEvalClampedAndExtrapolation(t *testing.T) {
	args := []string{
		"eval", "--knots", "0,1,2,3", "--values", "0,1,4,9",
		"--start-slope", "0", "--end-slope", "6",
		"--extrapolation", "constant",
		"1.5", "10",
	}
	out, err := execute(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, "2.250000\n9.000000\n", out)
}

func TestEvalDerivative(t *testing.T) {
	out, err := execute(t, "", "eval", "--knots", "0,1,2", "--values", "0,2,4", "--derivative", "1", "0.5")
	require.NoError(t, err)
	assert.Equal(t, "2.000000\n", out)
}

func TestEvalTable(t *testing.T) {
	out, err := execute(t, "", "eval", "--knots", "0,1", "--values", "0,1", "--table", "--precision", "2", "0.5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"x", "value"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0.5", "0.50"}, strings.Fields(lines[2]))
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no table", args: []string{"eval", "1"}, want: "--config"},
		{name: "bad knot", args: []string{"eval", "--knots", "0,x", "--values", "0,1", "1"}, want: "--knots"},
		{name: "no queries", args: []string{"eval", "--knots", "0,1", "--values", "0,1"}, want: "no query"},
		{name: "bad derivative", args: []string{"eval", "--knots", "0,1", "--values", "0,1", "-d", "5", "1"}, want: "--derivative"},
		{name: "unsorted", args: []string{"eval", "--knots", "1,0", "--values", "0,1", "1"}, want: "increasing"},
		{name: "length", args: []string{"eval", "--knots", "0,1,2", "--values", "0,1", "1"}, want: "3 knots but 2 values"},
		{name: "bad slope", args: []string{"eval", "--knots", "0,1", "--values", "0,1", "--start-slope", "steep", "1"}, want: "--start-slope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIntegrate(t *testing.T) {
	out, err := execute(t, "", "integrate", "--knots", "0,1,2", "--values", "0,2,4", "--from", "0", "--to", "2")
	require.NoError(t, err)
	assert.Equal(t, "4.000000\n", out)

	_, err = execute(t, "", "integrate", "--knots", "0,1", "--values", "0,1", "--from", "0")
	assert.Error(t, err)
}

func TestConfigOverriddenByFlags(t *testing.T) {
	path := writeSineConfig(t, "extrapolation: nan\n")

	out, err := execute(t, "", "eval", "--config", path, "11")
	require.NoError(t, err)
	assert.Equal(t, "NaN\n", out)

	out, err = execute(t, "", "eval", "--config", path, "--extrapolation", "constant", "11")
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatFloat(math.Sin(10), 'f', 6, 64)+"\n", out)
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats(" 1, 2.5;-3\t4e-1\n")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3, 0.4}, got)

	got, err = parseFloats("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseFloats("1,,two")
	assert.Error(t, err)
}
