package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/cdpr/utils"
)

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints a message prefixed with a bold cyan "Info: ".
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgCyan).Fprint(w, "Info: ")
	printf(w, format, a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

// Errorf prints a message prefixed with a bold red "Error: " prefix and exits with 1.
func Errorf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.Bold, color.FgRed).Fprint(w, "Error: ")
	printf(w, format, a...)
	os.Exit(1)
}

// parseFloats parses a comma separated list of numbers. An empty string is an empty list.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q", s)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseGridValues parses one --grid flag: either a list of values or start:stop:count.
func parseGridValues(s string) ([]float64, error) {
	bounds := strings.Split(s, ":")
	if len(bounds) == 1 {
		return parseFloats(s)
	}
	if len(bounds) != 3 {
		return nil, errors.Errorf("grid %q must be v1,v2,... or start:stop:count", s)
	}
	ends, err := parseFloats(bounds[0] + "," + bounds[1])
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(bounds[2]))
	if err != nil || count < 1 {
		return nil, errors.Errorf("grid %q needs a positive count", s)
	}
	return utils.Linspace(ends[0], ends[1], count), nil
}

// gridValue collects repeated --grid flags, one coordinate per occurrence.
type gridValue struct {
	values [][]float64
}

func (g *gridValue) Set(s string) error {
	values, err := parseGridValues(s)
	if err != nil {
		return err
	}
	g.values = append(g.values, values)
	return nil
}

func (g *gridValue) String() string {
	if g == nil {
		return ""
	}
	return strings.Join(lo.Map(g.values, func(values []float64, _ int) string {
		return strings.Join(lo.Map(values, func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}), ",")
	}), " ")
}
