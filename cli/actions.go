package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/cdpr/kinematics"
	"go.viam.com/cdpr/logging"
	"go.viam.com/cdpr/utils"
	"go.viam.com/cdpr/workspace"
)

// newLogger returns a logger writing to the app's error writer, so that results on the writer
// stay machine readable, and to --log-file if set. Call the returned function when done.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewBlankLogger("cdpr")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if !c.Bool(flagDebug) {
		logger.SetLevel(logging.INFO)
	}
	filename := c.Path(flagLogFile)
	if filename == "" {
		return logger, func() {}
	}
	appender, closer := logging.NewFileAppender(filename, logFileMaxSizeMB)
	logger.AddAppender(appender)
	return logger, func() {
		if err := closer.Close(); err != nil {
			warningf(c.App.ErrWriter, "closing log file: %v", err)
		}
	}
}

func loadModelConfig(c *cli.Context) (*kinematics.ModelConfigJSON, error) {
	filename := c.String(flagModel)
	if filename == "" {
		return nil, errors.Wrapf(kinematics.ErrNoModelInformation, "pass --%s", flagModel)
	}
	return kinematics.ParseModelJSONFile(filename, "")
}

func newWrenchClosure(c *cli.Context, logger logging.Logger) (*workspace.WrenchClosure, error) {
	return workspace.NewWrenchClosure(workspace.Config{
		MinRayPercentage: c.Float64(flagMinPercent),
		Tolerance:        c.Float64(flagTolerance),
	}, logger.Sublogger("wrench_closure"))
}

func freeVariableRange(c *cli.Context) workspace.Interval {
	return workspace.Interval{Lo: c.Float64(flagLo), Hi: c.Float64(flagHi)}
}

// RayAction prints the wrench closure intervals along one ray.
func RayAction(c *cli.Context) error {
	logger, closeLogs := newLogger(c)
	defer closeLogs()
	cfg, err := loadModelConfig(c)
	if err != nil {
		return err
	}
	model, err := cfg.ParseConfig("")
	if err != nil {
		return err
	}
	fixed, err := parseFloats(c.String(flagFixed))
	if err != nil {
		return err
	}
	wc, err := newWrenchClosure(c, logger)
	if err != nil {
		return err
	}

	ray := workspace.Ray{
		FreeVariableIndex: c.Int(flagFree),
		FreeVariableRange: freeVariableRange(c),
		FixedVariables:    fixed,
	}
	intervals, stats, err := wc.EvaluateWithStats(model, ray)
	if err != nil {
		return err
	}
	logger.Debugw("ray evaluated",
		"strategy", stats.Strategy,
		"families", stats.Families,
		"skipped", stats.Skipped,
		"early_exit", stats.EarlyExit,
	)

	if len(intervals) == 0 {
		warningf(c.App.ErrWriter, "no wrench closure intervals on %s for %s", ray.FreeVariableRange, model.Name())
		return nil
	}
	rotational := model.JointTypes()[ray.FreeVariableIndex] == kinematics.Rotation
	t := table.NewWriter()
	header := table.Row{"#", "Lo", "Hi", "% of ray"}
	if rotational {
		header = append(header, "Lo (deg)", "Hi (deg)")
	}
	t.AppendHeader(header)
	for i, iv := range intervals {
		row := table.Row{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.6g", iv.Lo),
			fmt.Sprintf("%.6g", iv.Hi),
			fmt.Sprintf("%.2f", iv.PercentageOf(ray.FreeVariableRange)),
		}
		if rotational {
			row = append(row, fmt.Sprintf("%.2f", utils.RadToDeg(iv.Lo)), fmt.Sprintf("%.2f", utils.RadToDeg(iv.Hi)))
		}
		t.AppendRow(row)
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// SweepAction evaluates a grid of rays and prints one row per ray and a coverage summary.
func SweepAction(c *cli.Context) error {
	logger, closeLogs := newLogger(c)
	defer closeLogs()
	cfg, err := loadModelConfig(c)
	if err != nil {
		return err
	}
	wc, err := newWrenchClosure(c, logger)
	if err != nil {
		return err
	}
	grid, ok := c.Generic(flagGrid).(*gridValue)
	if !ok {
		return errors.Errorf("unexpected --%s value", flagGrid)
	}

	spec := workspace.SweepSpec{
		FreeVariableIndex: c.Int(flagFree),
		FreeVariableRange: freeVariableRange(c),
		FixedValues:       grid.values,
	}
	results, err := workspace.Sweep(c.Context, cfg.Factory(), wc, spec, logger.Sublogger("sweep"))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		warningf(c.App.ErrWriter, "sweep grid is empty")
		return nil
	}
	summary, err := results.Summarize()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", results.String())
	printf(c.App.Writer, "%s", summary.String())

	if filename := c.Path(flagPlot); filename != "" {
		if err := results.SavePlot(cfg.Name, filename); err != nil {
			return errors.Wrapf(err, "saving plot to %s", filename)
		}
		infof(c.App.ErrWriter, "wrote plot to %s", filename)
	}
	return nil
}
