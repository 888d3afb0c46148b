// Package cli contains the cdpr command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/cdpr/workspace"
)

const (
	// Global flags.
	flagDebug   = "debug"
	flagModel   = "model"
	flagLogFile = "log-file"

	// Ray flags.
	flagFree       = "free"
	flagLo         = "lo"
	flagHi         = "hi"
	flagFixed      = "fixed"
	flagMinPercent = "min-percent"
	flagTolerance  = "tolerance"

	// Sweep flags.
	flagGrid = "grid"
	flagPlot = "plot"

	logFileMaxSizeMB = 10
)

func rayFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     flagFree,
			Usage:    "index of the free generalized coordinate",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     flagLo,
			Usage:    "lower end of the free variable range",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     flagHi,
			Usage:    "upper end of the free variable range",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  flagMinPercent,
			Usage: "drop intervals shorter than this percentage of the range",
		},
		&cli.Float64Flag{
			Name:  flagTolerance,
			Usage: "numerical tolerance for roots, signs and interval merging",
			Value: workspace.DefaultTolerance,
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "cdpr",
		Usage:           "evaluate the wrench closure workspace of cable driven parallel robots",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:    flagModel,
				Aliases: []string{"m"},
				Usage:   "load the robot model from `FILE` (.json or .json5)",
			},
			&cli.PathFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated as it grows",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ray",
				Usage:     "find the wrench closure intervals along one ray",
				UsageText: "cdpr --model FILE ray --free N --lo A --hi B --fixed v1,v2",
				Flags: append(rayFlags(), &cli.StringFlag{
					Name:  flagFixed,
					Usage: "comma separated values of the other coordinates, in order",
				}),
				Action: RayAction,
			},
			{
				Name:      "sweep",
				Usage:     "evaluate a grid of parallel rays",
				UsageText: "cdpr --model FILE sweep --free N --lo A --hi B --grid v1,v2 --grid start:stop:count",
				Flags: append(rayFlags(),
					&cli.GenericFlag{
						Name:  flagGrid,
						Usage: "values of one fixed coordinate, as v1,v2,... or start:stop:count; repeat in coordinate order",
						Value: &gridValue{},
					},
					&cli.PathFlag{
						Name:  flagPlot,
						Usage: "also draw the intervals of every ray to `FILE`",
					},
				),
				Action: SweepAction,
			},
		},
	}
}
