package cmd

import (
	"fmt"

	"github.com/ChainSafe/mzview/view"
	"github.com/urfave/cli/v2"
)

func CreateSegmentsCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "segments",
		Usage:       "Recovers the code and data segments of an MZ executable",
		Description: "Scans the load module for the data segment register load and prints the resulting memory map",
		ArgsUsage:   "<file>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			FormatFlag,
			ReportOutputPathFlag,
		},
	}
}

var SegmentsCommand = CreateSegmentsCommand(MapSegments)

func MapSegments(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	data, err := readSource(ctx)
	if err != nil {
		return err
	}

	registry := view.NewRegistry()
	if err := view.Register(registry, prof); err != nil {
		return fmt.Errorf("unable to register view: %w", err)
	}
	def, err := registry.Open(data)
	if err != nil {
		return fmt.Errorf("%s: %w", ctx.Args().First(), err)
	}

	var layout view.Layout
	report, err := def.Init(data, &layout)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := writeReport(report, ctx.String(FormatFlag.Name), ctx.Path(ReportOutputPathFlag.Name), prof); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}
