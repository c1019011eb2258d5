package cmd

import (
	"fmt"

	"github.com/ChainSafe/mzview/view"
	"github.com/urfave/cli/v2"
)

func CreateHeaderCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "header",
		Usage:       "Dumps the MZ header and relocation table",
		Description: "Dumps the MZ header and relocation table",
		ArgsUsage:   "<file>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			FormatFlag,
			ReportOutputPathFlag,
		},
	}
}

var HeaderCommand = CreateHeaderCommand(DumpHeader)

func DumpHeader(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	data, err := readSource(ctx)
	if err != nil {
		return err
	}

	v, err := view.New(prof)
	if err != nil {
		return fmt.Errorf("unable to create view: %w", err)
	}
	if !v.IsValidForData(data) {
		return fmt.Errorf("%s: %w", ctx.Args().First(), view.ErrNoView)
	}
	report, err := v.Header(data)
	if err != nil {
		return fmt.Errorf("unable to parse header: %w", err)
	}

	if err := writeReport(report, ctx.String(FormatFlag.Name), ctx.Path(ReportOutputPathFlag.Name), prof); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}
