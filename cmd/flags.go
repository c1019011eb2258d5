// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChainSafe/mzview/profile"
	"github.com/ChainSafe/mzview/renderer"
	"github.com/ChainSafe/mzview/view"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the loader profile config file. Default: built-in MSDOS profile",
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "format of the output. Options: json, text",
		Required: false,
		Value:    "text",
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:     "report-output-path",
		Usage:    "output file path for report. Default: stdout",
		Required: false,
	}
	LogLevelFlag = &cli.StringFlag{
		Name:     "log-level",
		Usage:    "log level. Options: panic, fatal, error, warn, info, debug, trace",
		Required: false,
		Value:    "warn",
		EnvVars:  []string{"MZVIEW_LOG_LEVEL"},
	}
)

// SetupLogging applies the log level flag. It is meant for App.Before.
func SetupLogging(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.String(LogLevelFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	return nil
}

func loadProfile(ctx *cli.Context) (*profile.LoaderProfile, error) {
	path := ctx.Path(ProfileFlag.Name)
	if path == "" {
		return profile.Default(), nil
	}
	prof, err := profile.LoadProfile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return prof, nil
}

func readSource(ctx *cli.Context) ([]byte, error) {
	source := ctx.Args().First()
	if source == "" {
		return nil, fmt.Errorf("missing executable path")
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", source, err)
	}
	return data, nil
}

// writeReport outputs the report in the specified format.
func writeReport(report *view.Report, format, outputPath string, prof *profile.LoaderProfile) error {
	var output *os.File
	if outputPath == "" {
		output = os.Stdout
	} else {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		output, err = os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = output.Close()
		}()
	}

	var rendererInstance renderer.Renderer
	switch format {
	case "text":
		rendererInstance = renderer.NewTextRenderer(prof)
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	return rendererInstance.Render(report, output)
}
