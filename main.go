package main

import (
	"context"
	"os"

	"github.com/ChainSafe/mzview/cmd"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "mzview"
	app.Usage = "MS-DOS MZ executable segment loader"
	app.Description = "Parses MZ headers and recovers the code/data split of small-model DOS programs"
	app.Flags = []cli.Flag{cmd.LogLevelFlag}
	app.Before = cmd.SetupLogging
	app.Commands = []*cli.Command{
		cmd.HeaderCommand,
		cmd.SegmentsCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
