package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "maidlink",
		Usage: "Maid agency placement and case paperwork platform",
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			seedCommand,
			keygenCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
