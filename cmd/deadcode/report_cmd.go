package main

import (
	"github.com/urfave/cli/v2"

	"github.com/endjin/deadcode/internal/output"
	"github.com/endjin/deadcode/internal/report"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Re-render a previously written report file",
		ArgsUsage: "<report.json>",
		Action:    runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	paths, err := requireArgs(c, "report file")
	if err != nil {
		return err
	}

	doc, err := report.Load(paths[0])
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&report.DocView{Doc: doc})
}
