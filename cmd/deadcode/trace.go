package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/endjin/deadcode/internal/output"
	"github.com/endjin/deadcode/internal/progress"
	"github.com/endjin/deadcode/internal/service/analysis"
	"github.com/endjin/deadcode/pkg/tracer"
)

func traceCmd() *cli.Command {
	return &cli.Command{
		Name:  "trace",
		Usage: "Work with execution traces",
		Subcommands: []*cli.Command{
			traceParseCmd(),
			traceRunCmd(),
		},
	}
}

func traceParseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse trace files into the set of executed method keys",
		ArgsUsage: "<trace...>",
		Action:    runTraceParseCmd,
	}
}

func runTraceParseCmd(c *cli.Context) error {
	traces, err := requireArgs(c, "trace files")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := analysis.New(analysis.WithConfig(cfg))

	tracker := progress.NewTracker("Parsing traces...", len(traces))
	result, err := svc.ParseTraces(traces, analysis.TraceOptions{
		OnProgress: tracker.Tick,
		OnSkip: func(path string, err error) {
			color.Yellow("Skipping %s: %v", path, err)
		},
	})
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("trace ingestion failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	keys := result.Executed.Keys()
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k})
	}

	table := output.NewTable(
		fmt.Sprintf("Executed Methods (%d scenarios)", len(result.Scenarios)),
		[]string{"Canonical Key"},
		rows,
		[]string{fmt.Sprintf("Total: %d", len(keys))},
		struct {
			Scenarios []string `json:"scenarios" toon:"scenarios"`
			Executed  []string `json:"executed" toon:"executed"`
		}{result.Scenarios, keys},
	)

	return formatter.Output(table)
}

func traceRunCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run an instrumented target and capture its execution trace",
		ArgsUsage: "<executable> [arg...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Value:   "default",
				Usage:   "Scenario name; becomes the trace file stem",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Value: "traces",
				Usage: "Directory receiving the trace file",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "Kill the target after this long (0 waits for exit)",
			},
			&cli.BoolFlag{
				Name:  "expect-failure",
				Usage: "Treat a non-zero target exit as success",
			},
		},
		Action: runTraceRunCmd,
	}
}

func runTraceRunCmd(c *cli.Context) error {
	args, err := requireArgs(c, "target executable")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	duration := c.Duration("duration")
	if duration == 0 && cfg.Trace.RunnerTimeoutSeconds > 0 {
		duration = time.Duration(cfg.Trace.RunnerTimeoutSeconds) * time.Second
	}

	spinner := progress.NewSpinner(fmt.Sprintf("Running scenario %q...", c.String("scenario")))
	result, err := tracer.NewRunner().Run(c.Context, tracer.RunOptions{
		Executable:    args[0],
		Args:          args[1:],
		OutputDir:     c.String("out-dir"),
		Scenario:      c.String("scenario"),
		Duration:      duration,
		ExpectFailure: c.Bool("expect-failure"),
	})
	if err != nil {
		spinner.FinishError(err)
		return err
	}
	spinner.FinishSuccess()

	color.Green("Captured %s (%s, exit %d)", result.TracePath, result.Duration.Round(time.Millisecond), result.ExitCode)
	return nil
}
