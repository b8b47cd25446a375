package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/endjin/deadcode/internal/output"
	"github.com/endjin/deadcode/internal/progress"
	"github.com/endjin/deadcode/internal/report"
	"github.com/endjin/deadcode/internal/service/analysis"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"an"},
		Usage:     "Compare the method inventory against execution traces",
		ArgsUsage: "<module.json...>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "trace",
				Aliases: []string{"t"},
				Usage:   "Execution trace file (repeatable; binary or text)",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Also write the report as JSON to this path",
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: "Source checkout to stamp the report revision from",
			},
			&cli.StringFlag{
				Name:  "source-root",
				Usage: "Scan this directory for method source locations",
			},
			&cli.StringFlag{
				Name:  "symbol-index",
				Usage: "Resolve source locations from a symbol index file",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	modules, err := requireArgs(c, "module metadata documents")
	if err != nil {
		return err
	}
	traces := c.StringSlice("trace")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if root := c.String("source-root"); root != "" {
		cfg.Extraction.SourceRoot = root
	}
	if idx := c.String("symbol-index"); idx != "" {
		cfg.Extraction.SymbolIndex = idx
	}

	svc := analysis.New(analysis.WithConfig(cfg))

	skip := func(path string, err error) {
		color.Yellow("Skipping %s: %v", path, err)
	}

	extractTracker := progress.NewTracker("Extracting method inventory...", len(modules))
	traceTracker := progress.NewTracker("Ingesting execution traces...", len(traces))

	result, err := svc.Analyze(c.Context, analysis.AnalyzeOptions{
		ModulePaths: modules,
		TracePaths:  traces,
		RepoPath:    c.String("repo"),
		Extract: analysis.ExtractOptions{
			OnProgress: extractTracker.Tick,
			OnSkip:     skip,
		},
		Trace: analysis.TraceOptions{
			OnProgress: traceTracker.Tick,
			OnSkip:     skip,
		},
	})
	extractTracker.FinishSuccess()
	traceTracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	gen := report.NewGenerator()

	if path := c.String("report"); path != "" {
		if err := gen.Write(gen.Build(result), path); err != nil {
			return err
		}
		if c.Bool("verbose") {
			color.Green("Report written to %s", path)
		}
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(gen.NewView(result))
}
