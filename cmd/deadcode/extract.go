package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/endjin/deadcode/internal/output"
	"github.com/endjin/deadcode/internal/progress"
	"github.com/endjin/deadcode/internal/service/analysis"
	"github.com/endjin/deadcode/pkg/models"
)

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"ex"},
		Usage:     "Extract the classified method inventory from module metadata",
		ArgsUsage: "<module.json...>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source-root",
				Usage: "Scan this directory for method source locations",
			},
			&cli.StringFlag{
				Name:  "symbol-index",
				Usage: "Resolve source locations from a symbol index file",
			},
		},
		Action: runExtractCmd,
	}
}

func runExtractCmd(c *cli.Context) error {
	modules, err := requireArgs(c, "module metadata documents")
	if err != nil {
		return err
	}

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

	tracker := progress.NewTracker("Extracting method inventory...", len(modules))
	inv, err := svc.ExtractInventory(c.Context, modules, analysis.ExtractOptions{
		OnProgress: tracker.Tick,
		OnSkip: func(path string, err error) {
			color.Yellow("Skipping %s: %v", path, err)
		},
	})
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, m := range inv.Methods {
		tierStr := string(m.Tier)
		switch m.Tier {
		case models.TierHigh:
			tierStr = color.GreenString(tierStr)
		case models.TierDoNotRemove:
			tierStr = color.RedString(tierStr)
		}

		loc := "-"
		if m.Location != nil {
			loc = fmt.Sprintf("%s:%d", m.Location.File, m.Location.DeclarationLine)
		}

		rows = append(rows, []string{
			m.Key(),
			m.Module,
			string(m.Visibility),
			tierStr,
			loc,
		})
	}

	table := output.NewTable(
		"Method Inventory",
		[]string{"Method", "Module", "Visibility", "Removal Tier", "Location"},
		rows,
		[]string{
			fmt.Sprintf("Methods: %d", inv.Len()),
			fmt.Sprintf("Modules: %d", len(inv.Modules())),
			"", "", "",
		},
		inv,
	)

	return formatter.Output(table)
}
