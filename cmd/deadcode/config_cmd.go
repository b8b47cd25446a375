package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/endjin/deadcode/pkg/config"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShowCmd,
			},
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidateCmd,
			},
		},
	}
}

func runConfigShowCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(content))
	return nil
}

func runConfigValidateCmd(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		return fmt.Errorf("no config file given (use --config)")
	}

	if _, err := config.Load(path); err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	color.Green("Configuration is valid: %s", path)
	return nil
}
