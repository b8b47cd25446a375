package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestRequireArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name:    "no args fails",
			args:    []string{},
			wantErr: true,
		},
		{
			name: "single arg",
			args: []string{"app.json"},
			want: []string{"app.json"},
		},
		{
			name: "multiple args",
			args: []string{"a.json", "b.json"},
			want: []string{"a.json", "b.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Action: func(c *cli.Context) error {
					got, err := requireArgs(c, "inputs")
					if (err != nil) != tt.wantErr {
						t.Errorf("requireArgs() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if len(got) != len(tt.want) {
						t.Errorf("requireArgs() = %v, want %v", got, tt.want)
					}
					return nil
				},
			}
			args := append([]string{"test"}, tt.args...)
			_ = app.Run(args)
		})
	}
}

func TestLoadConfigNoCacheFlag(t *testing.T) {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.BoolFlag{Name: "no-cache"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.Cache.Enabled {
				t.Error("cache should be disabled with --no-cache")
			}
			return nil
		},
	}
	if err := app.Run([]string{"test", "--no-cache"}); err != nil {
		t.Fatalf("app.Run() error = %v", err)
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadcode.toml")
	content := "[trace]\ndeny_prefixes = [\"Corp.Platform\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.BoolFlag{Name: "no-cache"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if len(cfg.Trace.DenyPrefixes) != 1 || cfg.Trace.DenyPrefixes[0] != "Corp.Platform" {
				t.Errorf("DenyPrefixes = %v, want [Corp.Platform]", cfg.Trace.DenyPrefixes)
			}
			return nil
		},
	}
	if err := app.Run([]string{"test", "--config", path}); err != nil {
		t.Fatalf("app.Run() error = %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.BoolFlag{Name: "no-cache"},
		},
		Action: func(c *cli.Context) error {
			if _, err := loadConfig(c); err == nil {
				t.Error("loadConfig() should fail for a missing explicit config")
			}
			return nil
		},
	}
	_ = app.Run([]string{"test", "--config", "no/such/file.toml"})
}

func TestGenerateDefaultConfig(t *testing.T) {
	content, err := generateDefaultConfig()
	if err != nil {
		t.Fatalf("generateDefaultConfig() error = %v", err)
	}
	for _, want := range []string{"[trace]", "[cache]", "[output]"} {
		if !strings.Contains(content, want) {
			t.Errorf("generated config missing %s section", want)
		}
	}
}
