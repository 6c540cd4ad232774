package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/qcut/qcheck/internal"
	pkgconfig "github.com/qcut/qcheck/pkg/config"
)

const defaultConfigFile = "qcheck.yaml"

// loadConfig reads the file named by the root --config flag into the
// defaults. An explicitly passed file must exist; the default path is
// optional.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")
	cfg := internal.NewDefaultConfig()

	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	if _, err := pkgconfig.LoadIfPresent(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func sharedOptions(cmd *cli.Command, cfg *internal.Config) []internal.Option {
	opts := []internal.Option{internal.WithConfig(cfg)}
	if cmd.Bool("no-color") {
		opts = append(opts, internal.WithNoColor())
	}
	return opts
}

func runProgress(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := sharedOptions(cmd, cfg)
	if dir := cmd.String("results"); dir != "" {
		opts = append(opts, internal.WithResultsDir(dir))
	}
	if cmd.Bool("watch") {
		opts = append(opts, internal.WithWatch(cmd.Duration("interval")))
	}
	return internal.RunProgress(ctx, opts...)
}

func runProjects(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := sharedOptions(cmd, cfg)
	if root := cmd.String("root"); root != "" {
		opts = append(opts, internal.WithAppDataRoot(root))
	}
	if cmd.Bool("detail") {
		opts = append(opts, internal.WithDetail())
	}
	return internal.RunProjects(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:    "qcheck",
		Usage:   "Read-only inspectors for QCut E2E test runs and app data",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigFile,
				Value:       defaultConfigFile,
				Sources:     cli.EnvVars("QCHECK_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored status lines",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "progress",
				Usage:  "Report E2E test progress against the recorded checkpoint",
				Action: runProgress,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "results",
						Aliases: []string{"r"},
						Usage:   "Results directory to scan",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "Stay resident and re-render on changes",
					},
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Fallback re-render interval in watch mode",
						Value: 30 * time.Second,
					},
				},
			},
			{
				Name:   "projects",
				Usage:  "Report QCut app-data state before/after a test run",
				Action: runProjects,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "root",
						Usage: "QCut app-data directory to inspect",
					},
					&cli.BoolFlag{
						Name:    "detail",
						Aliases: []string{"d"},
						Usage:   "Append a per-area storage breakdown",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("qcheck error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
