// Package cli wires flags, environment, config file and logging into an
// install run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel"

	"github.com/adamwoolhether/appinstall/install"
)

const tracerName = "github.com/adamwoolhether/appinstall"

// Run runs the CLI application. Console output goes to stdout and logs
// to stderr.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

// run executes the command. Extra options are applied after the ones
// derived from flags.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, optFns ...install.Option) error {
	var loggerCfg Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:      "appinstall",
		Usage:     "Download, install and open a macOS application bundle",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     append(loggerCfg.Flags(), installFlags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure(stderr)
			if err != nil {
				return nil, err
			}

			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			opts := []install.Option{
				install.WithLogger(logger),
				install.WithTracer(otel.Tracer(tracerName)),
				install.WithOutput(stdout),
			}
			if c.Bool(flagNoColor) {
				opts = append(opts, install.WithNoColor())
			}

			in, err := install.Build(cfg, append(opts, optFns...)...)
			if err != nil {
				return err
			}

			if c.Bool(flagDryRun) {
				return dryRun(ctx, in, cfg.AppName, stdout)
			}

			return in.Run(ctx)
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}

		if errors.Is(err, install.ErrAlreadyInstalled) {
			logger.Debug("nothing to do", "error", err)
			return err
		}

		logger.Error("install failed", "error", err)
		return err
	}

	return nil
}

// dryRun checks the destination and prints what Run would do.
func dryRun(ctx context.Context, in *install.Installer, appName string, w io.Writer) error {
	plan, err := in.Plan()
	if err != nil {
		return err
	}

	if err := in.Precondition(ctx, plan.Destination); err != nil {
		if errors.Is(err, install.ErrAlreadyInstalled) {
			fmt.Fprintln(w, install.AlreadyInstalledMessage(appName))
		}
		return err
	}

	launcher := plan.Launcher
	if launcher == "" {
		launcher = "(skipped)"
	}

	fmt.Fprintf(w, "Run ID:      %s\n", plan.RunID)
	fmt.Fprintf(w, "Download:    %s\n", plan.URL)
	fmt.Fprintf(w, "Destination: %s\n", plan.Destination)
	fmt.Fprintf(w, "Extract:     %s\n", plan.Extractor)
	fmt.Fprintf(w, "Launch:      %s\n", launcher)

	return nil
}
