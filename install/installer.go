package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/appinstall/client"
	"github.com/adamwoolhether/appinstall/config"
)

const userAgent = "appinstall (+https://github.com/adamwoolhether/appinstall)"

// Installer runs one install of the configured application.
type Installer struct {
	cfg     config.Config
	client  *client.Client
	runner  CommandRunner
	console *Console
	logger  *slog.Logger
	tracer  trace.Tracer
	tempDir string
	runID   string
}

// Plan is what an install would do, resolved from the config.
type Plan struct {
	RunID       string
	URL         string
	Destination string
	Extractor   string
	Launcher    string
}

// Build validates cfg and returns an Installer. A no-op tracer, an
// os/exec runner and a logger that discards everything are used unless overridden.
func Build(cfg config.Config, optFns ...Option) (*Installer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying installer option: %w", err)
		}
	}

	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}
	if opts.tracer == nil {
		opts.tracer = noop.NewTracerProvider().Tracer("no-op tracer")
	}
	if opts.runner == nil {
		opts.runner = ExecRunner{}
	}
	if opts.out == nil {
		opts.out = io.Discard
	}
	if opts.tempDir == "" {
		opts.tempDir = os.TempDir()
	}

	runID := uuid.NewString()
	logger := opts.logger.With("run_id", runID, "app", cfg.AppName, "version", cfg.Version)

	if opts.client == nil {
		c, err := client.Build(
			client.WithUserAgent(userAgent),
			client.WithTimeout(cfg.Timeout.Duration),
			client.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("building http client: %w", err)
		}
		opts.client = c
	}

	in := Installer{
		cfg:     cfg,
		client:  opts.client,
		runner:  opts.runner,
		console: NewConsole(opts.out, opts.noColor),
		logger:  logger,
		tracer:  opts.tracer,
		tempDir: opts.tempDir,
		runID:   runID,
	}

	return &in, nil
}

// Plan resolves the install without touching the network or the filesystem.
func (in *Installer) Plan() (Plan, error) {
	u, err := in.cfg.DownloadURL()
	if err != nil {
		return Plan{}, err
	}

	dest := in.cfg.Destination()
	vars := in.vars("<archive>")

	plan := Plan{
		RunID:       in.runID,
		URL:         u.String(),
		Destination: dest,
		Extractor:   config.Command{Name: in.cfg.Extractor.Name, Args: in.cfg.Extractor.Expand(vars)}.String(),
	}
	if !in.cfg.NoLaunch {
		plan.Launcher = config.Command{Name: in.cfg.Launcher.Name, Args: in.cfg.Launcher.Expand(vars)}.String()
	}

	return plan, nil
}

// Run executes precondition check, download, extract and launch in order,
// aborting at the first failure. The temp archive is removed on every path.
// A launch failure is logged and does not fail the install.
func (in *Installer) Run(ctx context.Context) (err error) {
	ctx, span := in.tracer.Start(ctx, "install.run", trace.WithAttributes(
		attribute.String("run_id", in.runID),
		attribute.String("app", in.cfg.AppName),
		attribute.String("version", in.cfg.Version),
	))
	defer func() {
		endSpan(span, err)
	}()

	dest := in.cfg.Destination()
	in.logger.Info("install started", "destination", dest)

	if err := in.Precondition(ctx, dest); err != nil {
		return in.preconditionFailed(err)
	}

	unlock, err := in.lock()
	if err != nil {
		return err
	}
	defer unlock()

	// Another installer may have finished between the first check and the lock.
	if err := in.Precondition(ctx, dest); err != nil {
		return in.preconditionFailed(err)
	}

	tmp, err := os.CreateTemp(in.tempDir, in.cfg.AppName+"-*.app.zip")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	in.logger.Debug("created temp file", "path", tmp.Name())

	defer func() {
		if cerr := in.cleanup(tmp); cerr != nil {
			in.logger.Error("cleanup failed", "error", cerr)
			if err == nil {
				err = &Error{Step: StepCleanup, Err: cerr}
			}
		}
	}()

	if _, err := in.Download(ctx, tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := in.Extract(ctx, tmp.Name()); err != nil {
		return err
	}

	if !in.cfg.NoLaunch {
		if err := in.Launch(ctx, dest); err != nil {
			in.logger.Warn("launch failed", "error", err)
			in.console.Warn("Could not open %s: %v", dest, err)
		}
	}

	in.logger.Info("install completed", "destination", dest)

	return nil
}

func (in *Installer) preconditionFailed(err error) error {
	if errors.Is(err, ErrAlreadyInstalled) {
		in.console.Println(AlreadyInstalledMessage(in.cfg.AppName))
	}

	return err
}

// cleanup closes and removes the temp archive.
func (in *Installer) cleanup(f *os.File) error {
	var merr *multierror.Error

	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		merr = multierror.Append(merr, fmt.Errorf("closing %s: %w", f.Name(), err))
	}

	if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		merr = multierror.Append(merr, fmt.Errorf("removing %s: %w", f.Name(), err))
	} else {
		in.logger.Debug("removed temp file", "path", f.Name())
	}

	return merr.ErrorOrNil()
}

// vars are the placeholder values for the extractor and launcher templates.
func (in *Installer) vars(archive string) map[string]string {
	return map[string]string{
		config.PlaceholderArchive: archive,
		config.PlaceholderDir:     in.cfg.ApplicationsDir,
		config.PlaceholderDest:    in.cfg.Destination(),
	}
}

// step runs fn inside a child span named after s.
func (in *Installer) step(ctx context.Context, s Step, fn func(ctx context.Context) error) error {
	ctx, span := in.tracer.Start(ctx, "install."+string(s))
	err := fn(ctx)
	endSpan(span, err)

	return err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
