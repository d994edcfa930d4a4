package install

import (
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/appinstall/client"
)

// Option is a functional option for configuring an [Installer] via [Build].
type Option func(*options) error

type options struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	client  *client.Client
	runner  CommandRunner
	out     io.Writer
	noColor bool
	tempDir string
}

// WithLogger injects a custom [slog.Logger].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer records a span per install step.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithClient replaces the HTTP client built from the config.
func WithClient(c *client.Client) Option {
	return func(o *options) error {
		if c == nil {
			return errors.New("client must not be nil")
		}
		o.client = c
		return nil
	}
}

// WithRunner replaces the [os/exec] backed CommandRunner.
func WithRunner(r CommandRunner) Option {
	return func(o *options) error {
		if r == nil {
			return errors.New("runner must not be nil")
		}
		o.runner = r
		return nil
	}
}

// WithOutput sets where console status lines go. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return errors.New("output must not be nil")
		}
		o.out = w
		return nil
	}
}

// WithNoColor disables colored console output.
func WithNoColor() Option {
	return func(o *options) error {
		o.noColor = true
		return nil
	}
}

// WithTempDir sets the directory for the download buffer and the install
// lock. Defaults to [os.TempDir].
func WithTempDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.New("temp dir must not be empty")
		}
		o.tempDir = dir
		return nil
	}
}
