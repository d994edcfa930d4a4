package install

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// CommandRunner runs the external extractor and launcher.
type CommandRunner interface {
	// Run executes name and waits for it to exit.
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
	// Start executes name without waiting for it.
	Start(name string, args ...string) error
}

// ExecRunner is the [os/exec] backed CommandRunner.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

func (ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}

	// Release the process so the OS can fully detach it.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("releasing %s: %w", name, err)
	}

	return nil
}
