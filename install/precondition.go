package install

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Precondition fails with ErrAlreadyInstalled when dest is an existing
// directory. Anything else at dest, or nothing, passes.
func (in *Installer) Precondition(ctx context.Context, dest string) error {
	return in.step(ctx, StepPrecondition, func(context.Context) error {
		info, err := os.Stat(dest)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil
		case err != nil:
			return fmt.Errorf("inspecting destination: %w", err)
		case info.IsDir():
			in.logger.Info("existing installation found", "destination", dest)
			return &Error{Step: StepPrecondition, Err: ErrAlreadyInstalled, Detail: dest}
		}

		return nil
	})
}
