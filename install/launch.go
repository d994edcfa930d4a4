package install

import (
	"context"

	"github.com/adamwoolhether/appinstall/config"
)

// Launch asks the OS to open dest and returns without waiting. The
// returned error is ErrLaunchFault; Run only logs it.
func (in *Installer) Launch(ctx context.Context, dest string) error {
	return in.step(ctx, StepLaunch, func(context.Context) error {
		in.console.Status("Opening %s...", dest)

		vars := in.vars("")
		vars[config.PlaceholderDest] = dest
		args := in.cfg.Launcher.Expand(vars)
		in.logger.Info("launching", "command", in.cfg.Launcher.Name, "args", args)

		if err := in.runner.Start(in.cfg.Launcher.Name, args...); err != nil {
			return &Error{Step: StepLaunch, Err: ErrLaunchFault, Cause: err}
		}

		return nil
	})
}
