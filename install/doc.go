// Package install performs a single application install: it checks that
// no previous installation exists, downloads the release archive to a
// scoped temp file, extracts it with the OS-native extraction utility,
// launches the result and always removes the temp file.
//
// # Usage
//
//	in, err := install.Build(config.Default(),
//		install.WithLogger(logger),
//		install.WithOutput(os.Stdout),
//	)
//	if err != nil { ... }
//
//	if err := in.Run(ctx); err != nil {
//		if errors.Is(err, install.ErrAlreadyInstalled) { ... }
//	}
//
// Each step is also exported ([Installer.Precondition],
// [Installer.Download], [Installer.Extract], [Installer.Launch]) so that
// callers can drive them individually.
package install
