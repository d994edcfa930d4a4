package install

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// maxStderr caps how much extractor output is kept for error messages.
const maxStderr = 4 << 10

// Extract checks that archive holds exactly the expected bundle, then runs
// the configured extractor with stdout discarded. A non-zero exit status,
// an invalid archive or a missing bundle afterwards is ErrExtractionFault.
// A partially extracted bundle is removed on failure, and a resource fork
// folder unpacked next to the bundle is always removed.
func (in *Installer) Extract(ctx context.Context, archive string) error {
	return in.step(ctx, StepExtract, func(ctx context.Context) error {
		dest := in.cfg.Destination()

		hasForks, err := inspectArchive(archive, in.cfg.BundleName())
		if err != nil {
			return &Error{Step: StepExtract, Err: ErrExtractionFault, Detail: "invalid archive", Cause: err}
		}

		forks := filepath.Join(in.cfg.ApplicationsDir, resourceForkDir)
		_, statErr := os.Lstat(forks)
		ownForks := hasForks && errors.Is(statErr, os.ErrNotExist)

		in.console.Status("Extracting to %s...", in.cfg.ApplicationsDir)

		args := in.cfg.Extractor.Expand(in.vars(archive))
		in.logger.Info("extraction started", "command", in.cfg.Extractor.Name, "args", args)

		stderr := &limitedBuffer{max: maxStderr}
		if err := in.runner.Run(ctx, io.Discard, stderr, in.cfg.Extractor.Name, args...); err != nil {
			in.removePartial(dest)
			if ownForks {
				in.removePartial(forks)
			}
			return &Error{Step: StepExtract, Err: ErrExtractionFault, Detail: describeExit(err, stderr.String()), Cause: err}
		}

		if ownForks {
			in.removePartial(forks)
		}

		info, err := os.Stat(dest)
		if err != nil || !info.IsDir() {
			in.removePartial(dest)
			return &Error{Step: StepExtract, Err: ErrExtractionFault, Detail: dest + " missing after extraction", Cause: err}
		}

		in.console.Success("Extracted %s", in.cfg.BundleName())
		in.logger.Info("extraction completed", "destination", dest)

		return nil
	})
}

// removePartial deletes whatever the extractor left at dest. Callers only
// pass paths that did not exist before extraction.
func (in *Installer) removePartial(dest string) {
	if _, err := os.Lstat(dest); err != nil {
		return
	}

	if err := os.RemoveAll(dest); err != nil {
		in.logger.Error("failed to remove extracted path", "path", dest, "error", err)
		return
	}

	in.logger.Info("removed extracted path", "path", dest)
}

// resourceForkDir is the folder Finder adds to archives for extended
// attributes. It is removed after extraction.
const resourceForkDir = "__MACOSX"

// inspectArchive confirms that archive is a zip whose only top-level entry
// is the bundle directory, and reports whether it also carries a
// resource fork folder.
func inspectArchive(archive, bundle string) (bool, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return false, fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return false, errors.New("archive is empty")
	}

	var hasForks bool

	top := make(map[string]bool)
	for _, f := range r.File {
		name := strings.TrimPrefix(path.Clean(f.Name), "/")
		if name == "." || name == ".." || strings.HasPrefix(name, "../") {
			return false, fmt.Errorf("unsafe entry %q", f.Name)
		}

		root, rest, _ := strings.Cut(name, "/")
		if root == resourceForkDir {
			hasForks = true
			continue
		}

		if rest == "" && !f.FileInfo().IsDir() {
			return false, fmt.Errorf("unexpected top-level file %q", root)
		}
		top[root] = true
	}

	if len(top) != 1 || !top[bundle] {
		roots := make([]string, 0, len(top))
		for k := range top {
			roots = append(roots, k)
		}
		return false, fmt.Errorf("expected single top-level %q, found %v", bundle, roots)
	}

	return hasForks, nil
}

func describeExit(err error, stderr string) string {
	var exitErr *exec.ExitError
	msg := "extractor failed"
	if errors.As(err, &exitErr) {
		msg = fmt.Sprintf("extractor exited with status %d", exitErr.ExitCode())
	}

	if s := strings.TrimSpace(stderr); s != "" {
		msg += ": " + s
	}

	return msg
}

// limitedBuffer keeps the first max bytes written and drops the rest.
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max - l.buf.Len(); room > 0 {
		l.buf.Write(p[:min(room, len(p))])
	}

	return len(p), nil
}

func (l *limitedBuffer) String() string {
	return l.buf.String()
}
