package install_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/adamwoolhether/appinstall/config"
	"github.com/adamwoolhether/appinstall/install"
)

// makeZip builds an archive in memory. Names ending in "/" are directories.
func makeZip(t *testing.T, entries ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry %q: %v", name, err)
		}
		if !strings.HasSuffix(name, "/") {
			if _, err := fmt.Fprintf(w, "contents of %s", name); err != nil {
				t.Fatalf("writing zip entry %q: %v", name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	return buf.Bytes()
}

func bundleZip(t *testing.T, app string) []byte {
	return makeZip(t,
		app+".app/",
		app+".app/Contents/",
		app+".app/Contents/Info.plist",
		app+".app/Contents/MacOS/"+app,
	)
}

// releaseServer serves body with an explicit Content-Length and counts hits.
type releaseServer struct {
	*httptest.Server
	hits  atomic.Int32
	paths chan string
}

func newReleaseServer(t *testing.T, handler func(n int32, w http.ResponseWriter)) *releaseServer {
	t.Helper()

	rs := releaseServer{paths: make(chan string, 16)}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := rs.hits.Add(1)
		select {
		case rs.paths <- r.URL.Path:
		default:
		}
		handler(n, w)
	}))
	t.Cleanup(rs.Close)

	return &rs
}

func serveBody(body []byte) func(int32, http.ResponseWriter) {
	return func(_ int32, w http.ResponseWriter) {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// fakeRunner extracts in-process and records every command.
type fakeRunner struct {
	mu       sync.Mutex
	runs     [][]string
	starts   [][]string
	runFn    func(stderr io.Writer, args []string) error
	startErr error
}

func (f *fakeRunner) Run(_ context.Context, _, stderr io.Writer, name string, args ...string) error {
	f.mu.Lock()
	f.runs = append(f.runs, append([]string{name}, args...))
	f.mu.Unlock()

	if f.runFn != nil {
		return f.runFn(stderr, args)
	}

	return unzipTo(args[0], args[2])
}

func (f *fakeRunner) Start(name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.starts = append(f.starts, append([]string{name}, args...))

	return f.startErr
}

// unzipTo mimics `unzip archive -d dir`.
func unzipTo(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}

		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
	}

	return nil
}

type env struct {
	cfg     config.Config
	appsDir string
	tempDir string
	runner  *fakeRunner
	out     *bytes.Buffer
}

func newEnv(t *testing.T, serverURL string) *env {
	t.Helper()

	cfg := config.Default()
	cfg.AppName = "X"
	cfg.BaseURL = serverURL + "/releases/download"
	cfg.ApplicationsDir = t.TempDir()

	return &env{
		cfg:     cfg,
		appsDir: cfg.ApplicationsDir,
		tempDir: t.TempDir(),
		runner:  &fakeRunner{},
		out:     &bytes.Buffer{},
	}
}

func (e *env) build(t *testing.T, optFns ...install.Option) *install.Installer {
	t.Helper()

	opts := []install.Option{
		install.WithRunner(e.runner),
		install.WithOutput(e.out),
		install.WithNoColor(),
		install.WithTempDir(e.tempDir),
	}

	in, err := install.Build(e.cfg, append(opts, optFns...)...)
	if err != nil {
		t.Fatalf("building installer: %v", err)
	}

	return in
}

// leftovers lists download buffers still present in dir.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.app.zip"))
	if err != nil {
		t.Fatalf("globbing temp dir: %v", err)
	}

	return matches
}

func assertFault(t *testing.T, err error, fault error, step install.Step) {
	t.Helper()

	if !errors.Is(err, fault) {
		t.Fatalf("expected %v, got: %v", fault, err)
	}

	var instErr *install.Error
	if !errors.As(err, &instErr) {
		t.Fatalf("expected *install.Error, got %T", err)
	}
	if instErr.Step != step {
		t.Errorf("step = %q, want %q", instErr.Step, step)
	}
}
