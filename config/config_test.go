package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/appinstall/config"
	"github.com/adamwoolhether/appinstall/validate"
)

func TestDefault_Target(t *testing.T) {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	u, err := cfg.DownloadURL()
	if err != nil {
		t.Fatalf("building download url: %v", err)
	}

	expURL := "https://github.com/geroembser/MacLock/releases/download/v1.0/MacLock.app.zip"
	if u.String() != expURL {
		t.Errorf("download url = %q, want %q", u.String(), expURL)
	}

	if got, exp := cfg.Destination(), filepath.Join("/Applications", "MacLock.app"); got != exp {
		t.Errorf("destination = %q, want %q", got, exp)
	}

	if cfg.ChunkSize != 8192 {
		t.Errorf("chunk size = %d, want 8192", cfg.ChunkSize)
	}
}

func TestConfig_DownloadURL_VersionPrefix(t *testing.T) {
	cfg := config.Default()
	cfg.Version = "v2.1.0"
	cfg.BaseURL = "https://example.com/releases/download/"

	u, err := cfg.DownloadURL()
	if err != nil {
		t.Fatalf("building download url: %v", err)
	}

	if exp := "https://example.com/releases/download/v2.1.0/MacLock.app.zip"; u.String() != exp {
		t.Errorf("download url = %q, want %q", u.String(), exp)
	}
}

func TestCommand_Expand(t *testing.T) {
	cmd := config.Default().Extractor

	got := cmd.Expand(map[string]string{
		config.PlaceholderArchive: "/tmp/x.zip",
		config.PlaceholderDir:     "/Applications",
	})

	exp := []string{"/tmp/x.zip", "-d", "/Applications"}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	if cmd.Args[0] != config.PlaceholderArchive {
		t.Error("Expand must not modify the template")
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "install.toml")
	data := `
app_name = "Other"
version = "2.0.1"
retries = 3
timeout = "45s"

[launcher]
name = "xdg-open"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	exp := config.Default()
	exp.AppName = "Other"
	exp.Version = "2.0.1"
	exp.Retries = 3
	exp.Timeout = config.Duration{Duration: 45 * time.Second}
	exp.Launcher.Name = "xdg-open"

	if diff := cmp.Diff(exp, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "install.toml")
	if err := os.WriteFile(path, []byte(`colour = "blue"`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecode_BadDuration(t *testing.T) {
	cfg := config.Default()
	err := config.Decode(strings.NewReader(`timeout = "soon"`), &cfg)
	if err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{
			name:   "empty app name",
			modify: func(c *config.Config) { c.AppName = "" },
			field:  "app_name",
		},
		{
			name:   "app name with separator",
			modify: func(c *config.Config) { c.AppName = "../evil" },
			field:  "app_name",
		},
		{
			name:   "bad version",
			modify: func(c *config.Config) { c.Version = "latest" },
			field:  "version",
		},
		{
			name:   "bad base url",
			modify: func(c *config.Config) { c.BaseURL = "::nope" },
			field:  "base_url",
		},
		{
			name:   "zero chunk size",
			modify: func(c *config.Config) { c.ChunkSize = 0 },
			field:  "chunk_size",
		},
		{
			name:   "negative retries",
			modify: func(c *config.Config) { c.Retries = -1 },
			field:  "retries",
		},
		{
			name:   "short checksum",
			modify: func(c *config.Config) { c.SHA256 = "abc" },
			field:  "sha256",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.modify(&cfg)

			fe := validate.GetFieldErrors(cfg.Validate())
			if fe == nil {
				t.Fatal("expected FieldErrors")
			}

			if _, ok := fe.Fields()[tc.field]; !ok {
				t.Errorf("expected %q field error, got %v", tc.field, fe.Fields())
			}
		})
	}
}
