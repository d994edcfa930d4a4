// Package config holds the install target and the knobs that used to be
// literals in the install script. Values come from Default, optionally
// overlaid by a TOML file via Load, and finally by CLI flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/adamwoolhether/appinstall/validate"
)

// Placeholders expanded in Command.Args.
const (
	PlaceholderArchive = "{archive}"
	PlaceholderDir     = "{dir}"
	PlaceholderDest    = "{dest}"
)

// DefaultChunkSize is the number of bytes requested per read while downloading.
const DefaultChunkSize = 8 << 10

// Config describes a single install.
type Config struct {
	AppName         string   `toml:"app_name" validate:"required,excludesall=/"`
	Version         string   `toml:"version" validate:"required,version"`
	BaseURL         string   `toml:"base_url" validate:"required,url"`
	ApplicationsDir string   `toml:"applications_dir" validate:"required"`
	Extractor       Command  `toml:"extractor"`
	Launcher        Command  `toml:"launcher"`
	NoLaunch        bool     `toml:"no_launch"`
	ChunkSize       int      `toml:"chunk_size" validate:"gt=0"`
	Retries         int      `toml:"retries" validate:"gte=0"`
	LimitRate       int64    `toml:"limit_rate" validate:"gte=0"`
	Timeout         Duration `toml:"timeout"`
	SHA256          string   `toml:"sha256" validate:"omitempty,hexadecimal,len=64"`
}

// Command is an external program and its argument template.
type Command struct {
	Name string   `toml:"name" validate:"required"`
	Args []string `toml:"args"`
}

// Expand returns the arguments with placeholders replaced by vars.
func (c Command) Expand(vars map[string]string) []string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	r := strings.NewReplacer(pairs...)

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = r.Replace(a)
	}

	return args
}

// String renders the command for display.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Duration is a time.Duration read from TOML strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", b, err)
	}
	if v < 0 {
		return errors.New("duration must not be negative")
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the MacLock 1.0 install target.
func Default() Config {
	return Config{
		AppName:         "MacLock",
		Version:         "1.0",
		BaseURL:         "https://github.com/geroembser/MacLock/releases/download",
		ApplicationsDir: "/Applications",
		Extractor: Command{
			Name: "unzip",
			Args: []string{PlaceholderArchive, "-d", PlaceholderDir},
		},
		Launcher: Command{
			Name: "open",
			Args: []string{PlaceholderDest},
		},
		ChunkSize: DefaultChunkSize,
	}
}

// Load overlays the TOML file at path onto Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode overlays TOML read from r onto cfg.
func Decode(r io.Reader, cfg *Config) error {
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()

	if err := d.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("decoding config: %s", strict.String())
		}
		return fmt.Errorf("decoding config: %w", err)
	}

	return nil
}

// Validate checks every field against its tags.
func (c Config) Validate() error {
	if err := validate.Check(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// BundleName is the top-level directory expected inside the archive.
func (c Config) BundleName() string {
	return c.AppName + ".app"
}

// ArchiveName is the file name of the release asset.
func (c Config) ArchiveName() string {
	return c.BundleName() + ".zip"
}

// DownloadURL composes <base>/v<version>/<AppName>.app.zip.
func (c Config) DownloadURL() (*url.URL, error) {
	raw, err := url.JoinPath(c.BaseURL, "v"+strings.TrimPrefix(c.Version, "v"), c.ArchiveName())
	if err != nil {
		return nil, fmt.Errorf("joining download url: %w", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing download url: %w", err)
	}

	return u, nil
}

// Destination is the path the application bundle is installed to.
func (c Config) Destination() string {
	return filepath.Join(c.ApplicationsDir, c.BundleName())
}
