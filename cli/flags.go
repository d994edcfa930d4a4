package cli

import (
	"github.com/urfave/cli/v3"

	"github.com/adamwoolhether/appinstall/config"
)

const (
	flagConfig          = "config"
	flagAppName         = "app-name"
	flagAppVersion      = "app-version"
	flagBaseURL         = "base-url"
	flagApplicationsDir = "applications-dir"
	flagChunkSize       = "chunk-size"
	flagRetries         = "retries"
	flagLimitRate       = "limit-rate"
	flagTimeout         = "timeout"
	flagSHA256          = "sha256"
	flagNoLaunch        = "no-launch"
	flagDryRun          = "dry-run"
	flagNoColor         = "no-color"
)

func envVars(name string) cli.ValueSourceChain {
	return cli.EnvVars("APPINSTALL_" + name)
}

// installFlags are the flags that override config file values, plus the
// run-only switches.
func installFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "Path to a TOML config file",
			Sources: envVars("CONFIG"),
		},
		&cli.StringFlag{
			Name:    flagAppName,
			Usage:   "Application name; the bundle is <name>.app",
			Sources: envVars("APP_NAME"),
		},
		&cli.StringFlag{
			Name:    flagAppVersion,
			Usage:   "Release version to install",
			Sources: envVars("APP_VERSION"),
		},
		&cli.StringFlag{
			Name:    flagBaseURL,
			Usage:   "Release download base URL",
			Sources: envVars("BASE_URL"),
		},
		&cli.StringFlag{
			Name:    flagApplicationsDir,
			Usage:   "Directory the bundle is installed into",
			Sources: envVars("APPLICATIONS_DIR"),
		},
		&cli.IntFlag{
			Name:    flagChunkSize,
			Usage:   "Maximum bytes per download chunk",
			Sources: envVars("CHUNK_SIZE"),
		},
		&cli.IntFlag{
			Name:    flagRetries,
			Usage:   "Download retries with exponential backoff",
			Sources: envVars("RETRIES"),
		},
		&cli.Int64Flag{
			Name:    flagLimitRate,
			Usage:   "Download bandwidth limit in bytes per second (0 = unlimited)",
			Sources: envVars("LIMIT_RATE"),
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Usage:   "HTTP request timeout (0 = none)",
			Sources: envVars("TIMEOUT"),
		},
		&cli.StringFlag{
			Name:    flagSHA256,
			Usage:   "Expected SHA-256 of the archive, hex encoded",
			Sources: envVars("SHA256"),
		},
		&cli.BoolFlag{
			Name:    flagNoLaunch,
			Usage:   "Do not open the application after installing",
			Sources: envVars("NO_LAUNCH"),
		},
		&cli.BoolFlag{
			Name:  flagDryRun,
			Usage: "Check the destination and print the plan without installing",
		},
		&cli.BoolFlag{
			Name:    flagNoColor,
			Usage:   "Disable colored output",
			Sources: envVars("NO_COLOR"),
		},
	}
}

// loadConfig layers defaults, the optional config file and any flag or
// environment value that was explicitly set, then validates the result.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if path := cmd.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if cmd.IsSet(flagAppName) {
		cfg.AppName = cmd.String(flagAppName)
	}
	if cmd.IsSet(flagAppVersion) {
		cfg.Version = cmd.String(flagAppVersion)
	}
	if cmd.IsSet(flagBaseURL) {
		cfg.BaseURL = cmd.String(flagBaseURL)
	}
	if cmd.IsSet(flagApplicationsDir) {
		cfg.ApplicationsDir = cmd.String(flagApplicationsDir)
	}
	if cmd.IsSet(flagChunkSize) {
		cfg.ChunkSize = cmd.Int(flagChunkSize)
	}
	if cmd.IsSet(flagRetries) {
		cfg.Retries = cmd.Int(flagRetries)
	}
	if cmd.IsSet(flagLimitRate) {
		cfg.LimitRate = cmd.Int64(flagLimitRate)
	}
	if cmd.IsSet(flagTimeout) {
		cfg.Timeout = config.Duration{Duration: cmd.Duration(flagTimeout)}
	}
	if cmd.IsSet(flagSHA256) {
		cfg.SHA256 = cmd.String(flagSHA256)
	}
	if cmd.IsSet(flagNoLaunch) {
		cfg.NoLaunch = cmd.Bool(flagNoLaunch)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
