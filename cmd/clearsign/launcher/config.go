// This file maps the config file, the environment and the CLI context to the config struct.

package launcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-restaking-clearsign/plugin"
)

// envPrefix namespaces environment overrides, e.g. CLEARSIGN_LOGGING_VERBOSITY.
const envPrefix = "clearsign"

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Sentry  SentryConfig  `yaml:"sentry"`
	Display DisplayConfig `yaml:"display"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn" envconfig:"dsn"`
}

type DisplayConfig struct {
	AppName     string `yaml:"appName"     split_words:"true"`
	MaxTitleLen int    `yaml:"maxTitleLen" split_words:"true"`
	MaxValueLen int    `yaml:"maxValueLen" split_words:"true"`
	Output      string `yaml:"output"`
}

// Plugin returns the plugin settings of the display section.
func (c DisplayConfig) Plugin() plugin.Config {
	cfg := plugin.DefaultConfig()
	cfg.AppName = c.AppName
	cfg.MaxTitleLen = c.MaxTitleLen
	cfg.MaxValueLen = c.MaxValueLen
	return cfg
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
		Sentry: SentryConfig{
			DSN: d.Sentry.DSN,
		},
		Display: DisplayConfig{
			AppName:     d.Display.AppName,
			MaxTitleLen: d.Display.MaxTitleLen,
			MaxValueLen: d.Display.MaxValueLen,
			Output:      d.Display.Output,
		},
	}
}

// MakeAllConfigs merges defaults, the optional config file, environment
// variables and CLI overrides, in this order, into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := stringFlag(ctx, "config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("error processing environment: %w", err)
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be 'text' or 'json')", c.Logging.Format)
	}
	switch c.Display.Output {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid output %q (must be 'text' or 'yaml')", c.Display.Output)
	}
	if c.Display.MaxTitleLen < 0 || c.Display.MaxValueLen < 0 {
		return fmt.Errorf("display limits must not be negative")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

// loadConfigFile overlays the YAML document at path onto cfg. Keys that are
// absent keep their current values.
func loadConfigFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

// isSet looks through the command and every parent context, so flags work on
// both sides of the subcommand name.
func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	return ctx.GlobalString(name)
}

func intFlag(ctx *cli.Context, name string) int {
	if ctx.IsSet(name) {
		return ctx.Int(name)
	}
	return ctx.GlobalInt(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	if ctx.IsSet(name) {
		return ctx.Bool(name)
	}
	return ctx.GlobalBool(name)
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if isSet(ctx, "log.format") {
		cfg.Logging.Format = stringFlag(ctx, "log.format")
	}
	if isSet(ctx, "log.verbosity") {
		cfg.Logging.Verbosity = intFlag(ctx, "log.verbosity")
	}
	if isSet(ctx, "log.color") {
		cfg.Logging.Color = boolFlag(ctx, "log.color")
	}

	if isSet(ctx, "sentry.dsn") {
		cfg.Sentry.DSN = stringFlag(ctx, "sentry.dsn")
	}

	if isSet(ctx, "display.appname") {
		cfg.Display.AppName = stringFlag(ctx, "display.appname")
	}
	if isSet(ctx, "display.titlelen") {
		cfg.Display.MaxTitleLen = intFlag(ctx, "display.titlelen")
	}
	if isSet(ctx, "display.valuelen") {
		cfg.Display.MaxValueLen = intFlag(ctx, "display.valuelen")
	}
	if isSet(ctx, "output") {
		cfg.Display.Output = stringFlag(ctx, "output")
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
