package launcher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-restaking-clearsign/flags"
)

// runConfigFromArgs runs MakeAllConfigs inside a synthetic decode command.
func runConfigFromArgs(t *testing.T, args []string) (Config, error) {
	t.Helper()

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = flags.CommonFlags()

	var (
		got    Config
		cfgErr error
	)
	app.Commands = []cli.Command{{
		Name:  "decode",
		Flags: decodeFlags(),
		Action: func(c *cli.Context) error {
			got, cfgErr = MakeAllConfigs(c)
			return nil
		},
	}}

	require.NoError(t, app.Run(append([]string{"clearsign"}, args...)))
	return got, cfgErr
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clearsign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMakeAllConfigs_defaults(t *testing.T) {
	cfg, err := runConfigFromArgs(t, []string{"decode"})
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
	require.Equal(t, "EigenLayer", cfg.Display.Plugin().AppName)
}

// TestMakeAllConfigs_sources checks the precedence of every config source:
// defaults < config file < environment < flags.
func TestMakeAllConfigs_sources(t *testing.T) {
	file := writeConfigFile(t, `
logging:
  verbosity: 5
  format: json
display:
  appName: Restake
  maxValueLen: 20
`)

	tests := []struct {
		name string
		env  map[string]string
		args []string
		want func(t *testing.T, cfg Config)
	}{
		{
			name: "log flags before the subcommand",
			args: []string{"--log.format", "json", "--log.verbosity", "4", "--log.color", "decode"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, LoggingConfig{Verbosity: 4, Format: "json", Color: true}, cfg.Logging)
			},
		},
		{
			name: "log flags after the subcommand",
			args: []string{"decode", "--log.verbosity", "6"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, 6, cfg.Logging.Verbosity)
			},
		},
		{
			name: "display flags",
			args: []string{"decode", "--display.appname", "Ledger", "--display.titlelen", "16", "--display.valuelen", "32", "--output", "yaml"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, DisplayConfig{AppName: "Ledger", MaxTitleLen: 16, MaxValueLen: 32, Output: "yaml"}, cfg.Display)

				p := cfg.Display.Plugin()
				require.Equal(t, "Ledger", p.AppName)
				require.Equal(t, 16, p.MaxTitleLen)
				require.Equal(t, 32, p.MaxValueLen)
			},
		},
		{
			name: "config file",
			args: []string{"--config", file, "decode"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, LoggingConfig{Verbosity: 5, Format: "json"}, cfg.Logging)
				require.Equal(t, "Restake", cfg.Display.AppName)
				require.Equal(t, 20, cfg.Display.MaxValueLen)
				require.Equal(t, "text", cfg.Display.Output)
			},
		},
		{
			name: "environment over config file",
			env: map[string]string{
				"CLEARSIGN_LOGGING_VERBOSITY":     "2",
				"CLEARSIGN_DISPLAY_APP_NAME":      "FromEnv",
				"CLEARSIGN_DISPLAY_MAX_TITLE_LEN": "12",
				"CLEARSIGN_SENTRY_DSN":            "https://key@sentry.example.com/1",
			},
			args: []string{"decode", "--config", file},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, 2, cfg.Logging.Verbosity)
				require.Equal(t, "json", cfg.Logging.Format)
				require.Equal(t, "FromEnv", cfg.Display.AppName)
				require.Equal(t, 12, cfg.Display.MaxTitleLen)
				require.Equal(t, "https://key@sentry.example.com/1", cfg.Sentry.DSN)
			},
		},
		{
			name: "flags over environment",
			env:  map[string]string{"CLEARSIGN_DISPLAY_APP_NAME": "FromEnv"},
			args: []string{"--config", file, "decode", "--display.appname", "FromFlag"},
			want: func(t *testing.T, cfg Config) {
				require.Equal(t, "FromFlag", cfg.Display.AppName)
				require.Equal(t, 5, cfg.Logging.Verbosity)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			cfg, err := runConfigFromArgs(t, test.args)
			require.NoError(t, err)
			test.want(t, cfg)
			t.Logf("args = %#v", test.args)
		})
	}
}

func TestMakeAllConfigs_invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log format", []string{"--log.format", "xml", "decode"}},
		{"output", []string{"decode", "--output", "json"}},
		{"negative limit", []string{"decode", "--display.titlelen", "-1"}},
		{"missing file", []string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "decode"}},
		{"unknown key", []string{"--config", writeConfigFile(t, "display:\n  colour: red\n"), "decode"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runConfigFromArgs(t, test.args)
			require.Error(t, err)
		})
	}
}

func TestMakeAllConfigs_emptyFile(t *testing.T) {
	cfg, err := runConfigFromArgs(t, []string{"--config", writeConfigFile(t, ""), "decode"})
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer

	log, err := newLogger(LoggingConfig{Verbosity: 4, Format: "json"}, SentryConfig{}, &out)
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, log.GetLevel())
	require.Empty(t, log.Hooks)

	log.WithField("op", "undelegate").Info("Screens ready")
	log.Debug("hidden")
	require.Contains(t, out.String(), `"op":"undelegate"`)
	require.NotContains(t, out.String(), "hidden")

	_, err = newLogger(LoggingConfig{Verbosity: 7, Format: "text"}, SentryConfig{}, &out)
	require.Error(t, err)
	_, err = newLogger(LoggingConfig{Verbosity: -1, Format: "text"}, SentryConfig{}, &out)
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	require.Equal(t, "/etc/clearsign.yaml", resolvePath("/etc/clearsign.yaml"))
	require.Equal(t, filepath.Join(GuessWorkDir(), "conf.yaml"), resolvePath("conf.yaml"))
	require.Equal(t, filepath.Join(GuessHomeDir(), "conf.yaml"), resolvePath("~/conf.yaml"))
}
