package launcher

import (
	"fmt"
	"io"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// sentryLevels are reported to Sentry when a DSN is configured.
var sentryLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
}

// newLogger builds the process logger. Verbosity 0 maps to panic, 6 to trace.
func newLogger(cfg LoggingConfig, sentry SentryConfig, out io.Writer) (*logrus.Logger, error) {
	if cfg.Verbosity < int(logrus.PanicLevel) || cfg.Verbosity > int(logrus.TraceLevel) {
		return nil, fmt.Errorf("log verbosity %d out of range 0..%d", cfg.Verbosity, logrus.TraceLevel)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(logrus.Level(cfg.Verbosity))

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:      cfg.Color,
			DisableColors:    !cfg.Color,
			FullTimestamp:    true,
			DisableTimestamp: false,
		})
	}

	if sentry.DSN != "" {
		hook, err := logrus_sentry.NewSentryHook(sentry.DSN, sentryLevels)
		if err != nil {
			return nil, fmt.Errorf("sentry hook: %w", err)
		}
		hook.Timeout = 2 * time.Second
		hook.StacktraceConfiguration.Enable = true
		log.AddHook(hook)
	}
	return log, nil
}
