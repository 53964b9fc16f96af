package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before the config file, the environment and flags override them.

type Defaults struct {
	Logging LoggingDefaults
	Sentry  SentryDefaults
	Display DisplayDefaults
}

// LoggingDefaults captures how the launcher talks to the operator.

type LoggingDefaults struct {
	Verbosity int    //	0=panic ... 6=trace. 3 (warn) keeps the screen output clean and still reports rejected parameters.
	Format    string //	text for terminals, json when the output is collected by a log shipper.
	Color     bool   //	Colored level names in text format; off by default so redirected output stays plain.
}

// SentryDefaults configures error reporting.

type SentryDefaults struct {
	DSN string //	Sentry project DSN. Empty disables the hook entirely, which is the default for a local tool.
}

// DisplayDefaults mirror the limits of the signing device being simulated.

type DisplayDefaults struct {
	AppName     string //	Name shown above the operation label on the lead screen.
	MaxTitleLen int    //	Title buffer of the device in bytes; 0 prints titles in full.
	MaxValueLen int    //	Value buffer of the device in bytes; 0 prints values in full.
	Output      string //	text prints one screen per line, yaml prints the whole summary document.
}

func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
		Sentry: SentryDefaults{},
		Display: DisplayDefaults{
			AppName:     "EigenLayer",
			MaxTitleLen: 0,
			MaxValueLen: 0,
			Output:      "text",
		},
	}
}
