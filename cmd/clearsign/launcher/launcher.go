package launcher

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-restaking-clearsign/decoder"
	"github.com/rony4d/go-restaking-clearsign/flags"
	"github.com/rony4d/go-restaking-clearsign/plugin"
)

const version = "0.1.0"

// stdin is where call data is read from when no flag or argument names it.
var stdin io.Reader = os.Stdin

var (
	decodeCommand = cli.Command{
		Name:      "decode",
		Usage:     "Decode call data and print the review screens",
		ArgsUsage: "[<hex calldata>]",
		Action:    decodeAction,
		Flags:     decodeFlags(),
		Description: `
Plays the signing host: the selector picks the operation, every 32-byte word
is streamed into the decoder in order and the screens are printed once the
last word has been accepted. Call data comes from --calldata, --calldata.file,
the first argument or stdin, in this order.`,
	}

	selectorsCommand = cli.Command{
		Name:   "selectors",
		Usage:  "List the supported operations",
		Action: selectorsAction,
	}
)

// decodeFlags repeats the common flags so they are accepted after the
// subcommand name too.
func decodeFlags() []cli.Flag {
	fs := append(flags.DecodeFlags(), flags.DisplayFlags()...)
	return append(fs, flags.CommonFlags()...)
}

func newApp() *cli.App {
	app := flags.NewApp(version, "Clear-signing preview for restaking contract calls")
	app.Flags = flags.CommonFlags()
	app.Commands = []cli.Command{
		decodeCommand,
		selectorsCommand,
	}
	return app
}

// Launch runs the command line tool.
func Launch(args []string) error {
	return newApp().Run(args)
}

func decodeAction(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Logging, cfg.Sentry, ctx.App.ErrWriter)
	if err != nil {
		return err
	}

	data, err := readCalldata(ctx, stdin)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(data)).Debug("Read call data")

	sum, err := plugin.Summarize(plugin.New(cfg.Display.Plugin(), log), data)
	if err != nil {
		log.WithError(err).Error("Call data rejected")
		return err
	}
	return printSummary(ctx.App.Writer, cfg.Display.Output, sum)
}

func selectorsAction(ctx *cli.Context) error {
	parsed, err := decoder.ABI()
	if err != nil {
		return err
	}
	for _, op := range decoder.Operations {
		method, ok := parsed.Methods[op.Name]
		if !ok || !strings.EqualFold(hexutil.Encode(method.ID), op.Selector.String()) {
			return fmt.Errorf("operation %s does not match its ABI", op.Name)
		}
		fmt.Fprintf(ctx.App.Writer, "%s  %-28s %s\n", op.Selector, op.Label, op.Signature)
	}
	return nil
}

// readCalldata picks the call data from the flags, the first argument or stdin.
func readCalldata(ctx *cli.Context, in io.Reader) ([]byte, error) {
	var raw string
	switch {
	case ctx.String("calldata") != "":
		raw = ctx.String("calldata")
	case ctx.String("calldata.file") == "-":
		buf, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		raw = string(buf)
	case ctx.String("calldata.file") != "":
		buf, err := os.ReadFile(resolvePath(ctx.String("calldata.file")))
		if err != nil {
			return nil, err
		}
		raw = string(buf)
	case ctx.NArg() > 0:
		raw = ctx.Args().First()
	default:
		buf, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		raw = string(buf)
	}

	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X") {
		raw = "0x" + raw
	}
	data, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid call data: %w", err)
	}
	return data, nil
}

type summaryDoc struct {
	App       string      `yaml:"app"`
	Operation string      `yaml:"operation"`
	Method    string      `yaml:"method"`
	Screens   []screenDoc `yaml:"screens"`
}

type screenDoc struct {
	Title string `yaml:"title"`
	Value string `yaml:"value"`
}

func printSummary(w io.Writer, format string, sum *plugin.Summary) error {
	if format == "yaml" {
		doc := summaryDoc{
			App:       sum.App,
			Operation: sum.Operation,
			Method:    sum.Kind.String(),
		}
		for _, s := range sum.Screens {
			doc.Screens = append(doc.Screens, screenDoc{Title: s.Title, Value: s.Value})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "%s\n%s\n", sum.App, sum.Operation)
	for i, s := range sum.Screens {
		fmt.Fprintf(w, "[%d/%d] %s: %s\n", i+1, len(sum.Screens), s.Title, s.Value)
	}
	return nil
}
