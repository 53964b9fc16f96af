package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// DecodeFlags select the call data to review.

func DecodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "calldata",
			Usage: "Hex encoded call data, 0x prefixed",
		},
		cli.StringFlag{
			Name:  "calldata.file",
			Usage: "File holding hex encoded call data ('-' for stdin)",
		},
	}
}

// DisplayFlags shape the printed screens like a hardware signer would.

func DisplayFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "display.appname",
			Usage: "Application name on the lead screen",
			Value: "EigenLayer",
		},
		cli.IntFlag{
			Name:  "display.titlelen",
			Usage: "Cut screen titles to this many bytes (0 = unlimited)",
		},
		cli.IntFlag{
			Name:  "display.valuelen",
			Usage: "Cut screen values to this many bytes (0 = unlimited)",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "Summary output format (text|yaml)",
			Value: "text",
		},
	}
}
