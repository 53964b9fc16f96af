package main

import (
	"fmt"
	"os"

	"github.com/rony4d/go-restaking-clearsign/cmd/clearsign/launcher"
)

func main() {
	// Call into the launcher and capture any resulting error
	if err := launcher.Launch(os.Args); err != nil {
		// Report the issue to stderr so the user sees it
		fmt.Fprintln(os.Stderr, "Error:", err)

		// Exit with a non-zero status code to indicate failure
		os.Exit(1)
	}
}
