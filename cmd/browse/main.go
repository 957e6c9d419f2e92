package main

import (
	"fmt"
	"os"

	"browsebridge/observability"
)

func main() {
	err := newRootCmd(openBrowser).Execute()
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
