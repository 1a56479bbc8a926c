// Command techpack is the tech pack editor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/stitchworks/techpack-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
