// Command propgrid inspects and edits the properties of a demo object.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/propgrid/cmd/propgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
