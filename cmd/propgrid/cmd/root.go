// Package cmd implements the propgrid CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

// Commands in registration order, and by name.
var (
	ordered  []*Command
	commands = make(map[string]*Command)
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Global flags.
var (
	configPath string
	verbose    bool
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	configPath, verbose = "", false

	// --config and --verbose are accepted anywhere on the line.
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--verbose":
			verbose = true
		case arg == "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			rest = append(rest, arg)
		}
	}

	if len(rest) == 0 {
		printHelp()
		return nil
	}

	switch rest[0] {
	case "-h", "--help", "help":
		printHelp()
		return nil
	case "-v", "--version", "version":
		fmt.Fprintf(stdout, "propgrid version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", rest[0])
		printHelp()
		return fmt.Errorf("unknown command: %s", rest[0])
	}
	for _, arg := range rest[1:] {
		if arg == "-h" || arg == "--help" {
			fmt.Fprintf(stdout, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.Usage)
			return nil
		}
	}
	return cmd.Run(rest[1:])
}

func printHelp() {
	w := stdout
	fmt.Fprintln(w, "propgrid shows the properties of a demo object as a grid of editors.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  propgrid [--config FILE] [--verbose] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range ordered {
		fmt.Fprintf(w, "  %-10s %s\n", c.Name, c.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings are read from ./propgrid.yaml and PROPGRID_* variables")
	fmt.Fprintln(w, "(grouping, live_sync, metadata, log_level).")
}
