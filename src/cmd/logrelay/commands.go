// FILE: logrelay/src/cmd/logrelay/commands.go
package main

import (
	"flag"
	"fmt"
	"os"

	"logrelay/src/internal/config"
	"logrelay/src/internal/version"
)

// Handles subcommand routing before main app initialization
type CommandRouter struct {
	commands map[string]CommandHandler
}

// Defines the interface for subcommands
type CommandHandler interface {
	Execute(args []string) error
	Description() string
}

func NewCommandRouter() *CommandRouter {
	router := &CommandRouter{
		commands: make(map[string]CommandHandler),
	}

	router.commands["config"] = &configCommand{}
	router.commands["version"] = &versionCommand{}
	router.commands["help"] = &helpCommand{}

	return router
}

// Checks for and executes subcommands, exits when one ran
func (r *CommandRouter) Route(args []string) {
	if len(args) < 2 {
		return
	}

	cmdName := args[1]
	handler, exists := r.commands[cmdName]
	if !exists {
		// Anything not starting with a dash looks like a mistyped command
		if cmdName[0] != '-' {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmdName)
			fmt.Fprintln(os.Stderr, "\nAvailable commands:")
			r.ShowCommands()
			os.Exit(1)
		}
		return
	}

	if err := handler.Execute(args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// Displays available subcommands
func (r *CommandRouter) ShowCommands() {
	for _, name := range []string{"config", "version", "help"} {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, r.commands[name].Description())
	}
}

type helpCommand struct{}

func (c *helpCommand) Execute(args []string) error {
	fmt.Print(helpText)
	return nil
}

func (c *helpCommand) Description() string {
	return "Display help information"
}

type versionCommand struct{}

func (c *versionCommand) Execute(args []string) error {
	fmt.Println(version.String())
	return nil
}

func (c *versionCommand) Description() string {
	return "Show version information"
}

// configCommand writes the default configuration as a TOML template
type configCommand struct{}

func (c *configCommand) Execute(args []string) error {
	cmd := flag.NewFlagSet("config", flag.ContinueOnError)
	cmd.SetOutput(os.Stderr)

	var (
		outShort = cmd.String("o", "", "Output file path")
		outLong  = cmd.String("output", "", "Output file path")
	)
	if err := cmd.Parse(args); err != nil {
		return err
	}

	path := *outLong
	if *outShort != "" {
		path = *outShort
	}
	if path == "" {
		path = config.GetConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}

	if err := config.WriteDefaults(path); err != nil {
		return err
	}
	fmt.Printf("Default configuration written to %s\n", path)
	return nil
}

func (c *configCommand) Description() string {
	return "Write a default configuration file"
}
