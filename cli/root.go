// Package cli builds the bustubctl root command and its shared flags.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Options holds flags shared by every bustubctl subcommand.
type Options struct {
	ConfigPath string
}

// RootCommand wraps a cobra.Command with the options every subcommand
// reads to build its own config.Config.
type RootCommand struct {
	*cobra.Command
	Options Options
}

// Init builds the root command for the given program name.
func Init(name string) *RootCommand {
	cmd := &RootCommand{
		Command: &cobra.Command{
			Use:   name,
			Short: name + " drives the LRU-K replacer and cardinality estimators from the command line",
		},
	}
	cmd.initFlags()

	return cmd
}

func (c *RootCommand) initFlags() {
	c.PersistentFlags().StringVarP(
		&c.Options.ConfigPath,
		"config",
		"c",
		"",
		"Path to the .env configuration file",
	)
}

// Execute runs the command tree under ctx.
func (c *RootCommand) Execute(ctx context.Context) error {
	return c.ExecuteContext(ctx)
}

// MustExecute runs the command tree and exits the process on failure.
func (c *RootCommand) MustExecute(ctx context.Context) {
	if err := c.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "bustubctl failed: %v\n", err)
		os.Exit(1)
	}
}
