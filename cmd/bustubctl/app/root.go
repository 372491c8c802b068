// Package app assembles the bustubctl subcommand tree.
package app

import (
	"context"

	"github.com/mackushev/bustub/cli"
)

var rootCmd = cli.Init("bustubctl")

// MustExecute wires up every subcommand and runs the tree, exiting the
// process if it fails.
func MustExecute(ctx context.Context) {
	initReplay()
	initEstimate()
	rootCmd.MustExecute(ctx)
}
