package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌┬┐┌─┐╦╔═┬┌┬┐
  ╠═╣│││├─┘╠╩╗│ │
  ╩ ╩┴ ┴┴  ╩ ╩┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "ampkit",
		Short: "Embeddable media-player UI engine",
		Long: `AmpKit builds and drives declarative media-player UI trees.

The serve command hosts a demo player: the tree is materialized by
the engine, rendered server-side, and mirrored live to connected
shells over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the AmpKit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}
