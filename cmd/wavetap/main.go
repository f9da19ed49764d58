// Wavetap is an inventory manager for SoundTouch networked speakers.
//
// It discovers devices on the local network via SSDP multicast (plus an
// optional manually configured IP list), queries each device for its
// authoritative identity, and reconciles the results into a persisted
// inventory.
//
// Usage:
//
//	wavetap [command] [flags]
//
// See 'wavetap --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wavetap/wavetap/internal/logging"
	"github.com/wavetap/wavetap/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wavetap",
	Short: "SoundTouch speaker inventory manager",
	Long: `Wavetap discovers SoundTouch speakers on your local network and keeps
a persisted inventory of them.

Discovery combines SSDP multicast with a manually configured IP list for
devices multicast cannot reach. Each sync queries every discovered device
for its identity and updates the inventory in place.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wavetap %s (commit: %s)\n", version.Version, version.Commit)
	},
}
