// Package cmd assembles the searxup command tree.
package cmd

import (
	"fmt"

	"github.com/Vakrehus/searxup/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Persistent flag names.
const (
	// TimingFlagName enables per-activity timing output.
	TimingFlagName = "timing"
	// DebugFlagName enables debug logging.
	DebugFlagName = "debug"
)

// NewRootCmd creates and returns the root command with version info and
// subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:          "searxup",
		Short:        "searxup provisions a SearXNG metasearch instance into a container",
		Long: "searxup provisions a SearXNG metasearch instance into a container:\n" +
			"it creates the target, installs the application and its cache service,\n" +
			"renders the configuration with a fresh secret, and verifies the instance\n" +
			"is actually serving. The sequence is idempotent and safe to re-run.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(TimingFlagName, false, "Show per-activity timing output")
	cmd.PersistentFlags().Bool(DebugFlagName, false, "Enable debug logging")

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		debug, _ := cmd.Flags().GetBool(DebugFlagName)
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	cmd.AddCommand(NewProvisionCmd(runtimeContainer))
	cmd.AddCommand(NewVerifyCmd(runtimeContainer))

	return cmd
}

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
