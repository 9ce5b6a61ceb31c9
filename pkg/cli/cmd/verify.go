package cmd

import (
	"github.com/Vakrehus/searxup/pkg/di"
	"github.com/Vakrehus/searxup/pkg/io/configmanager"
	"github.com/Vakrehus/searxup/pkg/svc/provisioner"
	"github.com/Vakrehus/searxup/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewVerifyCmd wires the verify command using the shared runtime container.
// It runs only the verification step against an existing target.
func NewVerifyCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "verify",
		Short:        "Verify a provisioned instance",
		Long:         "Verify that the cache and application services are active and the configured port accepts connections.",
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return handleVerifyRunE(cmd, runtimeContainer, cfgManager)
	}

	return cmd
}

// handleVerifyRunE executes the verification-only sequence.
func handleVerifyRunE(
	cmd *cobra.Command,
	runtimeContainer *di.Runtime,
	cfgManager *configmanager.ConfigManager,
) error {
	run, err := executeSequence(cmd, runtimeContainer, cfgManager, "🔍",
		"Verify SearXNG instance...",
		func(di.ProvisionerFactory) *provisioner.Provisioner { return provisioner.VerifyOnly() },
	)
	if err != nil {
		return err
	}

	service := run.Provision.Spec.Service

	notify.Successf(cmd.OutOrStdout(), "instance is serving at %s:%d", run.Address, service.Port)

	return nil
}
