package cmd

import (
	"fmt"

	"github.com/Vakrehus/searxup/pkg/di"
	"github.com/Vakrehus/searxup/pkg/io/configmanager"
	"github.com/Vakrehus/searxup/pkg/svc/provisioner"
	"github.com/Vakrehus/searxup/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewProvisionCmd wires the provision command using the shared runtime
// container.
func NewProvisionCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "provision",
		Short:        "Provision a SearXNG instance",
		Long:         "Provision a SearXNG instance into a target container as defined by configuration.",
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return handleProvisionRunE(cmd, runtimeContainer, cfgManager)
	}

	return cmd
}

// handleProvisionRunE executes the full provisioning sequence.
func handleProvisionRunE(
	cmd *cobra.Command,
	runtimeContainer *di.Runtime,
	cfgManager *configmanager.ConfigManager,
) error {
	run, err := executeSequence(cmd, runtimeContainer, cfgManager, "🚀",
		"Provision SearXNG instance...",
		func(factory di.ProvisionerFactory) *provisioner.Provisioner { return factory() },
	)
	if err != nil {
		return err
	}

	writeProvisionSummary(cmd, runtimeContainer, run)

	return nil
}

// executeSequence loads configuration, resolves the backend and runs the
// given provisioner sequence.
func executeSequence(
	cmd *cobra.Command,
	runtimeContainer *di.Runtime,
	cfgManager *configmanager.ConfigManager,
	titleEmoji, titleContent string,
	sequence func(di.ProvisionerFactory) *provisioner.Provisioner,
) (*provisioner.Run, error) {
	writer := cmd.OutOrStdout()
	injector := runtimeContainer.Injector()

	tmr, err := di.ResolveTimer(injector)
	if err != nil {
		return nil, err
	}

	tmr.Start()

	doc, err := cfgManager.Load()
	if err != nil {
		return nil, err
	}

	providerFactory, err := di.ResolveProviderFactory(injector)
	if err != nil {
		return nil, err
	}

	backend, err := providerFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}

	provisionerFactory, err := di.ResolveProvisionerFactory(injector)
	if err != nil {
		return nil, err
	}

	notify.Titlef(writer, titleEmoji, "%s", titleContent)

	run, runErr := sequence(provisionerFactory).Run(cmd.Context(), doc, backend, writer)
	if runErr != nil {
		return run, fmt.Errorf("provisioning halted in phase %s: %w", run.Phase, runErr)
	}

	return run, nil
}

// writeProvisionSummary reports the target identifier, address, sizing and
// the generated secret after a successful run.
func writeProvisionSummary(
	cmd *cobra.Command,
	runtimeContainer *di.Runtime,
	run *provisioner.Run,
) {
	writer := cmd.OutOrStdout()
	target := run.Provision.Spec.Target
	service := run.Provision.Spec.Service

	if timingEnabled(cmd) {
		if tmr, err := di.ResolveTimer(runtimeContainer.Injector()); err == nil {
			notify.SuccessWithTimerf(writer, tmr, "instance provisioned and verified")
		}
	} else {
		notify.Successf(writer, "instance provisioned and verified")
	}

	notify.Infof(writer, "target:  %s (%s)", target.Name, target.Hostname)
	notify.Infof(writer, "address: %s:%d", run.Address, service.Port)
	notify.Infof(writer, "sizing:  %d cores, %d MiB memory, %d MiB swap, %d GiB disk",
		target.Sizing.Cores, target.Sizing.MemoryMB, target.Sizing.SwapMB, target.Sizing.DiskGB)
	notify.Infof(writer, "secret:  %s", run.Secret)
}

// timingEnabled reports whether the persistent timing flag is set.
func timingEnabled(cmd *cobra.Command) bool {
	enabled, err := cmd.Flags().GetBool(TimingFlagName)

	return err == nil && enabled
}
