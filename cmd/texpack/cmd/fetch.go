package cmd

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Provisions the texture packer",
	Long: `Downloads the runnable texture packer into the vendor directory, unless already provisioned.

Use --force to discard the provisioned packer and download it again.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := settings.logger()
		if err != nil {
			wrapFatalln("failed to set up logging", err)
			return
		}
		defer func() { _ = logger.Sync() }()

		prov, err := settings.provisioner(logger)
		if err != nil {
			wrapFatalln("failed to set up provisioning", err)
			return
		}

		ctx, cancel := interruptibleContext()
		defer cancel()

		if texpackFlags.fetch.force {
			if err = prov.Reset(ctx); err != nil {
				wrapFatalln("failed to reset vendor directory", err)
				return
			}
		}
		provisioned, err := prov.Provisioned(ctx)
		if err != nil {
			wrapFatalln("failed to inspect vendor directory", err)
			return
		}
		if provisioned {
			infoLogger.Printf("texture packer already provisioned in %s", prov.Dir())
			return
		}
		if err = prov.EnsureAvailable(ctx); err != nil {
			wrapFatalln("failed to provision the texture packer", err)
			return
		}
		infoLogger.Printf("texture packer downloaded to %s", prov.JarPath())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addForceFlag(fetchCmd)
}
