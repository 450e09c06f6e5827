package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates a sample job configuration",
	Long: `Creates the job configuration file with a sample packing job, unless it already exists.

The sample packs the images found in ./input into ./output/packed.atlas.
An existing job configuration is never modified.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := settings.jobStore()
		created, err := store.Initialize(context.Background())
		if err != nil {
			wrapFatalln("failed to create job configuration", err)
			return
		}
		if !created {
			infoLogger.Printf("job configuration %s already exists", store.Path())
			return
		}
		infoLogger.Printf("created job configuration %s", store.Path())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
