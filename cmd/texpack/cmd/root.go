// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "texpack",
	Short: "texpack packs and unpacks texture atlases",
	Long: `texpack packs directories of images into texture atlases and unpacks atlases back into images.

The work is described by a job configuration file (packerConfig.json by default), which is created with a
sample packing job when missing. All unpacking jobs run first, in parallel, then all packing jobs, in parallel.

The jobs are carried out by the libGDX texture packer, a java program which is downloaded once into
a vendor directory. A java runtime must be available.
`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if texpackFlags.root.cpuProf {
			f, err := os.Create("cpu.prof")
			if err != nil {
				log.Fatal(err)
			}
			_ = pprof.StartCPUProfile(f)
		}
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if texpackFlags.root.cpuProf {
			pprof.StopCPUProfile()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := settings.logger()
		if err != nil {
			wrapFatalln("failed to set up logging", err)
			return
		}
		defer func() { _ = logger.Sync() }()

		orchestrator, err := settings.orchestrator(logger)
		if err != nil {
			wrapFatalln("failed to set up texpack", err)
			return
		}

		ctx, cancel := interruptibleContext()
		defer cancel()

		report, err := orchestrator.Run(ctx)
		printSummary(report)
		if err != nil {
			wrapFatalln("texpack run failed", err)
			return
		}
	},
}

var settings *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addConfigFlag(rootCmd)
	addLogLevel(rootCmd)
	addLogFormat(rootCmd)
	addVendorDirFlag(rootCmd)
	addSourceURLFlag(rootCmd)
	addS3RegionFlag(rootCmd)
	addJavaFlag(rootCmd)
	addIgnorePackFailuresFlag(rootCmd)
	addConcurrencyFlag(rootCmd)
	addCPUProfFlag(rootCmd)
}

// initConfig reads in the settings file and ENV variables if set.
func initConfig() {
	if os.Getenv("TEXPACK_SETTINGS") != "" {
		viper.SetConfigFile(os.Getenv("TEXPACK_SETTINGS"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.texpack")
		viper.SetConfigName("texpack")
	}

	viper.SetEnvPrefix("texpack")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		logFatalln(err)
		return
	}

	// If a settings file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using settings file:", viper.ConfigFileUsed())
	}

	var err error
	settings, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}
