// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/texpack/pkg/config"
	"github.com/oneconcern/texpack/pkg/dlogger"
	"github.com/oneconcern/texpack/pkg/provision"
	"github.com/oneconcern/texpack/pkg/runner"
)

type flagsT struct {
	root struct {
		config             string
		logLevel           string
		logFormat          string
		vendorDir          string
		sourceURL          string
		s3Region           string
		java               string
		ignorePackFailures bool
		concurrency        int
		cpuProf            bool
	}
	fetch struct {
		force bool
	}
	doc struct {
		docTarget string
	}
}

var texpackFlags = flagsT{}

const (
	configFlag             = "config"
	logLevelFlag           = "loglevel"
	logFormatFlag          = "log-format"
	vendorDirFlag          = "vendor-dir"
	sourceURLFlag          = "source-url"
	s3RegionFlag           = "s3-region"
	javaFlag               = "java"
	ignorePackFailuresFlag = "ignore-pack-failures"
	concurrencyFlag        = "concurrency"
)

func addConfigFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.config, configFlag, config.DefaultPath,
		"The job configuration file. It is created with a sample packing job when missing")
	return configFlag
}

func addLogLevel(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.logLevel, logLevelFlag, dlogger.LogLevelInfo,
		"The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return logLevelFlag
}

func addLogFormat(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.logFormat, logFormatFlag, dlogger.EncodingConsole,
		"The format of log lines: console or json")
	return logFormatFlag
}

func addVendorDirFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.vendorDir, vendorDirFlag, "",
		"The directory holding the runnable texture packer (defaults to the vendor directory next to the texpack executable)")
	return vendorDirFlag
}

func addSourceURLFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.sourceURL, sourceURLFlag, provision.DefaultSourceURL,
		"Where to download the runnable texture packer from (https:// or s3://bucket/key)")
	return sourceURLFlag
}

func addS3RegionFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.s3Region, s3RegionFlag, provision.DefaultS3Region,
		"The region of the bucket, when downloading from an s3:// source")
	return s3RegionFlag
}

func addJavaFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().StringVar(&texpackFlags.root.java, javaFlag, runner.DefaultRuntime,
		"The java runtime used to run the texture packer")
	return javaFlag
}

func addIgnorePackFailuresFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().BoolVar(&texpackFlags.root.ignorePackFailures, ignorePackFailuresFlag, false,
		"Report failed packing jobs without failing the run")
	return ignorePackFailuresFlag
}

func addConcurrencyFlag(cmd *cobra.Command) string {
	cmd.PersistentFlags().IntVar(&texpackFlags.root.concurrency, concurrencyFlag, 0,
		"Maximum number of jobs running at the same time within a phase (0: no limit)")
	return concurrencyFlag
}

func addCPUProfFlag(cmd *cobra.Command) string {
	c := "cpuprof"
	cmd.PersistentFlags().BoolVar(&texpackFlags.root.cpuProf, c, false, "Writes a cpu profile to cpu.prof in the current directory")
	return c
}

func addForceFlag(cmd *cobra.Command) string {
	c := "force"
	cmd.Flags().BoolVar(&texpackFlags.fetch.force, c, false, "Download the texture packer again, even when already provisioned")
	return c
}

func addTargetFlag(cmd *cobra.Command) string {
	c := "target-dir"
	cmd.Flags().StringVar(&texpackFlags.doc.docTarget, c, ".", "The target directory where to generate the markdown documentation")
	return c
}
