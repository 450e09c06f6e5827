package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oneconcern/texpack/pkg/config"
	"github.com/oneconcern/texpack/pkg/core"
	"github.com/oneconcern/texpack/pkg/dlogger"
	"github.com/oneconcern/texpack/pkg/provision"
	"github.com/oneconcern/texpack/pkg/runner"
)

// CLIConfig describes the CLI configuration.
//
// Values come from flags, TEXPACK_* environment variables or the texpack.yaml settings file, in that order.
type CLIConfig struct {
	Config             string `json:"config" yaml:"config" mapstructure:"config"`                                           // Job configuration file
	LogLevel           string `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`                                     // Logging level
	LogFormat          string `json:"log-format" yaml:"log-format" mapstructure:"log-format"`                               // Encoding of log lines
	VendorDir          string `json:"vendor-dir" yaml:"vendor-dir" mapstructure:"vendor-dir"`                               // Where the packer is provisioned
	SourceURL          string `json:"source-url" yaml:"source-url" mapstructure:"source-url"`                               // Where the packer is downloaded from
	S3Region           string `json:"s3-region" yaml:"s3-region" mapstructure:"s3-region"`                                  // Region of an s3:// source
	Java               string `json:"java" yaml:"java" mapstructure:"java"`                                                 // Java runtime
	IgnorePackFailures bool   `json:"ignore-pack-failures" yaml:"ignore-pack-failures" mapstructure:"ignore-pack-failures"` // Do not fail on packing errors
	Concurrency        int    `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`                            // Max jobs in flight per phase
}

func newConfig() (*CLIConfig, error) {
	var cfg CLIConfig
	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *CLIConfig) logger() (*zap.Logger, error) {
	return dlogger.GetLoggerWithEncoding(c.LogLevel, c.LogFormat)
}

func (c *CLIConfig) jobStore() *config.Store {
	return config.New(afero.NewOsFs(), c.Config)
}

func (c *CLIConfig) provisioner(logger *zap.Logger) (*provision.Provisioner, error) {
	dir := c.VendorDir
	if dir == "" {
		var err error
		dir, err = provision.DefaultVendorDir()
		if err != nil {
			return nil, err
		}
	}
	fetcher, err := provision.NewFetcher(c.SourceURL, c.S3Region)
	if err != nil {
		return nil, err
	}
	return provision.New(dir,
		provision.WithFetcher(fetcher),
		provision.WithLogger(logger),
	), nil
}

func (c *CLIConfig) packFailurePolicy() core.PackFailurePolicy {
	if c.IgnorePackFailures {
		return core.IgnorePackFailures
	}
	return core.PropagatePackFailures
}

func (c *CLIConfig) orchestrator(logger *zap.Logger) (*core.Orchestrator, error) {
	prov, err := c.provisioner(logger)
	if err != nil {
		return nil, err
	}
	java := c.Java
	jobRunner := runner.New(prov.JarPath(),
		runner.WithRuntime(java),
		runner.WithLogger(logger),
	)
	return core.New(c.jobStore(), jobRunner,
		core.WithLogger(logger),
		core.WithProvisioner(prov),
		core.WithRuntimeCheck(func() error {
			_, err := runner.CheckRuntime(java)
			return err
		}),
		core.WithPackFailurePolicy(c.packFailurePolicy()),
		core.WithConcurrency(c.Concurrency),
	), nil
}
