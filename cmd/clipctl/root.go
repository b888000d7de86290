package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "clipctl",
		Short:         "ClipSmart command-line tools",
		Long:          "Classify clipboard text locally and manage the ClipSmart request-log database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or config.yml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newClassifyCommand(),
		newMigrateCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "clipctl version %s\n", version)
			},
		},
	)
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.GetConfigPath("config.yml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) logger(cfg *config.Config) (logger.Logger, error) {
	lc := cfg.Logging
	lc.OutputPaths = []string{"stderr"}
	if o.debug {
		lc.Level = "debug"
		lc.Development = true
	}
	return logger.New(lc)
}
