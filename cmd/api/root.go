package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/md-abdullah-92/edurecords/internal/bootstrap"
	"github.com/md-abdullah-92/edurecords/internal/config"
	"github.com/md-abdullah-92/edurecords/internal/server"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version   = "dev"
	gitCommit = ""
)

// NewRootCmd creates the root command. Running it without a subcommand
// starts the HTTP server.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "edurecords",
		Short: "Academic records HTTP service",
		Long: `edurecords serves student information, semester results and
institution records over HTTP, and stores VDS creator and key
material registrations.

Running without a subcommand starts the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}
			return srv.Run()
		},
	}
	cmd.Version = versionString()

	cmd.PersistentFlags().StringVar(&cfgFile, "config",
		config.GetEnv("CONFIG_PATH", "configs/config.yaml"), "config file (optional; environment overrides it)")

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cfgFile)
			if err != nil {
				return err
			}
			return bootstrap.Migrate(cfg, lgr)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Load demo institution, student and result records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(cfgFile)
			if err != nil {
				return err
			}
			return bootstrap.Seed(cfg, lgr)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	})

	return cmd
}

func versionString() string {
	if gitCommit != "" {
		return version + " (" + gitCommit + ")"
	}
	return version
}
