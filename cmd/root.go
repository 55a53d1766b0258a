package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/visit-booker/internal/config"
	"github.com/example/visit-booker/internal/pvapi"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "visitbooker",
		Short: "Book prison-visit time slots against the remote booking service",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newPrisonsCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newVisitCmd())
	root.AddCommand(newCancelCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAPI wires config, logger and client for one command invocation.
func newAPI() (*pvapi.API, config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, cfg, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, cfg, err
	}
	client := pvapi.NewClient(cfg.APIHost, cfg.RequestTimeout, logger)
	return pvapi.NewAPI(client), cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.DevMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
