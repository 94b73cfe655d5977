package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eurium-labs/eurium-contract/common"
	"github.com/eurium-labs/eurium-contract/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries state shared by all commands. It is filled in the persistent
// pre-run hook of the root command.
type app struct {
	configPath string
	debug      bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:           "euriumctl",
		Short:         "Manage Eurium stablecoin contracts",
		Version:       fmt.Sprintf("%d.%d.%d", common.Major, common.Minor, common.Patch),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the YAML configuration file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		a.compileCommand(),
		a.deployCommand(),
		a.indexCommand(),
		a.attestCommand(),
		a.statusCommand(),
		a.pauseCommand(),
		a.unpauseCommand(),
		a.snapshotCommand(),
		a.redeemCommand(),
		a.cancelCommand(),
		a.finalizeCommand(),
		a.mintCommand(),
		a.custodianCommand(),
		a.withdrawCommand(),
		a.dumpCommand(),
	)

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %s", config.ErrInvalidLogLevel, cfg.LogLevel)
	}
	if a.debug {
		lvl = zapcore.DebugLevel
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.Encoding = "console"
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	a.log, err = logCfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.cfg = cfg

	return nil
}

// signer dials the node with the configured wallet account. All contract
// addresses must be configured.
func (a *app) signer(cmd *cobra.Command) (*remoteBlockchain, error) {
	if err := a.cfg.CheckContracts(); err != nil {
		return nil, err
	}

	return dialNode(cmd.Context(), a.cfg, true)
}

func (a *app) reader(cmd *cobra.Command) (*remoteBlockchain, error) {
	if err := a.cfg.CheckContracts(); err != nil {
		return nil, err
	}

	return dialNode(cmd.Context(), a.cfg, false)
}

// timeout bounds long-running deployment with the configured RPC timeout
// plus time for transactions to be accepted.
func (a *app) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.Timeout+time.Minute)
}
