package main

import (
	"fmt"
	"os"

	"github.com/eurium-labs/eurium-contract/deploy"
	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) deployCommand() *cobra.Command {
	var artifacts string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Compile and deploy ledger, reserve manager and treasury contracts",
		Long: `Compiles contracts found in the configured contracts directory and deploys
them from the wallet account. Contracts already deployed by the account are
skipped, so the command may be repeated after a failure. With --artifacts
contracts previously written by the compile command are deployed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			contracts, err := a.contracts(artifacts)
			if err != nil {
				return err
			}

			b, err := dialNode(ctx, a.cfg, true)
			if err != nil {
				return err
			}
			defer b.close()

			res, err := deploy.Deploy(ctx, deploy.Prm{
				Logger:     a.log,
				Blockchain: b.rpc,
				Actor:      b.actor,
				Contracts:  contracts,
				Roles: deploy.Roles{
					Admin:      a.cfg.Roles.Admin,
					Pauser:     a.cfg.Roles.Pauser,
					Minter:     a.cfg.Roles.Minter,
					Upgrader:   a.cfg.Roles.Upgrader,
					Auditor:    a.cfg.Roles.Auditor,
					Manager:    a.cfg.Roles.Manager,
					Withdrawer: a.cfg.Roles.Withdrawer,
				},
				Limits: deploy.Limits{
					MaxSupply:            a.cfg.Limits.MaxSupply,
					DailyMintLimit:       a.cfg.Limits.DailyMintLimit,
					DailyWithdrawalLimit: a.cfg.Limits.DailyWithdrawalLimit,
				},
			})
			if err != nil {
				return fmt.Errorf("deploy: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ledger:          %s (%s)\n", address.Uint160ToString(res.Ledger), res.Ledger.StringLE())
			fmt.Fprintf(out, "reserve manager: %s (%s)\n", address.Uint160ToString(res.ReserveManager), res.ReserveManager.StringLE())
			fmt.Fprintf(out, "treasury:        %s (%s)\n", address.Uint160ToString(res.Treasury), res.Treasury.StringLE())

			return nil
		},
	}
	cmd.Flags().StringVar(&artifacts, "artifacts", "", "Directory with compiled contracts")

	return cmd
}

func (a *app) compileCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile contracts and store NEF files and manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contracts, err := a.contracts("")
			if err != nil {
				return err
			}

			err = deploy.WriteAll(outDir, contracts)
			if err != nil {
				return err
			}

			for name, c := range map[string]deploy.CommonDeployPrm{
				deploy.LedgerDir:         contracts.Ledger,
				deploy.ReserveManagerDir: contracts.ReserveManager,
				deploy.TreasuryDir:       contracts.Treasury,
			} {
				a.log.Info("contract compiled",
					zap.String("contract", name),
					zap.String("script", amount.Bytes(len(c.NEF.Script))))
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "build", "Output directory")

	return cmd
}

// contracts compiles contracts from the configured sources or reads them
// from the artifacts directory if it's set.
func (a *app) contracts(artifacts string) (deploy.Contracts, error) {
	if artifacts != "" {
		a.log.Info("reading compiled contracts", zap.String("dir", artifacts))
		return deploy.ReadAll(os.DirFS(artifacts))
	}

	a.log.Info("compiling contracts", zap.String("dir", a.cfg.ContractsDir))

	return deploy.CompileAll(a.cfg.ContractsDir)
}
