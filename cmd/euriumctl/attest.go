package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/eurium-labs/eurium-contract/attest"
	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/eurium-labs/eurium-contract/rpc/eurium"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) attestCommand() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "attest",
		Short: "Build and publish reserve attestations",
	}
	cmd.PersistentFlags().StringVarP(&reportPath, "report", "r", "", "Path to the JSON reserve report")
	_ = cmd.MarkPersistentFlagRequired("report")

	var publish bool

	root := &cobra.Command{
		Use:   "root",
		Short: "Print Merkle root of the report and optionally publish it to the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := attest.LoadReport(reportPath)
			if err != nil {
				return err
			}

			root, err := r.Root()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "as of: %s\n", r.AsOf.UTC().Format("2006-01-02 15:04:05"))
			for _, asset := range assets(r) {
				fmt.Fprintf(out, "total %s: %s\n", asset, amount.Format(r.Total(asset), 0))
			}
			fmt.Fprintf(out, "root: %s\n", root.StringBE())

			if !publish {
				return nil
			}

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			log, err := b.wait(eurium.New(b.actor, a.cfg.Contracts.Ledger).UpdateReserveProof(root))
			if err != nil {
				return fmt.Errorf("update reserve proof: %w", err)
			}

			a.log.Info("reserve proof published",
				zap.Stringer("root", root),
				zap.Stringer("tx", log.Container))

			return nil
		},
	}
	root.Flags().BoolVar(&publish, "publish", false, "Send the root to the ledger contract")

	var custodian, asset string

	proof := &cobra.Command{
		Use:   "proof",
		Short: "Print inclusion proof of a single holding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := attest.LoadReport(reportPath)
			if err != nil {
				return err
			}

			var h *attest.Holding
			for i := range r.Holdings {
				if r.Holdings[i].Custodian == custodian && r.Holdings[i].Asset == asset {
					h = &r.Holdings[i]
					break
				}
			}
			if h == nil {
				return errors.New("holding is missing in the report")
			}

			path, err := r.Proof(*h)
			if err != nil {
				return err
			}

			root, err := r.Root()
			if err != nil {
				return err
			}
			if !attest.Verify(root, *h, path) {
				return errors.New("proof doesn't match the root")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "root: %s\n", root.StringBE())
			for _, p := range path {
				fmt.Fprintln(out, hex.EncodeToString(p[:]))
			}

			return nil
		},
	}
	proof.Flags().StringVar(&custodian, "custodian", "", "Custodian of the holding")
	proof.Flags().StringVar(&asset, "asset", "", "Asset of the holding")
	_ = proof.MarkFlagRequired("custodian")
	_ = proof.MarkFlagRequired("asset")

	cmd.AddCommand(root, proof)

	return cmd
}

// assets lists distinct assets in order of first appearance.
func assets(r attest.Report) []string {
	var (
		res  []string
		seen = make(map[string]struct{})
	)

	for _, h := range r.Holdings {
		if _, ok := seen[h.Asset]; !ok {
			seen[h.Asset] = struct{}{}
			res = append(res, h.Asset)
		}
	}

	return res
}
