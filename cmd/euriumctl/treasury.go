package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/eurium-labs/eurium-contract/config"
	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/eurium-labs/eurium-contract/rpc/treasury"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) withdrawCommand() *cobra.Command {
	var (
		asset, to, value string
		decimals         int
		emergency        bool
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw assets from the treasury",
		Long: `Withdraws assets from the treasury within its daily limit. With --emergency
the limit is bypassed; the wallet account must be the treasury admin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := parseAsset(asset)
			if err != nil {
				return err
			}
			recipient, err := config.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("%w: %s", config.ErrInvalidAddress, to)
			}
			v, err := amount.Parse(value, decimals)
			if err != nil || v.Sign() == 0 {
				return fmt.Errorf("%w: %s", config.ErrInvalidAmount, value)
			}

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			vault := treasury.New(b.actor, a.cfg.Contracts.Treasury)

			withdraw := vault.Withdraw
			if emergency {
				withdraw = vault.EmergencyWithdraw
			}

			log, err := b.wait(withdraw(token, recipient, v))
			if err != nil {
				return fmt.Errorf("withdraw: %w", err)
			}

			var moved *big.Int
			if emergency {
				events, err := treasury.EmergencyWithdrawalEventsFromApplicationLog(log)
				if err != nil {
					return err
				}
				if len(events) > 0 {
					moved = events[0].Amount
				}
			} else {
				events, err := treasury.WithdrawalEventsFromApplicationLog(log)
				if err != nil {
					return err
				}
				if len(events) > 0 {
					moved = events[0].Amount
				}
			}
			if moved == nil {
				return errNoEvent
			}

			a.log.Info("withdrawn",
				zap.Bool("emergency", emergency),
				zap.String("to", address.Uint160ToString(recipient)),
				zap.String("amount", amount.Format(moved, decimals)),
				zap.Stringer("tx", log.Container))

			return nil
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "gas", "Asset contract address or 'gas'")
	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&value, "amount", "", "Amount, e.g. 12.5")
	cmd.Flags().IntVar(&decimals, "decimals", amount.GASDecimals, "Decimals of the asset")
	cmd.Flags().BoolVar(&emergency, "emergency", false, "Bypass the daily limit")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func parseAsset(s string) (util.Uint160, error) {
	if strings.EqualFold(s, "gas") {
		return treasury.NativeAsset, nil
	}

	h, err := config.ParseAddress(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w: asset %s", config.ErrInvalidAddress, s)
	}

	return h, nil
}
