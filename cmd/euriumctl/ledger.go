package main

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/eurium-labs/eurium-contract/config"
	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/eurium-labs/eurium-contract/rpc/eurium"
	"github.com/eurium-labs/eurium-contract/rpc/reservemanager"
	"github.com/eurium-labs/eurium-contract/rpc/treasury"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoEvent = errors.New("transaction has no expected event")

func (a *app) statusCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print state of the deployed contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.reader(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			var (
				ledger  = eurium.NewReader(b.invoker, a.cfg.Contracts.Ledger)
				gateway = reservemanager.NewReader(b.invoker, a.cfg.Contracts.ReserveManager)
				vault   = treasury.NewReader(b.invoker, a.cfg.Contracts.Treasury)
				out     = cmd.OutOrStdout()
			)

			supply, err := ledger.TotalSupply()
			if err != nil {
				return fmt.Errorf("total supply: %w", err)
			}
			maxSupply, err := ledger.MaxSupply()
			if err != nil {
				return fmt.Errorf("max supply: %w", err)
			}
			paused, err := ledger.Paused()
			if err != nil {
				return fmt.Errorf("paused: %w", err)
			}
			redemptions, err := ledger.GetRedemptionCount()
			if err != nil {
				return fmt.Errorf("redemption count: %w", err)
			}
			snapshot, err := ledger.GetCurrentSnapshotID()
			if err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}

			fmt.Fprintf(out, "supply:       %s / %s EUI\n", amount.Format(supply, amount.Decimals), amount.Format(maxSupply, amount.Decimals))
			fmt.Fprintf(out, "paused:       %t\n", paused)
			fmt.Fprintf(out, "redemptions:  %s\n", redemptions)
			fmt.Fprintf(out, "snapshot:     %s\n", snapshot)

			root, ok, err := ledger.CurrentReserveRoot()
			if err != nil {
				return fmt.Errorf("reserve root: %w", err)
			}
			if ok {
				ts, err := ledger.LastReserveUpdate()
				if err != nil {
					return fmt.Errorf("reserve update time: %w", err)
				}
				fmt.Fprintf(out, "reserve root: %s (%s)\n", root.StringBE(),
					time.UnixMilli(ts.Int64()).UTC().Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "reserve root: none")
			}

			mintLimit, err := gateway.DailyMintLimit()
			if err != nil {
				return fmt.Errorf("daily mint limit: %w", err)
			}
			mintLeft, err := gateway.RemainingDailyMint()
			if err != nil {
				return fmt.Errorf("remaining daily mint: %w", err)
			}
			custodians, err := gateway.ListCustodians()
			if err != nil {
				return fmt.Errorf("custodians: %w", err)
			}

			fmt.Fprintf(out, "daily mint:   %s of %s EUI left\n", amount.Format(mintLeft, amount.Decimals), amount.Format(mintLimit, amount.Decimals))
			for i, c := range custodians {
				fmt.Fprintf(out, "custodian #%d: %s %s active=%t\n", i, c.Name, address.Uint160ToString(c.Address), c.Active)
			}

			gas, err := vault.GetBalance(treasury.NativeAsset)
			if err != nil {
				return fmt.Errorf("treasury balance: %w", err)
			}
			withdrawLeft, err := vault.RemainingDailyWithdrawal()
			if err != nil {
				return fmt.Errorf("remaining daily withdrawal: %w", err)
			}

			fmt.Fprintf(out, "treasury:     %s GAS, %s GAS withdrawable today\n", amount.Format(gas, amount.GASDecimals), amount.Format(withdrawLeft, amount.GASDecimals))

			if account != "" {
				acc, err := config.ParseAddress(account)
				if err != nil {
					return fmt.Errorf("%w: %s", config.ErrInvalidAddress, account)
				}

				bal, err := ledger.BalanceOf(acc)
				if err != nil {
					return fmt.Errorf("balance: %w", err)
				}

				fmt.Fprintf(out, "balance:      %s EUI\n", amount.Format(bal, amount.Decimals))
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Also print EUI balance of the account")

	return cmd
}

// ledgerCall returns a command sending a single ledger transaction without
// arguments.
func (a *app) ledgerCall(use, short string, send func(*remoteBlockchain, *eurium.Contract) (*result.ApplicationLog, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			log, err := send(b, eurium.New(b.actor, a.cfg.Contracts.Ledger))
			if err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}

			a.log.Info("transaction accepted", zap.String("method", use), zap.Stringer("tx", log.Container))

			return nil
		},
	}
}

func (a *app) pauseCommand() *cobra.Command {
	return a.ledgerCall("pause", "Stop transfers, minting and burning", func(b *remoteBlockchain, c *eurium.Contract) (*result.ApplicationLog, error) {
		return b.wait(c.Pause())
	})
}

func (a *app) unpauseCommand() *cobra.Command {
	return a.ledgerCall("unpause", "Resume transfers, minting and burning", func(b *remoteBlockchain, c *eurium.Contract) (*result.ApplicationLog, error) {
		return b.wait(c.Unpause())
	})
}

func (a *app) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record balances and supply under a new snapshot ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			log, err := b.wait(eurium.New(b.actor, a.cfg.Contracts.Ledger).Snapshot())
			if err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}

			events, err := eurium.SnapshotEventsFromApplicationLog(log)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return errNoEvent
			}

			fmt.Fprintf(cmd.OutOrStdout(), "snapshot: %s\n", events[0].ID)

			return nil
		},
	}

	return cmd
}

func (a *app) redeemCommand() *cobra.Command {
	var value, reference string

	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Escrow EUI of the wallet account for off-chain redemption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := amount.Parse(value, amount.Decimals)
			if err != nil || v.Sign() == 0 {
				return fmt.Errorf("%w: %s", config.ErrInvalidAmount, value)
			}
			if reference == "" {
				reference = "RED-" + uuid.NewString()
			}

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			ledger := eurium.New(b.actor, a.cfg.Contracts.Ledger)

			log, err := b.wait(ledger.RedeemRequest(b.actor.Sender(), v, reference))
			if err != nil {
				return fmt.Errorf("redeem request: %w", err)
			}

			events, err := eurium.RedemptionRequestedEventsFromApplicationLog(log)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return errNoEvent
			}

			fmt.Fprintf(cmd.OutOrStdout(), "redemption %s: %s EUI, reference %s\n",
				events[0].InternalID, amount.Format(events[0].Amount, amount.Decimals), events[0].ExternalReference)

			return nil
		},
	}
	cmd.Flags().StringVar(&value, "amount", "", "Amount of EUI, e.g. 100.5")
	cmd.Flags().StringVar(&reference, "reference", "", "External reference (random if empty)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (a *app) cancelCommand() *cobra.Command {
	return a.settleCommand("cancel", "Return escrowed EUI of a pending redemption to the requester",
		func(b *remoteBlockchain, c *eurium.Contract, id *big.Int) (*result.ApplicationLog, error) {
			return b.wait(c.CancelRedemption(id))
		})
}

func (a *app) finalizeCommand() *cobra.Command {
	return a.settleCommand("finalize", "Burn escrowed EUI of a pending redemption after the payout",
		func(b *remoteBlockchain, c *eurium.Contract, id *big.Int) (*result.ApplicationLog, error) {
			return b.wait(c.FinalizeRedemption(id))
		})
}

func (a *app) settleCommand(use, short string, send func(*remoteBlockchain, *eurium.Contract, *big.Int) (*result.ApplicationLog, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := new(big.Int).SetString(args[0], 10)
			if !ok || id.Sign() <= 0 {
				return fmt.Errorf("invalid redemption ID %q", args[0])
			}

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			log, err := send(b, eurium.New(b.actor, a.cfg.Contracts.Ledger), id)
			if err != nil {
				return fmt.Errorf("%s redemption %s: %w", use, id, err)
			}

			a.log.Info("redemption settled",
				zap.String("action", use),
				zap.Stringer("id", id),
				zap.Stringer("tx", log.Container))

			return nil
		},
	}
}
