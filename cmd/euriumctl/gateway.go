package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/eurium-labs/eurium-contract/attest"
	"github.com/eurium-labs/eurium-contract/config"
	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/eurium-labs/eurium-contract/rpc/reservemanager"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) mintCommand() *cobra.Command {
	var to, value, authorization string

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint EUI through the reserve manager against a fiat deposit",
		Long: `Mints EUI through the reserve manager within its daily limit. The
authorization reference (e.g. bank transfer ID) is hashed into the
authorization ID, so the same deposit can't be minted twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipient, err := config.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("%w: %s", config.ErrInvalidAddress, to)
			}
			v, err := amount.Parse(value, amount.Decimals)
			if err != nil || v.Sign() == 0 {
				return fmt.Errorf("%w: %s", config.ErrInvalidAmount, value)
			}
			authID := attest.ID(authorization)

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			gateway := reservemanager.New(b.actor, a.cfg.Contracts.ReserveManager)

			used, err := gateway.IsAuthorizationUsed(authID)
			if err != nil {
				return fmt.Errorf("check authorization: %w", err)
			}
			if used {
				return fmt.Errorf("authorization %q is already used", authorization)
			}

			log, err := b.wait(gateway.AuthorizeAndMint(recipient, v, authID))
			if err != nil {
				return fmt.Errorf("authorize and mint: %w", err)
			}

			events, err := reservemanager.AuthorizedMintEventsFromApplicationLog(log)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return errNoEvent
			}

			a.log.Info("minted",
				zap.String("to", address.Uint160ToString(events[0].To)),
				zap.String("amount", amount.Format(events[0].Amount, amount.Decimals)),
				zap.Stringer("authorization", events[0].AuthorizationID),
				zap.Stringer("tx", log.Container))

			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&value, "amount", "", "Amount of EUI, e.g. 1000")
	cmd.Flags().StringVar(&authorization, "authorization", "", "Unique reference of the backing deposit")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("authorization")

	return cmd
}

func (a *app) custodianCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custodian",
		Short: "Manage reserve custodians",
	}

	add := &cobra.Command{
		Use:   "add <name> <address>",
		Short: "Register a new active custodian",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := config.ParseAddress(args[1])
			if err != nil {
				return fmt.Errorf("%w: %s", config.ErrInvalidAddress, args[1])
			}

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			log, err := b.wait(reservemanager.New(b.actor, a.cfg.Contracts.ReserveManager).AddCustodian(args[0], addr))
			if err != nil {
				return fmt.Errorf("add custodian: %w", err)
			}

			events, err := reservemanager.CustodianAddedEventsFromApplicationLog(log)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return errNoEvent
			}

			fmt.Fprintf(cmd.OutOrStdout(), "custodian #%s: %s\n", events[0].Index, events[0].Name)

			return nil
		},
	}

	var active bool

	status := &cobra.Command{
		Use:   "status <index>",
		Short: "Activate or deactivate a custodian",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid custodian index %q", args[0])
			}

			b, err := a.signer(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			gateway := reservemanager.New(b.actor, a.cfg.Contracts.ReserveManager)

			log, err := b.wait(gateway.UpdateCustodianStatus(new(big.Int).SetUint64(index), active))
			if err != nil {
				return fmt.Errorf("update custodian status: %w", err)
			}

			a.log.Info("custodian updated",
				zap.Uint64("index", index),
				zap.Bool("active", active),
				zap.Stringer("tx", log.Container))

			return nil
		},
	}
	status.Flags().BoolVar(&active, "active", true, "New custodian status")

	cmd.AddCommand(add, status)

	return cmd
}
