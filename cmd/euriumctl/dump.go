package main

import (
	"encoding/hex"
	"fmt"

	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "dump <ledger|reserve-manager|treasury>",
		Short:     "Print raw storage of the contract at the latest state root",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"ledger", "reserve-manager", "treasury"},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.reader(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			var contract util.Uint160
			switch args[0] {
			case "ledger":
				contract = a.cfg.Contracts.Ledger
			case "reserve-manager":
				contract = a.cfg.Contracts.ReserveManager
			case "treasury":
				contract = a.cfg.Contracts.Treasury
			}

			var items, size int
			out := cmd.OutOrStdout()

			err = b.iterateContractStorage(contract, func(key, value []byte) error {
				items++
				size += len(key) + len(value)
				_, err := fmt.Fprintf(out, "%s %s\n", hex.EncodeToString(key), hex.EncodeToString(value))
				return err
			})
			if err != nil {
				return fmt.Errorf("iterate storage: %w", err)
			}

			a.log.Debug("storage dumped",
				zap.String("contract", args[0]),
				zap.Int("items", items),
				zap.String("size", amount.Bytes(size)))

			return nil
		},
	}
}
