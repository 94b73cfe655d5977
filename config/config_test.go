package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const testConfig = `
log_level: debug
rpc_endpoint: http://localhost:30333/
timeout: 10s
wallet:
  path: /etc/eurium/wallet.json
  address: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
contracts:
  ledger: "0x0102030405060708090a0b0c0d0e0f1011121314"
  reserve_manager: "1112131415161718191a1b1c1d1e1f2021222324"
  treasury: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
roles:
  admin: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
limits:
  max_supply: "1000000000"
  daily_mint: 1,000,000.5
  daily_withdrawal: "1000"
indexer:
  db_uri: postgres://eurium@localhost/eurium?sslmode=disable
  start_height: 42
  interval: 1s
`

func writeConfig(t *testing.T, data string) string {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	admin, err := address.StringToUint160("NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP")
	require.NoError(t, err)

	require.Equal(t, "debug", c.LogLevel)
	require.Equal(t, "http://localhost:30333", c.RPCEndpoint)
	require.Equal(t, 10*time.Second, c.Timeout)
	require.Equal(t, DefaultContractsDir, c.ContractsDir)
	require.Equal(t, "/etc/eurium/wallet.json", c.Wallet.Path)

	ledger, err := util.Uint160DecodeStringLE("0102030405060708090a0b0c0d0e0f1011121314")
	require.NoError(t, err)
	require.Equal(t, ledger, c.Contracts.Ledger)
	require.Equal(t, admin, c.Contracts.Treasury)
	require.Equal(t, admin, c.Roles.Admin)
	require.Equal(t, util.Uint160{}, c.Roles.Pauser)

	require.Equal(t, "1000000000000000000000000000", c.Limits.MaxSupply.String())
	require.Equal(t, "1000000500000000000000000", c.Limits.DailyMintLimit.String())
	require.Equal(t, "100000000000", c.Limits.DailyWithdrawalLimit.String())

	require.Equal(t, uint32(42), c.Indexer.StartHeight)
	require.Equal(t, time.Second, c.Indexer.Interval)
	require.Equal(t, DefaultListen, c.Indexer.Listen)

	require.NoError(t, c.CheckSigner())
	require.NoError(t, c.CheckContracts())
	require.NoError(t, c.CheckIndexer())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("EURIUM_RPC_ENDPOINT", "http://node:30333")
	t.Setenv("EURIUM_WALLET_PATH", "/tmp/w.json")
	t.Setenv("EURIUM_LIMITS_DAILY_MINT", "5")
	t.Setenv("EURIUM_INDEXER_LISTEN", ":9000")

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://node:30333", c.RPCEndpoint)
	require.Equal(t, "/tmp/w.json", c.Wallet.Path)
	require.Equal(t, "5000000000000000000", c.Limits.DailyMintLimit.String())
	require.Nil(t, c.Limits.MaxSupply)
	require.Equal(t, ":9000", c.Indexer.Listen)
	require.Equal(t, DefaultIndexerInterval, c.Indexer.Interval)
	require.Equal(t, DefaultTimeout, c.Timeout)

	require.NoError(t, c.CheckSigner())
	require.ErrorIs(t, c.CheckContracts(), ErrMissingContract)
	require.ErrorIs(t, c.CheckIndexer(), ErrMissingContract)

	// Environment overrides the file.
	c, err = Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	require.Equal(t, "http://node:30333", c.RPCEndpoint)
}

func TestLoadErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		data string
		err  error
	}{
		"log level":        {"log_level: trace", ErrInvalidLogLevel},
		"timeout":          {"timeout: soon", ErrInvalidTimeout},
		"negative timeout": {"timeout: -1s", ErrInvalidTimeout},
		"contract":         {"contracts:\n  ledger: nope", ErrInvalidAddress},
		"role":             {"roles:\n  minter: 0x01", ErrInvalidRoleOwner},
		"amount":           {"limits:\n  max_supply: lots", ErrInvalidAmount},
		"zero amount":      {"limits:\n  daily_mint: 0", ErrInvalidAmount},
		"precision":        {"limits:\n  daily_withdrawal: 0.000000001", ErrInvalidAmount},
		"interval":         {"indexer:\n  interval: 0s", ErrInvalidInterval},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.data))
			require.ErrorIs(t, err, tc.err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestChecks(t *testing.T) {
	c := &Config{}
	require.ErrorIs(t, c.CheckNode(), ErrNoRPCEndpoint)
	require.ErrorIs(t, c.CheckSigner(), ErrNoRPCEndpoint)

	c.RPCEndpoint = "http://localhost:30333"
	require.ErrorIs(t, c.CheckSigner(), ErrNoWallet)

	c.Contracts = Contracts{Ledger: util.Uint160{1}, ReserveManager: util.Uint160{2}, Treasury: util.Uint160{3}}
	require.ErrorIs(t, c.CheckIndexer(), ErrNoDatabase)
}
