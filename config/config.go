// Package config reads settings of the Eurium tooling from a YAML file and
// EURIUM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/viper"
)

var (
	ErrNoRPCEndpoint    = errors.New("rpc endpoint is not defined")
	ErrNoWallet         = errors.New("wallet path is not defined")
	ErrNoDatabase       = errors.New("indexer database uri is not defined")
	ErrMissingContract  = errors.New("contract address is not defined")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidInterval  = errors.New("invalid time interval")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrInvalidLogLevel  = errors.New("log level must be one of 'debug', 'info', 'warn' or 'error'")
	ErrInvalidRoleOwner = errors.New("invalid role holder")
)

// Wallet describes the signing account.
type Wallet struct {
	Path     string
	Address  string
	Password string
}

// Contracts groups addresses of the deployed contracts. Zero values mean
// the contract is not deployed yet.
type Contracts struct {
	Ledger         util.Uint160
	ReserveManager util.Uint160
	Treasury       util.Uint160
}

// Roles groups initial role holders of the deployment.
type Roles struct {
	Admin      util.Uint160
	Pauser     util.Uint160
	Minter     util.Uint160
	Upgrader   util.Uint160
	Auditor    util.Uint160
	Manager    util.Uint160
	Withdrawer util.Uint160
}

// Limits groups supply cap and daily limits in base units. Nil values select
// contract defaults.
type Limits struct {
	MaxSupply            *big.Int
	DailyMintLimit       *big.Int
	DailyWithdrawalLimit *big.Int
}

// Indexer groups settings of the event indexer.
type Indexer struct {
	DatabaseURI string
	StartHeight uint32
	Interval    time.Duration
	Listen      string
}

// Config is the processed configuration.
type Config struct {
	LogLevel     string
	RPCEndpoint  string
	Timeout      time.Duration
	ContractsDir string

	Wallet    Wallet
	Contracts Contracts
	Roles     Roles
	Limits    Limits
	Indexer   Indexer
}

// Defaults.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultIndexerInterval = 5 * time.Second
	DefaultListen          = ":8090"
	DefaultContractsDir    = "contracts"
)

// Load reads configuration from the file and environment. Empty path reads
// environment only. Environment variables are named after keys, e.g.
// EURIUM_RPC_ENDPOINT or EURIUM_INDEXER_DB_URI.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("eurium")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("contracts_dir", DefaultContractsDir)
	v.SetDefault("indexer.interval", DefaultIndexerInterval.String())
	v.SetDefault("indexer.listen", DefaultListen)

	// AutomaticEnv applies only to known keys.
	for _, k := range []string{
		"rpc_endpoint", "wallet.path", "wallet.address", "wallet.password",
		"contracts.ledger", "contracts.reserve_manager", "contracts.treasury",
		"roles.admin", "roles.pauser", "roles.minter", "roles.upgrader",
		"roles.auditor", "roles.manager", "roles.withdrawer",
		"limits.max_supply", "limits.daily_mint", "limits.daily_withdrawal",
		"indexer.db_uri", "indexer.start_height",
	} {
		v.SetDefault(k, "")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return parse(v)
}

func parse(v *viper.Viper) (*Config, error) {
	var (
		c   Config
		err error
	)

	c.LogLevel = strings.ToLower(strings.TrimSpace(v.GetString("log_level")))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, ErrInvalidLogLevel
	}

	c.RPCEndpoint = strings.TrimRight(strings.TrimSpace(v.GetString("rpc_endpoint")), "/")
	c.ContractsDir = strings.TrimSpace(v.GetString("contracts_dir"))

	c.Timeout, err = time.ParseDuration(v.GetString("timeout"))
	if err != nil || c.Timeout <= 0 {
		return nil, ErrInvalidTimeout
	}

	c.Wallet = Wallet{
		Path:     strings.TrimSpace(v.GetString("wallet.path")),
		Address:  strings.TrimSpace(v.GetString("wallet.address")),
		Password: v.GetString("wallet.password"),
	}

	for _, f := range []struct {
		key string
		dst *util.Uint160
		err error
	}{
		{"contracts.ledger", &c.Contracts.Ledger, ErrInvalidAddress},
		{"contracts.reserve_manager", &c.Contracts.ReserveManager, ErrInvalidAddress},
		{"contracts.treasury", &c.Contracts.Treasury, ErrInvalidAddress},
		{"roles.admin", &c.Roles.Admin, ErrInvalidRoleOwner},
		{"roles.pauser", &c.Roles.Pauser, ErrInvalidRoleOwner},
		{"roles.minter", &c.Roles.Minter, ErrInvalidRoleOwner},
		{"roles.upgrader", &c.Roles.Upgrader, ErrInvalidRoleOwner},
		{"roles.auditor", &c.Roles.Auditor, ErrInvalidRoleOwner},
		{"roles.manager", &c.Roles.Manager, ErrInvalidRoleOwner},
		{"roles.withdrawer", &c.Roles.Withdrawer, ErrInvalidRoleOwner},
	} {
		*f.dst, err = ParseAddress(v.GetString(f.key))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", f.err, f.key)
		}
	}

	for _, f := range []struct {
		key      string
		dst      **big.Int
		decimals int
	}{
		{"limits.max_supply", &c.Limits.MaxSupply, amount.Decimals},
		{"limits.daily_mint", &c.Limits.DailyMintLimit, amount.Decimals},
		{"limits.daily_withdrawal", &c.Limits.DailyWithdrawalLimit, amount.GASDecimals},
	} {
		s := strings.TrimSpace(v.GetString(f.key))
		if s == "" {
			continue
		}
		*f.dst, err = amount.Parse(s, f.decimals)
		if err != nil || (*f.dst).Sign() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, f.key)
		}
	}

	c.Indexer.DatabaseURI = strings.TrimSpace(v.GetString("indexer.db_uri"))
	c.Indexer.Listen = strings.TrimSpace(v.GetString("indexer.listen"))
	c.Indexer.StartHeight = v.GetUint32("indexer.start_height")
	c.Indexer.Interval, err = time.ParseDuration(v.GetString("indexer.interval"))
	if err != nil || c.Indexer.Interval <= 0 {
		return nil, ErrInvalidInterval
	}

	return &c, nil
}

// ParseAddress parses Neo address or little-endian script hash. Empty string
// gives zero hash.
func ParseAddress(s string) (util.Uint160, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return util.Uint160{}, nil
	}

	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}

	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}

// CheckNode returns an error if the RPC endpoint is missing.
func (c *Config) CheckNode() error {
	if c.RPCEndpoint == "" {
		return ErrNoRPCEndpoint
	}

	return nil
}

// CheckSigner returns an error if the node or the wallet is missing.
func (c *Config) CheckSigner() error {
	if err := c.CheckNode(); err != nil {
		return err
	}
	if c.Wallet.Path == "" {
		return ErrNoWallet
	}

	return nil
}

// CheckContracts returns an error if some contract address is missing.
func (c *Config) CheckContracts() error {
	var zero util.Uint160

	switch {
	case c.Contracts.Ledger == zero:
		return fmt.Errorf("%w: ledger", ErrMissingContract)
	case c.Contracts.ReserveManager == zero:
		return fmt.Errorf("%w: reserve manager", ErrMissingContract)
	case c.Contracts.Treasury == zero:
		return fmt.Errorf("%w: treasury", ErrMissingContract)
	}

	return nil
}

// CheckIndexer returns an error if indexer can't be started.
func (c *Config) CheckIndexer() error {
	if err := c.CheckNode(); err != nil {
		return err
	}
	if err := c.CheckContracts(); err != nil {
		return err
	}
	if c.Indexer.DatabaseURI == "" {
		return ErrNoDatabase
	}

	return nil
}
