package deploy

import (
	"fmt"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Contract directory names under the contracts source root.
const (
	LedgerDir         = "eurium"
	ReserveManagerDir = "reservemanager"
	TreasuryDir       = "treasury"
)

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      *nef.File
	Manifest *manifest.Manifest
}

// Hash returns address the contract gets when deployed by the sender.
func (c CommonDeployPrm) Hash(sender util.Uint160) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

// Compile compiles contract sources from the directory using config.yml
// lying next to them.
func Compile(dir string) (CommonDeployPrm, error) {
	ne, di, err := compiler.CompileWithOptions(dir, nil, nil)
	if err != nil {
		return CommonDeployPrm{}, fmt.Errorf("compile %s: %w", dir, err)
	}

	conf, err := smartcontract.ParseContractConfig(filepath.Join(dir, "config.yml"))
	if err != nil {
		return CommonDeployPrm{}, fmt.Errorf("parse config of %s: %w", dir, err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return CommonDeployPrm{}, fmt.Errorf("create manifest of %s: %w", dir, err)
	}

	return CommonDeployPrm{NEF: ne, Manifest: m}, nil
}

// CompileAll compiles ledger, reserve manager and treasury from the contracts
// source root.
func CompileAll(root string) (Contracts, error) {
	var (
		res Contracts
		err error
	)

	res.Ledger, err = Compile(filepath.Join(root, LedgerDir))
	if err != nil {
		return res, err
	}
	res.ReserveManager, err = Compile(filepath.Join(root, ReserveManagerDir))
	if err != nil {
		return res, err
	}
	res.Treasury, err = Compile(filepath.Join(root, TreasuryDir))
	if err != nil {
		return res, err
	}

	return res, nil
}
