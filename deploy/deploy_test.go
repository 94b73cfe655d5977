package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type deployBlockchain map[util.Uint160]struct{}

func (d deployBlockchain) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	if _, ok := d[h]; ok {
		return &state.Contract{ContractBase: state.ContractBase{Hash: h}}, nil
	}
	return nil, errors.New("Unknown contract")
}

var (
	_ Actor = (*actor.Actor)(nil)
	_ Actor = (*deployActor)(nil)
)

type deployActor struct {
	sender    util.Uint160
	hasMinter bool
	fault     string

	deploys int
	calls   []string
}

func (a *deployActor) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: []stackitem.Item{stackitem.Make(a.hasMinter)},
	}, nil
}

func (a *deployActor) CallAndExpandIterator(util.Uint160, string, int, ...any) (*result.Invoke, error) {
	return nil, errors.New("not supported")
}

func (a *deployActor) TerminateSession(uuid.UUID) error {
	return errors.New("not supported")
}

func (a *deployActor) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, errors.New("not supported")
}

func (a *deployActor) MakeRun([]byte) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (a *deployActor) MakeUnsignedRun([]byte, []transaction.Attribute) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (a *deployActor) SendRun([]byte) (util.Uint256, uint32, error) {
	a.deploys++
	return util.Uint256{byte(a.deploys)}, 10, nil
}

func (a *deployActor) MakeCall(util.Uint160, string, ...any) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (a *deployActor) MakeUnsignedCall(util.Uint160, string, []transaction.Attribute, ...any) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (a *deployActor) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	a.calls = append(a.calls, method)
	return util.Uint256{0xff}, 10, nil
}

func (a *deployActor) Sender() util.Uint160 {
	return a.sender
}

func (a *deployActor) Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, err
	}

	res := &state.AppExecResult{Container: h}
	res.VMState = vmstate.Halt
	if a.fault != "" {
		res.VMState = vmstate.Fault
		res.FaultException = a.fault
	}

	return res, nil
}

func testContract(name string) CommonDeployPrm {
	m := manifest.NewManifest(name)
	return CommonDeployPrm{
		NEF:      &nef.File{Checksum: uint32(len(name))},
		Manifest: m,
	}
}

func testPrm(t *testing.T, b Blockchain, a *deployActor) Prm {
	return Prm{
		Logger:     zaptest.NewLogger(t),
		Blockchain: b,
		Actor:      a,
		Contracts: Contracts{
			Ledger:         testContract("Eurium"),
			ReserveManager: testContract("Eurium Reserve Manager"),
			Treasury:       testContract("Eurium Treasury"),
		},
		Roles: Roles{
			Admin:      a.sender,
			Pauser:     util.Uint160{2},
			Minter:     util.Uint160{3},
			Upgrader:   util.Uint160{4},
			Auditor:    util.Uint160{5},
			Manager:    util.Uint160{6},
			Withdrawer: util.Uint160{7},
		},
	}
}

func TestDeploy(t *testing.T) {
	a := &deployActor{sender: util.Uint160{1}}
	prm := testPrm(t, deployBlockchain{}, a)

	res, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Equal(t, 3, a.deploys)
	require.Equal(t, []string{"grantRole"}, a.calls)

	require.Equal(t, prm.Contracts.Ledger.Hash(a.sender), res.Ledger)
	require.Equal(t, prm.Contracts.ReserveManager.Hash(a.sender), res.ReserveManager)
	require.Equal(t, prm.Contracts.Treasury.Hash(a.sender), res.Treasury)
	require.NotEqual(t, res.Ledger, res.Treasury)
}

func TestDeployIdempotent(t *testing.T) {
	a := &deployActor{sender: util.Uint160{1}, hasMinter: true}
	prm := testPrm(t, nil, a)
	prm.Blockchain = deployBlockchain{
		prm.Contracts.Ledger.Hash(a.sender):         {},
		prm.Contracts.ReserveManager.Hash(a.sender): {},
	}

	_, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Equal(t, 1, a.deploys)
	require.Empty(t, a.calls)
}

func TestDeployNotAdmin(t *testing.T) {
	a := &deployActor{sender: util.Uint160{1}}
	prm := testPrm(t, deployBlockchain{}, a)
	prm.Roles.Admin = util.Uint160{9}

	_, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Equal(t, 3, a.deploys)
	require.Empty(t, a.calls)
}

func TestDeployFault(t *testing.T) {
	a := &deployActor{sender: util.Uint160{1}, fault: "zero address"}
	prm := testPrm(t, deployBlockchain{}, a)

	_, err := Deploy(context.Background(), prm)
	require.ErrorContains(t, err, "deploy ledger contract")
	require.ErrorContains(t, err, "zero address")
	require.Equal(t, 1, a.deploys)
}

func TestDeployCancelled(t *testing.T) {
	a := &deployActor{sender: util.Uint160{1}}
	prm := testPrm(t, deployBlockchain{}, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Deploy(ctx, prm)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, a.deploys)
}

func TestCompileAll(t *testing.T) {
	cs, err := CompileAll("../contracts")
	require.NoError(t, err)

	require.Equal(t, "Eurium", cs.Ledger.Manifest.Name)
	require.Equal(t, "Eurium Reserve Manager", cs.ReserveManager.Manifest.Name)
	require.Equal(t, "Eurium Treasury", cs.Treasury.Manifest.Name)
	require.Contains(t, cs.Ledger.Manifest.SupportedStandards, "NEP-17")
	require.NotNil(t, cs.Ledger.Manifest.ABI.GetMethod("redeemRequest", 3))
	require.NotNil(t, cs.ReserveManager.Manifest.ABI.GetMethod("authorizeAndMint", 3))
	require.NotNil(t, cs.Treasury.Manifest.ABI.GetMethod("onNEP17Payment", 3))

	_, err = Compile("../contracts/missing")
	require.Error(t, err)
}
