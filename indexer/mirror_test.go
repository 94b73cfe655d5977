package indexer

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

var (
	testContracts = Contracts{
		Ledger:         util.Uint160{0xe0},
		ReserveManager: util.Uint160{0xe1},
		Treasury:       util.Uint160{0xe2},
	}

	alice = util.Uint160{1}
	bob   = util.Uint160{2}
	gas   = util.Uint160{0xd2, 0xa4}
)

func notification(contract util.Uint160, name string, params ...any) state.NotificationEvent {
	items := make([]stackitem.Item, len(params))
	for i := range params {
		switch v := params[i].(type) {
		case nil:
			items[i] = stackitem.Null{}
		case util.Uint160:
			items[i] = stackitem.NewByteArray(v.BytesBE())
		case util.Uint256:
			items[i] = stackitem.NewByteArray(v.BytesBE())
		default:
			items[i] = stackitem.Make(v)
		}
	}

	return state.NotificationEvent{
		ScriptHash: contract,
		Name:       name,
		Item:       stackitem.NewArray(items),
	}
}

func ledgerEvent(name string, params ...any) state.NotificationEvent {
	return notification(testContracts.Ledger, name, params...)
}

func mintEvents(to util.Uint160, amount int64) []state.NotificationEvent {
	return []state.NotificationEvent{
		ledgerEvent("Transfer", nil, to, amount),
		ledgerEvent("Mint", to, amount),
	}
}

func testBlock(index uint32, events ...state.NotificationEvent) Block {
	return Block{
		Index: index,
		Logs: []*result.ApplicationLog{{
			Container: util.Uint256{byte(index)},
			Executions: []state.Execution{{
				VMState: vmstate.Halt,
				Events:  events,
			}},
		}},
	}
}

func TestMirrorMintAndTransfer(t *testing.T) {
	m := NewMirror(testContracts, big.NewInt(1000), NewState(5))
	require.EqualValues(t, 5, m.Height())

	_, err := m.Apply(testBlock(6))
	require.ErrorIs(t, err, ErrUnexpectedBlock)

	ch, err := m.Apply(testBlock(5, append(mintEvents(alice, 700),
		ledgerEvent("Transfer", alice, bob, 200),
		notification(util.Uint160{0xaa}, "Transfer", nil, alice, 1_000_000),
	)...))
	require.NoError(t, err)
	require.EqualValues(t, 6, m.Height())
	require.EqualValues(t, 6, ch.State.Height)
	require.Equal(t, map[string]int{"Transfer": 2, "Mint": 1}, ch.Events)
	require.Len(t, ch.State.Balances, 2)

	require.EqualValues(t, 500, m.BalanceOf(alice).Int64())
	require.EqualValues(t, 200, m.BalanceOf(bob).Int64())

	s := m.Supply()
	require.EqualValues(t, 700, s.TotalSupply.Int64())
	require.EqualValues(t, 1000, s.MaxSupply.Int64())

	// Burning everything removes the account.
	_, err = m.Apply(testBlock(6, ledgerEvent("Transfer", bob, nil, 200), ledgerEvent("Burn", bob, 200)))
	require.NoError(t, err)
	require.Zero(t, m.BalanceOf(bob).Sign())
	require.EqualValues(t, 500, m.Supply().TotalSupply.Int64())
}

func TestMirrorFaultedExecution(t *testing.T) {
	m := NewMirror(testContracts, nil, NewState(0))

	b := testBlock(0, mintEvents(alice, 10)...)
	b.Logs[0].Executions[0].VMState = vmstate.Fault
	b.Logs = append(b.Logs, nil)

	ch, err := m.Apply(b)
	require.NoError(t, err)
	require.Empty(t, ch.Events)
	require.Zero(t, m.Supply().TotalSupply.Sign())
	require.Nil(t, m.Supply().MaxSupply)
}

func TestMirrorInvariants(t *testing.T) {
	t.Run("supply cap", func(t *testing.T) {
		m := NewMirror(testContracts, big.NewInt(100), NewState(0))
		_, err := m.Apply(testBlock(0, mintEvents(alice, 101)...))
		require.ErrorIs(t, err, ErrInvariantViolated)
	})

	t.Run("negative balance", func(t *testing.T) {
		m := NewMirror(testContracts, nil, NewState(0))
		_, err := m.Apply(testBlock(0, ledgerEvent("Transfer", alice, bob, 1)))
		require.ErrorIs(t, err, ErrInvariantViolated)
	})

	t.Run("unknown redemption", func(t *testing.T) {
		m := NewMirror(testContracts, nil, NewState(0))
		_, err := m.Apply(testBlock(0, ledgerEvent("RedemptionCancelled", 3, alice, 1)))
		require.ErrorIs(t, err, ErrInvariantViolated)
	})

	t.Run("escrow mismatch", func(t *testing.T) {
		m := NewMirror(testContracts, nil, NewState(0))
		_, err := m.Apply(testBlock(0, append(mintEvents(alice, 10),
			ledgerEvent("RedemptionRequested", 1, alice, 5, "RED-1"))...))
		require.ErrorIs(t, err, ErrInvariantViolated)
	})

	t.Run("state is kept on failure", func(t *testing.T) {
		m := NewMirror(testContracts, big.NewInt(100), NewState(0))
		_, err := m.Apply(testBlock(0, mintEvents(alice, 60)...))
		require.NoError(t, err)

		_, err = m.Apply(testBlock(1, append(mintEvents(bob, 30), mintEvents(alice, 30)...)...))
		require.ErrorIs(t, err, ErrInvariantViolated)

		require.EqualValues(t, 1, m.Height())
		require.EqualValues(t, 60, m.BalanceOf(alice).Int64())
		require.Zero(t, m.BalanceOf(bob).Sign())
		require.EqualValues(t, 60, m.Supply().TotalSupply.Int64())
	})

	t.Run("malformed event", func(t *testing.T) {
		m := NewMirror(testContracts, nil, NewState(0))
		_, err := m.Apply(testBlock(0, ledgerEvent("Transfer", nil, alice)))
		require.Error(t, err)
		require.EqualValues(t, 0, m.Height())
	})
}

func TestMirrorRedemptions(t *testing.T) {
	m := NewMirror(testContracts, nil, NewState(0))
	ledger := testContracts.Ledger

	_, err := m.Apply(testBlock(0, append(mintEvents(alice, 1000),
		ledgerEvent("Transfer", alice, ledger, 500),
		ledgerEvent("RedemptionRequested", 1, alice, 500, "RED-001"),
		ledgerEvent("Transfer", alice, ledger, 100),
		ledgerEvent("RedemptionRequested", 2, alice, 100, "RED-002"),
	)...))
	require.NoError(t, err)

	s := m.Supply()
	require.Equal(t, 2, s.Pending)
	require.EqualValues(t, 600, s.Escrowed.Int64())
	require.EqualValues(t, 1000, s.TotalSupply.Int64())

	r, ok := m.Redemption(1)
	require.True(t, ok)
	require.Equal(t, "RED-001", r.Reference)
	require.Equal(t, alice, r.Requester)
	require.Equal(t, 0, r.Status)
	require.EqualValues(t, 0, r.Block)

	ch, err := m.Apply(testBlock(1,
		ledgerEvent("Transfer", ledger, nil, 500),
		ledgerEvent("Burn", ledger, 500),
		ledgerEvent("RedemptionFinalized", 1, alice, 500),
		ledgerEvent("Transfer", ledger, alice, 100),
		ledgerEvent("RedemptionCancelled", 2, alice, 100),
	))
	require.NoError(t, err)
	require.Len(t, ch.State.Redemptions, 2)

	r, _ = m.Redemption(1)
	require.Equal(t, 1, r.Status)
	require.EqualValues(t, 1, r.Block)
	r, _ = m.Redemption(2)
	require.Equal(t, 2, r.Status)

	s = m.Supply()
	require.Zero(t, s.Pending)
	require.EqualValues(t, 500, s.TotalSupply.Int64())
	require.EqualValues(t, 500, m.BalanceOf(alice).Int64())

	_, ok = m.Redemption(3)
	require.False(t, ok)

	// Settled requests can't be settled again.
	_, err = m.Apply(testBlock(2, ledgerEvent("RedemptionCancelled", 2, alice, 100)))
	require.ErrorIs(t, err, ErrInvariantViolated)
}

func TestMirrorLedgerState(t *testing.T) {
	m := NewMirror(testContracts, nil, NewState(0))
	root := util.Uint256{1, 2, 3}

	_, err := m.Apply(testBlock(0,
		ledgerEvent("Paused", alice),
		ledgerEvent("ReserveProofUpdated", root, 1_700_000_000_000),
		ledgerEvent("Snapshot", 1),
		ledgerEvent("Snapshot", 2),
	))
	require.NoError(t, err)

	s := m.Supply()
	require.True(t, s.Paused)
	require.Equal(t, root, s.ReserveRoot)
	require.EqualValues(t, 1_700_000_000_000, s.ReserveUpdated)
	require.EqualValues(t, 2, s.SnapshotID)

	_, err = m.Apply(testBlock(1, ledgerEvent("Unpaused", alice)))
	require.NoError(t, err)
	require.False(t, m.Supply().Paused)
}

func TestMirrorGatewayAndTreasury(t *testing.T) {
	m := NewMirror(testContracts, nil, NewState(0))
	treasury := testContracts.Treasury

	ch, err := m.Apply(testBlock(0, append(mintEvents(alice, 300),
		notification(testContracts.ReserveManager, "AuthorizedMint", util.Uint256{7}, alice, 300),
		notification(testContracts.ReserveManager, "DailyLimitChanged", 1, 2),
		notification(treasury, "Deposit", gas, bob, 50),
		notification(treasury, "Deposit", gas, bob, 25),
		notification(treasury, "Withdrawal", gas, alice, 10),
		notification(treasury, "EmergencyWithdrawal", gas, alice, 5),
	)...))
	require.NoError(t, err)
	require.Equal(t, 1, ch.Events["EmergencyWithdrawal"])
	require.Equal(t, 1, ch.Events["DailyLimitChanged"])

	require.EqualValues(t, 300, m.Supply().AuthorizedMinted.Int64())
	require.EqualValues(t, 60, m.TreasuryBalance(gas).Int64())
	require.Zero(t, m.TreasuryBalance(util.Uint160{9}).Sign())
}

func TestMirrorRestoredState(t *testing.T) {
	st := NewState(10)
	st.TotalSupply = big.NewInt(100)
	st.Balances[alice] = big.NewInt(60)
	st.Balances[testContracts.Ledger] = big.NewInt(40)
	st.Redemptions[4] = &Redemption{ID: 4, Requester: bob, Amount: big.NewInt(40), Reference: "x"}

	m := NewMirror(testContracts, big.NewInt(100), st)

	_, err := m.Apply(testBlock(10,
		ledgerEvent("Transfer", testContracts.Ledger, bob, 40),
		ledgerEvent("RedemptionCancelled", 4, bob, 40),
	))
	require.NoError(t, err)
	require.EqualValues(t, 40, m.BalanceOf(bob).Int64())
	require.Zero(t, m.Supply().Pending)
}

func TestMirrorApplyWith(t *testing.T) {
	m := NewMirror(testContracts, nil, NewState(0))

	_, err := m.ApplyWith(testBlock(0, mintEvents(alice, 10)...), func(Changes) error {
		return errors.New("database is down")
	})
	require.ErrorContains(t, err, "database is down")
	require.EqualValues(t, 0, m.Height())
	require.Zero(t, m.BalanceOf(alice).Sign())

	var saved Changes
	_, err = m.ApplyWith(testBlock(0, mintEvents(alice, 10)...), func(ch Changes) error {
		saved = ch
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, saved.State.Height)
	require.EqualValues(t, 10, saved.State.Balances[alice].Int64())
	require.EqualValues(t, 10, m.BalanceOf(alice).Int64())
}
