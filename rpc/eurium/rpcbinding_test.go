package eurium

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	method string
	params []any
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}

func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

type testAct struct {
	testInv

	sent []string
}

func (t *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (t *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (t *testAct) MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (t *testAct) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	return nil, errors.New("not supported")
}

func (t *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	t.sent = append(t.sent, method)
	t.params = params
	return util.Uint256{1}, 100, nil
}

func (t *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	return util.Uint256{}, 0, errors.New("not supported")
}

func (t *testAct) Sender() util.Uint160 {
	return util.Uint160{}
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{State: vmstate.Halt.String(), Stack: items}
}

func TestReaderRedemption(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetRedemption(big.NewInt(1))
	require.Error(t, err)

	ti.err = nil
	ti.res = halt(stackitem.Make([]stackitem.Item{stackitem.Make(1)}))
	_, err = r.GetRedemption(big.NewInt(1))
	require.Error(t, err)

	requester := util.Uint160{9, 8, 7}
	ti.res = halt(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(7),
		stackitem.Make(requester),
		stackitem.Make(500),
		stackitem.Make("RED-001"),
		stackitem.Make(StatusPending),
	}))
	req, err := r.GetRedemption(big.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, "getRedemption", ti.method)
	require.Equal(t, &RedemptionRequest{
		ID:        big.NewInt(7),
		Requester: requester,
		Amount:    big.NewInt(500),
		Reference: "RED-001",
		Status:    big.NewInt(StatusPending),
	}, req)
}

func TestReaderReserveRoot(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = halt(stackitem.Null{})
	_, ok, err := r.CurrentReserveRoot()
	require.NoError(t, err)
	require.False(t, ok)

	root := util.Uint256{0xde, 0xad}
	ti.res = halt(stackitem.Make(root.BytesBE()))
	got, ok, err := r.CurrentReserveRoot()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, got)

	ti.res = halt(stackitem.Make([]byte{1, 2, 3}))
	_, _, err = r.CurrentReserveRoot()
	require.Error(t, err)
}

func TestReaderRoles(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	members := []util.Uint160{{1}, {2}}
	ti.res = halt(stackitem.Make([]stackitem.Item{
		stackitem.Make(members[0]),
		stackitem.Make(members[1]),
	}))
	got, err := r.GetRoleMembers("MINTER")
	require.NoError(t, err)
	require.Equal(t, members, got)
	require.Equal(t, "getRoleMembers", ti.method)

	ti.res = halt(stackitem.Make(true))
	ok, err := r.HasRole("MINTER", members[0])
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContractCalls(t *testing.T) {
	ta := new(testAct)
	c := New(ta, util.Uint160{1, 2, 3})

	_, _, err := c.RedeemRequest(util.Uint160{4}, big.NewInt(10), "RED-1")
	require.NoError(t, err)
	require.Equal(t, []any{util.Uint160{4}, big.NewInt(10), "RED-1"}, ta.params)

	_, _, err = c.FinalizeRedemption(big.NewInt(1))
	require.NoError(t, err)
	_, _, err = c.Pause()
	require.NoError(t, err)
	_, _, err = c.GrantRole("PAUSER", util.Uint160{5})
	require.NoError(t, err)

	require.Equal(t, []string{"redeemRequest", "finalizeRedemption", "pause", "grantRole"}, ta.sent)

	_, err = c.MintTransaction(util.Uint160{4}, big.NewInt(1))
	require.Error(t, err)
}

func TestEventsFromApplicationLog(t *testing.T) {
	_, err := RedemptionRequestedEventsFromApplicationLog(nil)
	require.Error(t, err)

	requester := util.Uint160{3, 3, 3}
	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "Transfer",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Null{},
						stackitem.Make(requester),
						stackitem.Make(100),
					}),
				},
				{
					Name: "RedemptionRequested",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(1),
						stackitem.Make(requester),
						stackitem.Make(100),
						stackitem.Make("RED-001"),
					}),
				},
				{
					Name: "RedemptionFinalized",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(1),
						stackitem.Make(requester),
						stackitem.Make(100),
					}),
				},
			},
		}},
	}

	transfers, err := TransferEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	require.Nil(t, transfers[0].From)
	require.Equal(t, requester, *transfers[0].To)

	requested, err := RedemptionRequestedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*RedemptionRequestedEvent{{
		InternalID:        big.NewInt(1),
		Requester:         requester,
		Amount:            big.NewInt(100),
		ExternalReference: "RED-001",
	}}, requested)

	finalized, err := RedemptionFinalizedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, finalized, 1)
	require.Equal(t, requester, finalized[0].Requester)

	cancelled, err := RedemptionCancelledEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Empty(t, cancelled)

	log.Executions[0].Events[1].Item = stackitem.NewArray([]stackitem.Item{stackitem.Make(1)})
	_, err = RedemptionRequestedEventsFromApplicationLog(log)
	require.Error(t, err)
}
