package reservemanager

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

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func custodianItem(name string, addr util.Uint160, active bool) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(name),
		stackitem.Make(addr),
		stackitem.Make(active),
	})
}

func TestListCustodians(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.ListCustodians()
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: []stackitem.Item{stackitem.Make([]stackitem.Item{
			custodianItem("Vault A", util.Uint160{1}, true),
			custodianItem("Vault B", util.Uint160{2}, false),
		})},
	}
	cs, err := r.ListCustodians()
	require.NoError(t, err)
	require.Equal(t, []*Custodian{
		{Name: "Vault A", Address: util.Uint160{1}, Active: true},
		{Name: "Vault B", Address: util.Uint160{2}, Active: false},
	}, cs)

	ti.res = &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: []stackitem.Item{stackitem.Make([]stackitem.Item{
			stackitem.Make(42),
		})},
	}
	_, err = r.ListCustodians()
	require.Error(t, err)

	ti.res = &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: []stackitem.Item{custodianItem("Vault C", util.Uint160{3}, true)},
	}
	c, err := r.Custodians(big.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, "Vault C", c.Name)
}

func TestAuthorizedMintEvents(t *testing.T) {
	id := util.Uint256{0xaa, 0xbb}
	to := util.Uint160{7}
	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "AuthorizedMint",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(id.BytesBE()),
						stackitem.Make(to),
						stackitem.Make(1_000),
					}),
				},
				{
					Name: "DailyLimitChanged",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(10),
						stackitem.Make(20),
					}),
				},
			},
		}},
	}

	mints, err := AuthorizedMintEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*AuthorizedMintEvent{{
		AuthorizationID: id,
		To:              to,
		Amount:          big.NewInt(1_000),
	}}, mints)

	changes, err := DailyLimitChangedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.EqualValues(t, 20, changes[0].NewLimit.Int64())

	log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{
		stackitem.Make([]byte{1}),
		stackitem.Make(to),
		stackitem.Make(1),
	})
	_, err = AuthorizedMintEventsFromApplicationLog(log)
	require.Error(t, err)
}
