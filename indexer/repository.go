package indexer

import (
	"database/sql"
	"fmt"
	"math/big"

	"github.com/behrang/sqlbatch"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

var (
	batchOptionNormal = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelReadCommitted,
	}

	batchOptionReadOnly = sql.TxOptions{
		ReadOnly:  true,
		Isolation: sql.LevelRepeatableRead,
	}
)

const (
	sqlCreateState = `
	create table if not exists eurium_state (
		id                smallint primary key default 1 check (id = 1),
		height            bigint not null,
		total_supply      numeric(78) not null,
		authorized_minted numeric(78) not null,
		paused            boolean not null,
		reserve_root      text not null,
		reserve_updated   bigint not null,
		snapshot_id       bigint not null
	)
`

	sqlCreateBalances = `
	create table if not exists eurium_balances (
		account text primary key,
		amount  numeric(78) not null
	)
`

	sqlCreateRedemptions = `
	create table if not exists eurium_redemptions (
		id        bigint primary key,
		requester text not null,
		amount    numeric(78) not null,
		reference text not null,
		status    smallint not null,
		block     bigint not null
	)
`

	sqlCreateTreasury = `
	create table if not exists eurium_treasury (
		asset  text primary key,
		amount numeric(78) not null
	)
`

	sqlStateUpsert = `
	insert into eurium_state as s (
			id, height, total_supply, authorized_minted, paused, reserve_root, reserve_updated, snapshot_id
		)
		values (
			1, $1, $2::numeric, $3::numeric, $4, $5, $6, $7
		)
	on conflict (id) do
		update set
			height = $1, total_supply = $2::numeric, authorized_minted = $3::numeric,
			paused = $4, reserve_root = $5, reserve_updated = $6, snapshot_id = $7
		where s.height < $1
`

	sqlStateFind = `
	select
		height, total_supply::text, authorized_minted::text, paused, reserve_root, reserve_updated, snapshot_id
	from eurium_state
`

	sqlBalanceUpsert = `
	insert into eurium_balances (account, amount)
		values ($1, $2::numeric)
	on conflict (account) do
		update set amount = $2::numeric
`

	sqlBalanceDelete = `
	delete from eurium_balances where account = $1
`

	sqlBalanceFindAll = `
	select account, amount::text from eurium_balances
`

	sqlRedemptionUpsert = `
	insert into eurium_redemptions (id, requester, amount, reference, status, block)
		values ($1, $2, $3::numeric, $4, $5, $6)
	on conflict (id) do
		update set status = $5, block = $6
`

	sqlRedemptionFindAll = `
	select id, requester, amount::text, reference, status, block from eurium_redemptions
`

	sqlTreasuryUpsert = `
	insert into eurium_treasury (asset, amount)
		values ($1, $2::numeric)
	on conflict (asset) do
		update set amount = $2::numeric
`

	sqlTreasuryFindAll = `
	select asset, amount::text from eurium_treasury
`
)

// Repository persists the mirrored state in Postgres.
type Repository struct {
	batchHandler BatchHandler
}

// NewRepository returns Repository working over the handler.
func NewRepository(db BatchHandler) *Repository {
	return &Repository{batchHandler: db}
}

// Migrate creates missing tables.
func (repo *Repository) Migrate() error {
	_, err := repo.batchHandler.Batch(&batchOptionNormal, []sqlbatch.Command{
		{Query: sqlCreateState},
		{Query: sqlCreateBalances},
		{Query: sqlCreateRedemptions},
		{Query: sqlCreateTreasury},
	})
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	return nil
}

// Save stores block changes in a single transaction. The state row is
// written only if it moves the cursor forward, so a batch replayed after a
// restart is rejected as a whole.
func (repo *Repository) Save(ch Changes) error {
	st := ch.State

	commands := []sqlbatch.Command{{
		Query: sqlStateUpsert,
		Args: []any{
			int64(st.Height), st.TotalSupply.String(), st.AuthorizedMinted.String(), st.Paused,
			st.ReserveRoot.StringLE(), st.ReserveUpdated, st.SnapshotID,
		},
		Affect: 1,
	}}

	for acc, v := range st.Balances {
		if v.Sign() == 0 {
			commands = append(commands, sqlbatch.Command{
				Query: sqlBalanceDelete,
				Args:  []any{acc.StringLE()},
			})
			continue
		}
		commands = append(commands, sqlbatch.Command{
			Query:  sqlBalanceUpsert,
			Args:   []any{acc.StringLE(), v.String()},
			Affect: 1,
		})
	}

	for _, r := range st.Redemptions {
		commands = append(commands, sqlbatch.Command{
			Query:  sqlRedemptionUpsert,
			Args:   []any{int64(r.ID), r.Requester.StringLE(), r.Amount.String(), r.Reference, r.Status, int64(r.Block)},
			Affect: 1,
		})
	}

	for asset, v := range st.Treasury {
		commands = append(commands, sqlbatch.Command{
			Query:  sqlTreasuryUpsert,
			Args:   []any{asset.StringLE(), v.String()},
			Affect: 1,
		})
	}

	if _, err := repo.batchHandler.Batch(&batchOptionNormal, commands); err != nil {
		return fmt.Errorf("save block %d: %w", st.Height-1, err)
	}

	return nil
}

// Load reads the persisted state. ok is false when nothing has been saved
// yet.
func (repo *Repository) Load() (st State, ok bool, err error) {
	results, err := repo.batchHandler.Batch(&batchOptionReadOnly, []sqlbatch.Command{
		{
			Query:   sqlStateFind,
			Init:    make([]State, 0, 1),
			ReadAll: readAllStates,
		},
		{
			Query:   sqlBalanceFindAll,
			Init:    make(map[util.Uint160]*big.Int),
			ReadAll: readAllAmounts,
		},
		{
			Query:   sqlRedemptionFindAll,
			Init:    make(map[uint64]*Redemption),
			ReadAll: readAllRedemptions,
		},
		{
			Query:   sqlTreasuryFindAll,
			Init:    make(map[util.Uint160]*big.Int),
			ReadAll: readAllAmounts,
		},
	})
	if err != nil {
		return State{}, false, fmt.Errorf("load state: %w", err)
	}

	states, _ := results[0].([]State)
	if len(states) == 0 {
		return State{}, false, nil
	}

	st = states[0]
	st.Balances, _ = results[1].(map[util.Uint160]*big.Int)
	st.Redemptions, _ = results[2].(map[uint64]*Redemption)
	st.Treasury, _ = results[3].(map[util.Uint160]*big.Int)

	return st, true, nil
}

func readAllStates(all any, scan func(...any) error) (any, error) {
	var (
		st             State
		height         int64
		supply, minted string
		root           string
	)

	list := all.([]State)

	err := scan(&height, &supply, &minted, &st.Paused, &root, &st.ReserveUpdated, &st.SnapshotID)
	if err != nil {
		return list, err
	}

	st.Height = uint32(height)
	if st.TotalSupply, err = parseAmount(supply); err != nil {
		return list, err
	}
	if st.AuthorizedMinted, err = parseAmount(minted); err != nil {
		return list, err
	}
	if st.ReserveRoot, err = util.Uint256DecodeStringLE(root); err != nil {
		return list, fmt.Errorf("reserve root: %w", err)
	}

	return append(list, st), nil
}

func readAllAmounts(all any, scan func(...any) error) (any, error) {
	var key, amount string

	m := all.(map[util.Uint160]*big.Int)

	if err := scan(&key, &amount); err != nil {
		return m, err
	}

	h, err := util.Uint160DecodeStringLE(key)
	if err != nil {
		return m, fmt.Errorf("address %q: %w", key, err)
	}
	m[h], err = parseAmount(amount)

	return m, err
}

func readAllRedemptions(all any, scan func(...any) error) (any, error) {
	var (
		r         Redemption
		id, block int64
		requester string
		amount    string
	)

	m := all.(map[uint64]*Redemption)

	err := scan(&id, &requester, &amount, &r.Reference, &r.Status, &block)
	if err != nil {
		return m, err
	}

	r.ID, r.Block = uint64(id), uint32(block)
	if r.Requester, err = util.Uint160DecodeStringLE(requester); err != nil {
		return m, fmt.Errorf("requester of %d: %w", id, err)
	}
	if r.Amount, err = parseAmount(amount); err != nil {
		return m, err
	}
	m[r.ID] = &r

	return m, nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	return v, nil
}
