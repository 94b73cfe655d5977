package indexer

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/eurium-labs/eurium-contract/rpc/eurium"
	"github.com/eurium-labs/eurium-contract/rpc/reservemanager"
	"github.com/eurium-labs/eurium-contract/rpc/treasury"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
)

var (
	// ErrUnexpectedBlock is returned when blocks are applied out of order.
	ErrUnexpectedBlock = errors.New("unexpected block index")

	// ErrInvariantViolated is returned when the mirrored ledger state becomes
	// inconsistent. It usually means that some events were missed.
	ErrInvariantViolated = errors.New("ledger invariant violated")
)

// Contracts groups addresses of the mirrored contracts.
type Contracts struct {
	Ledger         util.Uint160
	ReserveManager util.Uint160
	Treasury       util.Uint160
}

// Redemption is a mirrored redemption request.
type Redemption struct {
	ID        uint64
	Requester util.Uint160
	Amount    *big.Int
	Reference string
	Status    int
	// Index of the block that changed the request last.
	Block uint32
}

// State is the mirrored state of the contracts.
type State struct {
	// Index of the next block to process.
	Height uint32

	TotalSupply      *big.Int
	AuthorizedMinted *big.Int
	Paused           bool
	ReserveRoot      util.Uint256
	ReserveUpdated   int64
	SnapshotID       int64

	Balances    map[util.Uint160]*big.Int
	Redemptions map[uint64]*Redemption
	// Treasury holdings per asset.
	Treasury map[util.Uint160]*big.Int
}

// NewState returns an empty state starting at the given block.
func NewState(height uint32) State {
	return State{
		Height:           height,
		TotalSupply:      new(big.Int),
		AuthorizedMinted: new(big.Int),
		Balances:         make(map[util.Uint160]*big.Int),
		Redemptions:      make(map[uint64]*Redemption),
		Treasury:         make(map[util.Uint160]*big.Int),
	}
}

// Changes is the result of a single block application. Maps of the State
// contain only entries modified by the block.
type Changes struct {
	State State
	// Number of processed notifications per event name.
	Events map[string]int
}

// Block groups execution results of all transactions in a block.
type Block struct {
	Index uint32
	Logs  []*result.ApplicationLog
}

// Supply is a summary of the mirrored ledger.
type Supply struct {
	Height           uint32
	TotalSupply      *big.Int
	MaxSupply        *big.Int
	AuthorizedMinted *big.Int
	Escrowed         *big.Int
	Pending          int
	Paused           bool
	ReserveRoot      util.Uint256
	ReserveUpdated   int64
	SnapshotID       int64
}

// Mirror keeps an off-chain copy of the ledger state built from contract
// notifications. Blocks are applied one at a time and either fully or not
// at all.
type Mirror struct {
	contracts Contracts
	maxSupply *big.Int

	mu sync.RWMutex
	st State
}

// NewMirror creates a mirror of the contracts at the given state. Nil
// maxSupply disables the supply cap check.
func NewMirror(contracts Contracts, maxSupply *big.Int, st State) *Mirror {
	return &Mirror{
		contracts: contracts,
		maxSupply: maxSupply,
		st:        st,
	}
}

// Height returns index of the next block to apply.
func (m *Mirror) Height() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.st.Height
}

// Apply applies notifications of the block. The block must be the next one.
// On any error the mirror is left unchanged.
func (m *Mirror) Apply(b Block) (Changes, error) {
	return m.ApplyWith(b, nil)
}

// ApplyWith is like Apply, but calls persist with the block changes before
// committing them. An error from persist discards the changes.
func (m *Mirror) ApplyWith(b Block, persist func(Changes) error) (Changes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.Index != m.st.Height {
		return Changes{}, fmt.Errorf("%w: %d instead of %d", ErrUnexpectedBlock, b.Index, m.st.Height)
	}

	p := &pending{
		base:    &m.st,
		block:   b.Index,
		ch:      NewState(b.Index + 1),
		events:  make(map[string]int),
		mirror:  m,
		scalars: m.st,
	}

	for _, log := range b.Logs {
		if log == nil {
			continue
		}
		for _, ex := range log.Executions {
			if ex.VMState != vmstate.Halt {
				continue
			}
			for _, e := range ex.Events {
				if err := p.apply(e); err != nil {
					return Changes{}, fmt.Errorf("tx %s: %s event: %w", log.Container.StringLE(), e.Name, err)
				}
			}
		}
	}

	if err := p.check(m.maxSupply, m.contracts.Ledger); err != nil {
		return Changes{}, err
	}

	ch := p.changes()
	if persist != nil {
		if err := persist(ch); err != nil {
			return Changes{}, err
		}
	}
	m.merge(ch.State)

	return ch, nil
}

// Supply returns current summary of the ledger.
func (m *Mirror) Supply() Supply {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := Supply{
		Height:           m.st.Height,
		TotalSupply:      new(big.Int).Set(m.st.TotalSupply),
		AuthorizedMinted: new(big.Int).Set(m.st.AuthorizedMinted),
		Escrowed:         new(big.Int),
		Paused:           m.st.Paused,
		ReserveRoot:      m.st.ReserveRoot,
		ReserveUpdated:   m.st.ReserveUpdated,
		SnapshotID:       m.st.SnapshotID,
	}
	if m.maxSupply != nil {
		res.MaxSupply = new(big.Int).Set(m.maxSupply)
	}

	for _, r := range m.st.Redemptions {
		if r.Status == eurium.StatusPending {
			res.Pending++
			res.Escrowed.Add(res.Escrowed, r.Amount)
		}
	}

	return res
}

// BalanceOf returns mirrored balance of the account.
func (m *Mirror) BalanceOf(acc util.Uint160) *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.st.Balances[acc]; ok {
		return new(big.Int).Set(v)
	}

	return new(big.Int)
}

// Redemption returns mirrored redemption request.
func (m *Mirror) Redemption(id uint64) (Redemption, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.st.Redemptions[id]
	if !ok {
		return Redemption{}, false
	}

	res := *r
	res.Amount = new(big.Int).Set(r.Amount)

	return res, true
}

// TreasuryBalance returns mirrored treasury holdings of the asset.
func (m *Mirror) TreasuryBalance(asset util.Uint160) *big.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.st.Treasury[asset]; ok {
		return new(big.Int).Set(v)
	}

	return new(big.Int)
}

func (m *Mirror) merge(ch State) {
	st := &m.st

	st.Height = ch.Height
	st.TotalSupply = ch.TotalSupply
	st.AuthorizedMinted = ch.AuthorizedMinted
	st.Paused = ch.Paused
	st.ReserveRoot = ch.ReserveRoot
	st.ReserveUpdated = ch.ReserveUpdated
	st.SnapshotID = ch.SnapshotID

	for k, v := range ch.Balances {
		if v.Sign() == 0 {
			delete(st.Balances, k)
			continue
		}
		st.Balances[k] = new(big.Int).Set(v)
	}
	for k, v := range ch.Redemptions {
		r := *v
		r.Amount = new(big.Int).Set(v.Amount)
		st.Redemptions[k] = &r
	}
	for k, v := range ch.Treasury {
		st.Treasury[k] = new(big.Int).Set(v)
	}
}

// pending accumulates block changes on top of the committed state.
type pending struct {
	mirror *Mirror
	base   *State
	block  uint32

	// scalars holds scalar fields of the resulting state.
	scalars State
	ch      State
	events  map[string]int
}

func (p *pending) apply(e state.NotificationEvent) error {
	c := p.mirror.contracts

	var err error
	switch {
	case e.ScriptHash.Equals(c.Ledger):
		err = p.applyLedger(e.Name, e.Item)
	case e.ScriptHash.Equals(c.ReserveManager):
		err = p.applyGateway(e.Name, e.Item)
	case e.ScriptHash.Equals(c.Treasury):
		err = p.applyTreasury(e.Name, e.Item)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	p.events[e.Name]++

	return nil
}

func (p *pending) applyLedger(name string, item *stackitem.Array) error {
	switch name {
	case "Transfer":
		var ev eurium.TransferEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		return p.transfer(ev.From, ev.To, ev.Amount)
	case "Paused", "Unpaused":
		p.scalars.Paused = name == "Paused"
	case "RedemptionRequested":
		var ev eurium.RedemptionRequestedEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		if !ev.InternalID.IsUint64() {
			return fmt.Errorf("invalid redemption id %s", ev.InternalID)
		}
		p.ch.Redemptions[ev.InternalID.Uint64()] = &Redemption{
			ID:        ev.InternalID.Uint64(),
			Requester: ev.Requester,
			Amount:    ev.Amount,
			Reference: ev.ExternalReference,
			Status:    eurium.StatusPending,
			Block:     p.block,
		}
	case "RedemptionCancelled":
		var ev eurium.RedemptionCancelledEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		return p.settle(ev.InternalID, eurium.StatusCancelled)
	case "RedemptionFinalized":
		var ev eurium.RedemptionFinalizedEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		return p.settle(ev.InternalID, eurium.StatusFinalized)
	case "ReserveProofUpdated":
		var ev eurium.ReserveProofUpdatedEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		p.scalars.ReserveRoot = ev.Root
		p.scalars.ReserveUpdated = ev.Timestamp.Int64()
	case "Snapshot":
		var ev eurium.SnapshotEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		p.scalars.SnapshotID = ev.ID.Int64()
	}

	return nil
}

func (p *pending) applyGateway(name string, item *stackitem.Array) error {
	if name != "AuthorizedMint" {
		return nil
	}

	var ev reservemanager.AuthorizedMintEvent
	if err := ev.FromStackItem(item); err != nil {
		return err
	}
	p.scalars.AuthorizedMinted = new(big.Int).Add(p.scalars.AuthorizedMinted, ev.Amount)

	return nil
}

func (p *pending) applyTreasury(name string, item *stackitem.Array) error {
	switch name {
	case "Deposit":
		var ev treasury.DepositEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		p.addTreasury(ev.Asset, ev.Amount)
	case "Withdrawal":
		var ev treasury.WithdrawalEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		p.addTreasury(ev.Asset, new(big.Int).Neg(ev.Amount))
	case "EmergencyWithdrawal":
		var ev treasury.EmergencyWithdrawalEvent
		if err := ev.FromStackItem(item); err != nil {
			return err
		}
		p.addTreasury(ev.Asset, new(big.Int).Neg(ev.Amount))
	}

	return nil
}

func (p *pending) transfer(from, to *util.Uint160, amount *big.Int) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("negative amount %s", amount)
	}

	if from == nil {
		p.scalars.TotalSupply = new(big.Int).Add(p.scalars.TotalSupply, amount)
	} else {
		b := p.balance(*from)
		b.Sub(b, amount)
		if b.Sign() < 0 {
			return fmt.Errorf("%w: negative balance of %s", ErrInvariantViolated, from.StringLE())
		}
		p.ch.Balances[*from] = b
	}

	if to == nil {
		p.scalars.TotalSupply = new(big.Int).Sub(p.scalars.TotalSupply, amount)
	} else {
		b := p.balance(*to)
		p.ch.Balances[*to] = b.Add(b, amount)
	}

	return nil
}

func (p *pending) settle(id *big.Int, status int) error {
	if !id.IsUint64() {
		return fmt.Errorf("invalid redemption id %s", id)
	}

	r, ok := p.ch.Redemptions[id.Uint64()]
	if !ok {
		old, ok := p.base.Redemptions[id.Uint64()]
		if !ok {
			return fmt.Errorf("%w: unknown redemption %d", ErrInvariantViolated, id.Uint64())
		}
		cp := *old
		cp.Amount = new(big.Int).Set(old.Amount)
		r = &cp
	}

	if r.Status != eurium.StatusPending {
		return fmt.Errorf("%w: redemption %d is not pending", ErrInvariantViolated, r.ID)
	}

	r.Status = status
	r.Block = p.block
	p.ch.Redemptions[r.ID] = r

	return nil
}

// balance returns a mutable copy of the account balance.
func (p *pending) balance(acc util.Uint160) *big.Int {
	if v, ok := p.ch.Balances[acc]; ok {
		return v
	}
	if v, ok := p.base.Balances[acc]; ok {
		return new(big.Int).Set(v)
	}

	return new(big.Int)
}

func (p *pending) addTreasury(asset util.Uint160, delta *big.Int) {
	v, ok := p.ch.Treasury[asset]
	if !ok {
		v = new(big.Int)
		if old, ok := p.base.Treasury[asset]; ok {
			v.Set(old)
		}
	}

	p.ch.Treasury[asset] = v.Add(v, delta)
}

// check verifies that the supply equals the sum of all balances, stays under
// the cap and that the ledger's own balance covers exactly the pending
// redemptions.
func (p *pending) check(maxSupply *big.Int, ledger util.Uint160) error {
	sum := new(big.Int)
	for acc, v := range p.base.Balances {
		if _, ok := p.ch.Balances[acc]; !ok {
			sum.Add(sum, v)
		}
	}
	for _, v := range p.ch.Balances {
		sum.Add(sum, v)
	}

	if sum.Cmp(p.scalars.TotalSupply) != 0 {
		return fmt.Errorf("%w: total supply %s, sum of balances %s", ErrInvariantViolated, p.scalars.TotalSupply, sum)
	}
	if maxSupply != nil && p.scalars.TotalSupply.Cmp(maxSupply) > 0 {
		return fmt.Errorf("%w: total supply %s exceeds cap %s", ErrInvariantViolated, p.scalars.TotalSupply, maxSupply)
	}

	escrow := new(big.Int)
	for id, r := range p.base.Redemptions {
		if _, ok := p.ch.Redemptions[id]; !ok && r.Status == eurium.StatusPending {
			escrow.Add(escrow, r.Amount)
		}
	}
	for _, r := range p.ch.Redemptions {
		if r.Status == eurium.StatusPending {
			escrow.Add(escrow, r.Amount)
		}
	}

	if held := p.balance(ledger); held.Cmp(escrow) != 0 {
		return fmt.Errorf("%w: escrow holds %s, pending redemptions %s", ErrInvariantViolated, held, escrow)
	}

	return nil
}

func (p *pending) changes() Changes {
	st := p.scalars
	st.Height = p.ch.Height
	st.Balances = p.ch.Balances
	st.Redemptions = p.ch.Redemptions
	st.Treasury = p.ch.Treasury

	return Changes{State: st, Events: p.events}
}
