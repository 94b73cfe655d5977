package indexer

import (
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"

	"github.com/eurium-labs/eurium-contract/internal/amount"
	"github.com/eurium-labs/eurium-contract/rpc/eurium"
	"github.com/gorilla/mux"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	nativegas "github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Amount is a token amount in base units with its human-readable form.
type Amount struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted,omitempty"`
}

// SupplyResponse is returned by /supply.
type SupplyResponse struct {
	Height           uint32  `json:"height"`
	TotalSupply      Amount  `json:"totalSupply"`
	MaxSupply        *Amount `json:"maxSupply,omitempty"`
	AuthorizedMinted Amount  `json:"authorizedMinted"`
	Escrowed         Amount  `json:"escrowed"`
	Pending          int     `json:"pendingRedemptions"`
	Paused           bool    `json:"paused"`
	ReserveRoot      string  `json:"reserveRoot,omitempty"`
	ReserveUpdated   int64   `json:"reserveUpdated,omitempty"`
	SnapshotID       int64   `json:"snapshotId"`
}

// RedemptionResponse is returned by /redemptions/{id}.
type RedemptionResponse struct {
	ID        uint64 `json:"id"`
	Requester string `json:"requester"`
	Amount    Amount `json:"amount"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Block     uint32 `json:"block"`
}

// ErrorResponse describes a failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type api struct {
	log    *zap.Logger
	mirror *Mirror
}

// NewHandler returns read-only HTTP API over the mirror. Metrics of the
// gatherer are served at /metrics.
func NewHandler(log *zap.Logger, m *Mirror, gatherer prometheus.Gatherer) http.Handler {
	a := &api{log: log, mirror: m}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)
	r.HandleFunc("/supply", a.supply).Methods(http.MethodGet)
	r.HandleFunc("/balances/{account}", a.balance).Methods(http.MethodGet)
	r.HandleFunc("/redemptions/{id:[0-9]+}", a.redemption).Methods(http.MethodGet)
	r.HandleFunc("/treasury/{asset}", a.treasury).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	a.write(w, http.StatusOK, map[string]any{
		"status": "ok",
		"height": a.mirror.Height(),
	})
}

func (a *api) supply(w http.ResponseWriter, _ *http.Request) {
	s := a.mirror.Supply()

	res := SupplyResponse{
		Height:           s.Height,
		TotalSupply:      euiAmount(s.TotalSupply),
		AuthorizedMinted: euiAmount(s.AuthorizedMinted),
		Escrowed:         euiAmount(s.Escrowed),
		Pending:          s.Pending,
		Paused:           s.Paused,
		SnapshotID:       s.SnapshotID,
	}
	if s.MaxSupply != nil {
		v := euiAmount(s.MaxSupply)
		res.MaxSupply = &v
	}
	if s.ReserveUpdated != 0 {
		res.ReserveRoot = s.ReserveRoot.StringBE()
		res.ReserveUpdated = s.ReserveUpdated
	}

	a.write(w, http.StatusOK, res)
}

func (a *api) balance(w http.ResponseWriter, r *http.Request) {
	acc, err := parseAccount(mux.Vars(r)["account"])
	if err != nil {
		a.fail(w, http.StatusBadRequest, "INVALID_ACCOUNT", err.Error())
		return
	}

	a.write(w, http.StatusOK, euiAmount(a.mirror.BalanceOf(acc)))
}

func (a *api) redemption(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		a.fail(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	red, ok := a.mirror.Redemption(id)
	if !ok {
		a.fail(w, http.StatusNotFound, "NOT_FOUND", "redemption not found")
		return
	}

	a.write(w, http.StatusOK, RedemptionResponse{
		ID:        red.ID,
		Requester: address.Uint160ToString(red.Requester),
		Amount:    euiAmount(red.Amount),
		Reference: red.Reference,
		Status:    statusName(red.Status),
		Block:     red.Block,
	})
}

func (a *api) treasury(w http.ResponseWriter, r *http.Request) {
	asset, err := parseAccount(mux.Vars(r)["asset"])
	if err != nil {
		a.fail(w, http.StatusBadRequest, "INVALID_ASSET", err.Error())
		return
	}

	// zero hash is an alias of GAS in the treasury contract
	if asset.Equals(util.Uint160{}) {
		asset = nativegas.Hash
	}

	bal := a.mirror.TreasuryBalance(asset)
	res := Amount{Value: bal.String()}

	switch asset {
	case nativegas.Hash:
		res.Formatted = amount.Format(bal, amount.GASDecimals)
	case a.mirror.contracts.Ledger:
		res = euiAmount(bal)
	}

	a.write(w, http.StatusOK, res)
}

func (a *api) write(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.log.Debug("can't write response", zap.Error(err))
	}
}

func (a *api) fail(w http.ResponseWriter, status int, code, msg string) {
	a.write(w, status, ErrorResponse{Code: code, Message: msg})
}

// parseAccount accepts both Neo addresses and little-endian script hashes.
func parseAccount(s string) (util.Uint160, error) {
	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}

	return util.Uint160DecodeStringLE(s)
}

func euiAmount(v *big.Int) Amount {
	return Amount{Value: v.String(), Formatted: amount.Format(v, amount.Decimals)}
}

func statusName(s int) string {
	switch s {
	case eurium.StatusPending:
		return "pending"
	case eurium.StatusFinalized:
		return "finalized"
	case eurium.StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
