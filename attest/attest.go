// Package attest builds commitments to off-chain reserve reports.
//
// A report lists collateral held by custodians. Every holding is hashed into
// a leaf with Keccak-256, leaves are sorted and folded pairwise into a Merkle
// root which auditors publish with the ledger's updateReserveProof method.
// Pairs are hashed in ascending order, so proofs do not carry sides.
package attest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"golang.org/x/crypto/sha3"
)

// ErrEmptyReport is returned for reports without holdings.
var ErrEmptyReport = errors.New("reserve report has no holdings")

// Holding is collateral held by a single custodian in a single asset.
type Holding struct {
	Custodian string   `json:"custodian"`
	Asset     string   `json:"asset"`
	Amount    *big.Int `json:"amount"`
}

// Report is a reserve report as of a moment in time.
type Report struct {
	AsOf     time.Time `json:"asOf"`
	Holdings []Holding `json:"holdings"`
}

// Keccak256 returns legacy Keccak-256 hash of data.
func Keccak256(data ...[]byte) [32]byte {
	var res [32]byte

	h := sha3.NewLegacyKeccak256()
	for i := range data {
		h.Write(data[i])
	}
	h.Sum(res[:0])

	return res
}

// ID derives a 32-byte identifier from a human-readable reference, e.g. a
// mint authorization number.
func ID(reference string) util.Uint256 {
	return toUint256(Keccak256([]byte(reference)))
}

// Leaf returns hash of the holding. Fields are separated by zero bytes and
// the amount is encoded as a decimal string.
func (h Holding) Leaf() ([32]byte, error) {
	if h.Amount == nil || h.Amount.Sign() < 0 {
		return [32]byte{}, fmt.Errorf("invalid amount of %s/%s", h.Custodian, h.Asset)
	}

	return Keccak256([]byte(h.Custodian), []byte{0}, []byte(h.Asset), []byte{0}, []byte(h.Amount.String())), nil
}

// Total returns the sum of holdings of the asset.
func (r Report) Total(asset string) *big.Int {
	res := new(big.Int)
	for i := range r.Holdings {
		if r.Holdings[i].Asset == asset && r.Holdings[i].Amount != nil {
			res.Add(res, r.Holdings[i].Amount)
		}
	}

	return res
}

// Leaves returns sorted leaf hashes of all holdings.
func (r Report) Leaves() ([][32]byte, error) {
	if len(r.Holdings) == 0 {
		return nil, ErrEmptyReport
	}

	leaves := make([][32]byte, len(r.Holdings))
	for i := range r.Holdings {
		var err error
		leaves[i], err = r.Holdings[i].Leaf()
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i][:], leaves[j][:]) < 0
	})

	return leaves, nil
}

// Root returns the Merkle root of the report.
func (r Report) Root() (util.Uint256, error) {
	leaves, err := r.Leaves()
	if err != nil {
		return util.Uint256{}, err
	}

	return toUint256(fold(leaves)), nil
}

// Proof returns sibling hashes proving that the holding is included in the
// report.
func (r Report) Proof(h Holding) ([][32]byte, error) {
	leaves, err := r.Leaves()
	if err != nil {
		return nil, err
	}

	leaf, err := h.Leaf()
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range leaves {
		if leaves[i] == leaf {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errors.New("holding is not a part of the report")
	}

	var proof [][32]byte
	for level := leaves; len(level) > 1; level = nextLevel(level) {
		sibling := index ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		index /= 2
	}

	return proof, nil
}

// Verify checks that the holding belongs to the report committed to by root.
func Verify(root util.Uint256, h Holding, proof [][32]byte) bool {
	cur, err := h.Leaf()
	if err != nil {
		return false
	}

	for i := range proof {
		cur = hashPair(cur, proof[i])
	}

	return toUint256(cur).Equals(root)
}

// ReadReport decodes JSON report.
func ReadReport(r io.Reader) (Report, error) {
	var rep Report

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode reserve report: %w", err)
	}

	return rep, nil
}

// LoadReport reads JSON report from the file.
func LoadReport(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	return ReadReport(f)
}

func fold(level [][32]byte) [32]byte {
	for len(level) > 1 {
		level = nextLevel(level)
	}

	return level[0]
}

// nextLevel hashes neighbours pairwise. The odd element is promoted as is.
func nextLevel(level [][32]byte) [][32]byte {
	next := make([][32]byte, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		if i+1 == len(level) {
			next = append(next, level[i])
			continue
		}
		next = append(next, hashPair(level[i], level[i+1]))
	}

	return next
}

func hashPair(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}

	return Keccak256(a[:], b[:])
}

func toUint256(h [32]byte) util.Uint256 {
	// Decoding can't fail for 32 bytes.
	u, _ := util.Uint256DecodeBytesBE(h[:])
	return u
}
