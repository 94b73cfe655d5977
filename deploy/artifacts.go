package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

// Artifact file names inside the contract directory.
const (
	NEFName      = "contract.nef"
	ManifestName = "manifest.json"
)

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// ReadAll reads compiled contracts from fsys laid out the same way as the
// sources: ledger, reserve manager and treasury directories each holding
// contract.nef and manifest.json.
func ReadAll(fsys fs.FS) (Contracts, error) {
	var (
		res Contracts
		err error
	)

	for _, c := range []struct {
		dir string
		dst *CommonDeployPrm
	}{
		{LedgerDir, &res.Ledger},
		{ReserveManagerDir, &res.ReserveManager},
		{TreasuryDir, &res.Treasury},
	} {
		*c.dst, err = readFromDir(fsys, c.dir)
		if err != nil {
			return Contracts{}, fmt.Errorf("read contract %s: %w", c.dir, err)
		}
	}

	return res, nil
}

func readFromDir(fsys fs.FS, dir string) (CommonDeployPrm, error) {
	// fs.FS paths are always slash-separated.
	fNEF, err := fsys.Open(dir + "/" + NEFName)
	if err != nil {
		return CommonDeployPrm{}, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(dir + "/" + ManifestName)
	if err != nil {
		return CommonDeployPrm{}, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	var (
		c = CommonDeployPrm{
			NEF:      new(nef.File),
			Manifest: new(manifest.Manifest),
		}
		r = io.NewBinReaderFromIO(fNEF)
	)

	c.NEF.DecodeBinary(r)
	if r.Err != nil {
		return CommonDeployPrm{}, fmt.Errorf("%w: %w", errInvalidNEF, r.Err)
	}

	err = json.NewDecoder(fManifest).Decode(c.Manifest)
	if err != nil {
		return CommonDeployPrm{}, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}

// WriteAll stores compiled contracts under root in the layout expected by
// ReadAll.
func WriteAll(root string, c Contracts) error {
	for _, x := range []struct {
		dir string
		prm CommonDeployPrm
	}{
		{LedgerDir, c.Ledger},
		{ReserveManagerDir, c.ReserveManager},
		{TreasuryDir, c.Treasury},
	} {
		dir := filepath.Join(root, x.dir)

		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return fmt.Errorf("create dir for %s: %w", x.dir, err)
		}

		bNEF, err := x.prm.NEF.Bytes()
		if err != nil {
			return fmt.Errorf("encode NEF of %s: %w", x.dir, err)
		}

		bManifest, err := json.Marshal(x.prm.Manifest)
		if err != nil {
			return fmt.Errorf("encode manifest of %s: %w", x.dir, err)
		}

		err = os.WriteFile(filepath.Join(dir, NEFName), bNEF, 0o644)
		if err != nil {
			return fmt.Errorf("write NEF of %s: %w", x.dir, err)
		}

		err = os.WriteFile(filepath.Join(dir, ManifestName), bManifest, 0o644)
		if err != nil {
			return fmt.Errorf("write manifest of %s: %w", x.dir, err)
		}
	}

	return nil
}
