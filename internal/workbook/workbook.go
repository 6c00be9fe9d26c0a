// Package workbook is the storage layer: a single XLSX file holding the
// twelve monthly partition sheets. It reads partitions into raw tables and
// persists record sets in two modes, atomic full rebuild and per-partition
// incremental update.
package workbook

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/schema"
)

// ErrMissing reports an absent store file or partition sheet. Callers treat
// it as "empty ledger", not as a failure.
var ErrMissing = eris.New("workbook: store or sheet missing")

// Store is a handle on the twelve-partition workbook at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store handle. The file does not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the store file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Bootstrap ensures the parent directory and a skeleton workbook (twelve
// header-only sheets) exist. An existing store is left untouched.
func (s *Store) Bootstrap() error {
	if s.Exists() {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrapf(err, "workbook: create directory for %s", s.path)
	}
	return s.Rebuild(model.NewRecordSet())
}

// ReadPartition reads one partition sheet into a raw table. The first row is
// the header; remaining rows are data. A missing file or sheet yields
// ErrMissing.
func (s *Store) ReadPartition(label model.Partition) (*schema.RawTable, error) {
	if !s.Exists() {
		return nil, ErrMissing
	}
	f, err := xlsx.OpenFile(s.path)
	if err != nil {
		return nil, eris.Wrapf(err, "workbook: open %s", s.path)
	}
	sheet, ok := f.Sheet[string(label)]
	if !ok {
		return nil, ErrMissing
	}
	return sheetToTable(sheet), nil
}

func sheetToTable(sheet *xlsx.Sheet) *schema.RawTable {
	t := &schema.RawTable{}
	for i, row := range sheet.Rows {
		cells := rowToStrings(row)
		if i == 0 {
			t.Headers = cells
			continue
		}
		if rowEmpty(cells) {
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
