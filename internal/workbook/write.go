package workbook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dualcred/ledger-cli/internal/model"
)

// Rebuild regenerates the entire store from a complete record set: one sheet
// per partition in calendar order, fixed column order, header-only sheets for
// empty partitions. The new workbook is written to a temporary file beside
// the store and renamed over it, so a crash mid-write leaves the prior store
// intact.
func (s *Store) Rebuild(set *model.RecordSet) error {
	f := xlsx.NewFile()
	byPartition := set.ByPartition()
	for _, label := range model.Partitions() {
		sheet, err := f.AddSheet(string(label))
		if err != nil {
			return eris.Wrapf(err, "workbook: add sheet %s", label)
		}
		writeSheet(sheet, byPartition[label], set.ExtraCols)
	}
	return s.swapIn(f)
}

// UpdatePartition rewrites a single partition's contents, carrying the other
// eleven sheets over unchanged. The whole file is still swapped atomically.
func (s *Store) UpdatePartition(label model.Partition, records []model.Record, extraCols []string) error {
	if !label.Valid() {
		return eris.Errorf("workbook: unknown partition %q", label)
	}
	var src *xlsx.File
	if s.Exists() {
		f, err := xlsx.OpenFile(s.path)
		if err != nil {
			return eris.Wrapf(err, "workbook: open %s", s.path)
		}
		src = f
	}

	out := xlsx.NewFile()
	for _, p := range model.Partitions() {
		sheet, err := out.AddSheet(string(p))
		if err != nil {
			return eris.Wrapf(err, "workbook: add sheet %s", p)
		}
		if p == label {
			writeSheet(sheet, records, extraCols)
			continue
		}
		if src != nil {
			if existing, ok := src.Sheet[string(p)]; ok {
				copySheet(sheet, existing)
				continue
			}
		}
		writeSheet(sheet, nil, nil)
	}
	return s.swapIn(out)
}

// Export serializes a record set into workbook bytes with the same layout as
// the persisted store. The live store is never touched.
func Export(set *model.RecordSet) ([]byte, error) {
	f := xlsx.NewFile()
	byPartition := set.ByPartition()
	for _, label := range model.Partitions() {
		sheet, err := f.AddSheet(string(label))
		if err != nil {
			return nil, eris.Wrapf(err, "workbook: add sheet %s", label)
		}
		writeSheet(sheet, byPartition[label], set.ExtraCols)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "workbook: serialize export")
	}
	return buf.Bytes(), nil
}

// swapIn saves the workbook to a temporary sibling file and renames it over
// the live store.
func (s *Store) swapIn(f *xlsx.File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrapf(err, "workbook: create directory for %s", s.path)
	}
	tmp := fmt.Sprintf("%s.tmp-%d", s.path, os.Getpid())
	if err := f.Save(tmp); err != nil {
		return eris.Wrapf(err, "workbook: write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return eris.Wrapf(err, "workbook: replace %s", s.path)
	}
	return nil
}

// writeSheet emits the header row followed by one row per record, sorted by
// date ascending for a stable on-disk order.
func writeSheet(sheet *xlsx.Sheet, records []model.Record, extraCols []string) {
	columns := append(append([]string(nil), model.ColumnOrder...), extraCols...)

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	sorted := append([]model.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	for _, r := range sorted {
		row := sheet.AddRow()
		for _, col := range columns {
			row.AddCell().SetString(recordCell(r, col))
		}
	}
}

// copySheet clones an existing sheet's cells as strings.
func copySheet(dst, src *xlsx.Sheet) {
	for _, row := range src.Rows {
		out := dst.AddRow()
		for _, cell := range row.Cells {
			out.AddCell().SetString(cell.String())
		}
	}
}

// recordCell renders one canonical (or passthrough) column of a record.
func recordCell(r model.Record, col string) string {
	switch col {
	case model.ColDate:
		return r.Date.Format("2006-01-02")
	case model.ColBeneficiary:
		return r.Beneficiary
	case model.ColAgent:
		return r.Agent
	case model.ColTransacted:
		return r.Transacted.StringFixed(2)
	case model.ColReleased:
		return r.Released.StringFixed(2)
	case model.ColInterestRate:
		return r.InterestRate.StringFixed(2)
	case model.ColCommission:
		return r.Commission.StringFixed(2)
	case model.ColExtra:
		return r.Extra.StringFixed(2)
	case model.ColPctAgent:
		return r.PctAgent.StringFixed(2)
	case model.ColInstallments:
		return r.Installments.StringFixed(2)
	case model.ColDualcred:
		return r.Dualcred.StringFixed(2)
	case model.ColInvoice:
		return r.Invoice.StringFixed(2)
	case model.ColPctTrans:
		return r.PctTransacted.StringFixed(2)
	case model.ColPctReleased:
		return r.PctReleased.StringFixed(2)
	}
	return r.Extras[col]
}
