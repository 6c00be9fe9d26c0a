package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/schema"
	"github.com/dualcred/ledger-cli/internal/workbook"
)

func newTestNormalizer() *schema.Normalizer {
	return schema.NewNormalizer("Alessandro")
}

func createTestStore(t *testing.T, sheets map[string][][]string) *workbook.Store {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	require.NoError(t, f.Save(path))
	return workbook.NewStore(path)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func incomingRecord(dateStr, beneficiary string, transacted string) model.Record {
	return model.Record{
		Date:        date(dateStr),
		Beneficiary: beneficiary,
		Transacted:  dec(transacted),
	}
}
