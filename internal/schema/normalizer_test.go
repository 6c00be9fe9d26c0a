package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualcred/ledger-cli/internal/model"
)

func TestNormalize_CanonicalizesAndInjects(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"Data", "Beneficiário", "Valor Transacionado"},
		Rows: [][]string{
			{"2024-03-05", "Cliente A", "1000"},
		},
	}
	n.Normalize(table)

	for _, col := range model.RequiredColumns {
		assert.GreaterOrEqual(t, table.ColumnIndex(col), 0, "missing %s", col)
	}
	agentIdx := table.ColumnIndex(model.ColAgent)
	assert.Equal(t, "Alessandro", table.Cell(0, agentIdx))
	assert.Equal(t, "0", table.Cell(0, table.ColumnIndex(model.ColInstallments)))
}

func TestNormalize_SynonymRename(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"data", "comissao_alessandro", "qtd_parcelas"},
		Rows: [][]string{
			{"2024-01-10", "30", "12"},
		},
	}
	n.Normalize(table)

	assert.Equal(t, -1, table.ColumnIndex("comissao_alessandro"))
	assert.Equal(t, -1, table.ColumnIndex("qtd_parcelas"))
	assert.Equal(t, "30", table.Cell(0, table.ColumnIndex(model.ColCommission)))
	assert.Equal(t, "12", table.Cell(0, table.ColumnIndex(model.ColInstallments)))
}

func TestNormalize_SynonymMergeFillsGapsOnly(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"data", "quantidade_parcelas", "qtd_parcelas"},
		Rows: [][]string{
			{"2024-01-10", "10", "99"},
			{"2024-01-11", "", "7"},
		},
	}
	n.Normalize(table)

	idx := table.ColumnIndex(model.ColInstallments)
	require.GreaterOrEqual(t, idx, 0)
	// Canonical value wins; synonym only fills gaps.
	assert.Equal(t, "10", table.Cell(0, idx))
	assert.Equal(t, "7", table.Cell(1, idx))
	assert.Equal(t, -1, table.ColumnIndex("qtd_parcelas"))
}

func TestNormalize_DuplicateHeadersFirstWins(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"Data", "data", "agente"},
		Rows: [][]string{
			{"2024-01-10", "1999-01-01", "Felipe"},
		},
	}
	n.Normalize(table)

	idx := table.ColumnIndex(model.ColDate)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "2024-01-10", table.Cell(0, idx))
	// Only one data column remains.
	count := 0
	for _, h := range table.Headers {
		if h == model.ColDate {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestNormalize_DropsExcludedColumns(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"data", "Acerto Alessandro", "Retirada Felipe", "Máquina", "%Trans", "%Liberad"},
		Rows: [][]string{
			{"2024-01-10", "5", "5", "x", "14.00", "17.50"},
		},
	}
	n.Normalize(table)

	for _, gone := range []string{"acerto_alessandro", "retirada_felipe", "maquina", "pct_trans", "pct_liberad"} {
		assert.Equal(t, -1, table.ColumnIndex(gone), "%s should be dropped", gone)
	}
}

func TestNormalize_UnknownColumnsPassThrough(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"data", "Observações"},
		Rows: [][]string{
			{"2024-01-10", "pagamento adiantado"},
		},
	}
	n.Normalize(table)

	idx := table.ColumnIndex("observacoes")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "pagamento adiantado", table.Cell(0, idx))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer("Alessandro")
	table := &RawTable{
		Headers: []string{"Data", "Comissão Alessandro", "Valor Transacionado"},
		Rows: [][]string{
			{"2024-01-10", "30", "1000"},
		},
	}
	n.Normalize(table)

	headers := append([]string(nil), table.Headers...)
	rows := append([][]string(nil), table.Rows...)
	n.Normalize(table)
	assert.Equal(t, headers, table.Headers)
	assert.Equal(t, rows, table.Rows)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	overlay := `version: 3
synonyms:
  - from: comissao_vendedor
    to: comissao_agente
exclusions:
  - maquina_nova
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	n := NewNormalizer("Alessandro")
	require.NoError(t, n.LoadOverlay(path))

	table := &RawTable{
		Headers: []string{"data", "comissao_vendedor", "maquina_nova"},
		Rows: [][]string{
			{"2024-01-10", "30", "x"},
		},
	}
	n.Normalize(table)

	assert.Equal(t, "30", table.Cell(0, table.ColumnIndex(model.ColCommission)))
	assert.Equal(t, -1, table.ColumnIndex("maquina_nova"))
}

func TestLoadOverlay_MissingFileIsNoop(t *testing.T) {
	n := NewNormalizer("Alessandro")
	require.NoError(t, n.LoadOverlay(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestDropEmptyColumns(t *testing.T) {
	table := &RawTable{
		Headers: []string{"data", "vazia", "valor"},
		Rows: [][]string{
			{"2024-01-10", "", "10"},
			{"2024-01-11", "", "20"},
		},
	}
	table.DropEmptyColumns()
	assert.Equal(t, []string{"data", "valor"}, table.Headers)
	assert.Equal(t, [][]string{{"2024-01-10", "10"}, {"2024-01-11", "20"}}, table.Rows)
}
