package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/workbook"
)

func TestLoad_MissingStoreIsEmptyLedger(t *testing.T) {
	store := workbook.NewStore(filepath.Join(t.TempDir(), "absent.xlsx"))
	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Set.Len())
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "store absent")
}

func TestLoad_NormalizesDriftedHeaders(t *testing.T) {
	store := createTestStore(t, map[string][][]string{
		"JAN": {
			{"Data", "Beneficiário", "Valor Transacionado", "Valor Liberado", "Comissão Alessandro", "Qtd Parcelas"},
			{"2024-01-10", "Cliente A", "1000.00", "800.00", "30.00", "12"},
		},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	require.Equal(t, 1, res.Set.Len())

	r := res.Set.Records[0]
	assert.Equal(t, "Cliente A", r.Beneficiary)
	assert.Equal(t, "Alessandro", r.Agent) // injected fallback
	assert.Equal(t, "30.00", r.Commission.StringFixed(2))
	assert.Equal(t, "12.00", r.Installments.StringFixed(2))
	assert.Equal(t, model.PartitionJan, r.Partition)
}

func TestLoad_DerivesAllFields(t *testing.T) {
	store := createTestStore(t, map[string][][]string{
		"MAR": {
			{"data", "beneficiario", "valor_transacionado", "valor_liberado", "taxa_de_juros", "comissao_agente", "extra_agente", "agente"},
			{"2024-03-05", "Cliente A", "1000.00", "800.00", "20.00", "30.00", "10.00", "Felipe"},
		},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	require.Equal(t, 1, res.Set.Len())

	r := res.Set.Records[0]
	assert.Equal(t, "140.00", r.Dualcred.StringFixed(2))
	assert.Equal(t, "14.00", r.PctTransacted.StringFixed(2))
	assert.Equal(t, "17.50", r.PctReleased.StringFixed(2))
	assert.Equal(t, "32.00", r.Invoice.StringFixed(2))
	assert.Equal(t, "Felipe", r.Agent)
}

func TestLoad_IgnoresStoredDerivedColumns(t *testing.T) {
	// Stored derived values are stale on purpose; the loader must recompute.
	store := createTestStore(t, map[string][][]string{
		"MAR": {
			{"data", "beneficiario", "valor_transacionado", "valor_dualcred", "nota_fiscal"},
			{"2024-03-05", "Cliente A", "1000.00", "9999.99", "9999.99"},
		},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	r := res.Set.Records[0]
	assert.Equal(t, "1000.00", r.Dualcred.StringFixed(2))
	assert.Equal(t, "32.00", r.Invoice.StringFixed(2))
}

func TestLoad_MalformedValuesCoerce(t *testing.T) {
	store := createTestStore(t, map[string][][]string{
		"JAN": {
			{"data", "beneficiario", "valor_transacionado"},
			{"garbage", "Cliente A", "not-a-number"},
		},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	require.Equal(t, 1, res.Set.Len())

	r := res.Set.Records[0]
	assert.Equal(t, model.DefaultDate, r.Date)
	assert.Equal(t, "0.00", r.Transacted.StringFixed(2))
}

func TestLoad_SkipsMissingSheets(t *testing.T) {
	store := createTestStore(t, map[string][][]string{
		"MAR": {
			{"data", "beneficiario", "valor_transacionado"},
			{"2024-03-05", "Cliente A", "1000"},
		},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Set.Len())
	// Eleven sheets missing.
	assert.Len(t, res.Diagnostics, 11)
}

func TestLoad_PassthroughColumns(t *testing.T) {
	store := createTestStore(t, map[string][][]string{
		"JAN": {
			{"data", "beneficiario", "valor_transacionado", "Observações"},
			{"2024-01-10", "Cliente A", "1000", "pagamento adiantado"},
		},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	assert.Equal(t, []string{"observacoes"}, res.Set.ExtraCols)
	assert.Equal(t, "pagamento adiantado", res.Set.Records[0].Extras["observacoes"])
}

func TestLoad_EmptySheetContributesNothing(t *testing.T) {
	store := createTestStore(t, map[string][][]string{
		"JAN": {
			{"data", "beneficiario", "valor_transacionado"},
			{"2024-01-10", "Cliente A", "1000"},
		},
		"FEV": {},
	})

	res, err := Load(store, newTestNormalizer())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Set.Len())
}
