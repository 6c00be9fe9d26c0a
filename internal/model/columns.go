package model

// Canonical column identifiers. These are the normalized forms of the
// workbook's historical headers; every ingestion path funnels raw headers
// into this set before any processing.
const (
	ColDate         = "data"
	ColBeneficiary  = "beneficiario"
	ColTransacted   = "valor_transacionado"
	ColReleased     = "valor_liberado"
	ColInterestRate = "taxa_de_juros"
	ColCommission   = "comissao_agente"
	ColExtra        = "extra_agente"
	ColDualcred     = "valor_dualcred"
	ColInvoice      = "nota_fiscal"
	ColPctAgent     = "porcentagem_agente"
	ColInstallments = "quantidade_parcelas"
	ColAgent        = "agente"
	ColPctTrans     = "pct_trans"
	ColPctReleased  = "pct_liberad"
)

// ColumnOrder is the documented output column order. Writers emit exactly
// this sequence (passthrough columns appended after it) so downstream
// consumers can rely on positional as well as named access.
var ColumnOrder = []string{
	ColDate,
	ColBeneficiary,
	ColTransacted,
	ColReleased,
	ColInterestRate,
	ColCommission,
	ColExtra,
	ColDualcred,
	ColInvoice,
	ColPctAgent,
	ColInstallments,
	ColAgent,
	ColPctTrans,
	ColPctReleased,
}

// RequiredColumns are injected with type-appropriate defaults when absent
// after normalization. Derived columns are not required on input: they are
// recomputed unconditionally.
var RequiredColumns = []string{
	ColDate,
	ColBeneficiary,
	ColTransacted,
	ColReleased,
	ColInterestRate,
	ColCommission,
	ColExtra,
	ColPctAgent,
	ColInstallments,
	ColAgent,
}

// NumericColumns lists the raw columns coerced to decimal on ingestion.
var NumericColumns = []string{
	ColTransacted,
	ColReleased,
	ColInterestRate,
	ColCommission,
	ColExtra,
	ColPctAgent,
	ColInstallments,
}

// DerivedColumns are always recomputed and never trusted from input.
var DerivedColumns = []string{
	ColDualcred,
	ColInvoice,
	ColPctTrans,
	ColPctReleased,
}

// IsKnownColumn reports whether name is part of the canonical column set.
func IsKnownColumn(name string) bool {
	for _, c := range ColumnOrder {
		if c == name {
			return true
		}
	}
	return false
}
