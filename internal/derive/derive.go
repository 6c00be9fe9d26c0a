// Package derive computes the ledger's derived monetary fields. It is the
// single writer of Dualcred, Invoice, PctTransacted, and PctReleased: every
// record entering the pipeline passes through Apply, and values supplied for
// those fields by any other source are discarded.
package derive

import (
	"github.com/shopspring/decimal"

	"github.com/dualcred/ledger-cli/internal/model"
)

var (
	hundred     = decimal.NewFromInt(100)
	invoiceRate = decimal.RequireFromString("0.032")
)

// Apply recomputes the four derived fields from the record's raw fields,
// rounding to two places after each derivation. Recomputing is idempotent.
func Apply(r *model.Record) {
	dualcred := r.Transacted.
		Sub(r.Released).
		Sub(r.InterestRate).
		Sub(r.Commission).
		Sub(r.Extra).
		Round(2)
	r.Dualcred = dualcred

	// A non-positive denominator forces the percentage to zero rather than
	// an error or infinity.
	if r.Transacted.IsPositive() {
		r.PctTransacted = dualcred.Div(r.Transacted).Mul(hundred).Round(2)
	} else {
		r.PctTransacted = decimal.Zero
	}
	if r.Released.IsPositive() {
		r.PctReleased = dualcred.Div(r.Released).Mul(hundred).Round(2)
	} else {
		r.PctReleased = decimal.Zero
	}

	r.Invoice = r.Transacted.Mul(invoiceRate).Round(2)
}

// ApplyAll recomputes derived fields for every record in the set.
func ApplyAll(set *model.RecordSet) {
	for i := range set.Records {
		Apply(&set.Records[i])
	}
}
