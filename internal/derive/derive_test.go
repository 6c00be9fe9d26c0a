package derive

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dualcred/ledger-cli/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApply(t *testing.T) {
	r := model.Record{
		Transacted:   dec("1000.00"),
		Released:     dec("800.00"),
		InterestRate: dec("20.00"),
		Commission:   dec("30.00"),
		Extra:        dec("10.00"),
	}
	Apply(&r)

	assert.Equal(t, "140.00", r.Dualcred.StringFixed(2))
	assert.Equal(t, "14.00", r.PctTransacted.StringFixed(2))
	assert.Equal(t, "17.50", r.PctReleased.StringFixed(2))
	assert.Equal(t, "32.00", r.Invoice.StringFixed(2))
}

func TestApply_ZeroDenominators(t *testing.T) {
	r := model.Record{}
	Apply(&r)

	assert.Equal(t, "0.00", r.Dualcred.StringFixed(2))
	assert.Equal(t, "0.00", r.PctTransacted.StringFixed(2))
	assert.Equal(t, "0.00", r.PctReleased.StringFixed(2))
	assert.Equal(t, "0.00", r.Invoice.StringFixed(2))
}

func TestApply_NegativeDenominatorForcesZero(t *testing.T) {
	r := model.Record{
		Transacted: dec("-500.00"),
		Released:   dec("-100.00"),
	}
	Apply(&r)

	assert.Equal(t, "0.00", r.PctTransacted.StringFixed(2))
	assert.Equal(t, "0.00", r.PctReleased.StringFixed(2))
}

func TestApply_RoundsToTwoPlaces(t *testing.T) {
	r := model.Record{
		Transacted: dec("100.00"),
		Released:   dec("66.67"),
	}
	Apply(&r)

	// dualcred = 33.33; 33.33/66.67*100 = 49.9925... -> 49.99
	assert.Equal(t, "33.33", r.Dualcred.StringFixed(2))
	assert.Equal(t, "49.99", r.PctReleased.StringFixed(2))
	assert.Equal(t, "3.20", r.Invoice.StringFixed(2))
}

func TestApply_Idempotent(t *testing.T) {
	r := model.Record{
		Transacted:   dec("1000.00"),
		Released:     dec("800.00"),
		InterestRate: dec("20.00"),
		Commission:   dec("30.00"),
		Extra:        dec("10.00"),
	}
	Apply(&r)
	first := r
	Apply(&r)

	assert.True(t, first.Dualcred.Equal(r.Dualcred))
	assert.True(t, first.PctTransacted.Equal(r.PctTransacted))
	assert.True(t, first.PctReleased.Equal(r.PctReleased))
	assert.True(t, first.Invoice.Equal(r.Invoice))
}

func TestApply_OverwritesSuppliedDerivedValues(t *testing.T) {
	r := model.Record{
		Transacted: dec("1000.00"),
		Dualcred:   dec("9999.99"),
		Invoice:    dec("9999.99"),
	}
	Apply(&r)

	assert.Equal(t, "1000.00", r.Dualcred.StringFixed(2))
	assert.Equal(t, "32.00", r.Invoice.StringFixed(2))
}

func TestApplyAll(t *testing.T) {
	set := model.NewRecordSet()
	set.Append(
		model.Record{Transacted: dec("1000.00"), Released: dec("800.00"), InterestRate: dec("20.00"), Commission: dec("30.00"), Extra: dec("10.00")},
		model.Record{},
	)
	ApplyAll(set)

	assert.Equal(t, "140.00", set.Records[0].Dualcred.StringFixed(2))
	assert.Equal(t, "0.00", set.Records[1].Dualcred.StringFixed(2))
}
