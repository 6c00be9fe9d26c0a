package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDate is substituted for any missing or unparsable transaction date.
var DefaultDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Record is one ledger transaction. The four derived fields (Dualcred,
// Invoice, PctTransacted, PctReleased) are owned by the derive package and
// are recomputed from the raw fields on every pass through the pipeline; they
// are never authoritative input.
type Record struct {
	Date         time.Time       `json:"date"`
	Beneficiary  string          `json:"beneficiary,omitempty"`
	Agent        string          `json:"agent"`
	Transacted   decimal.Decimal `json:"transacted_value"`
	Released     decimal.Decimal `json:"released_value"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Commission   decimal.Decimal `json:"commission"`
	Extra        decimal.Decimal `json:"extra"`
	PctAgent     decimal.Decimal `json:"pct_agent"`
	Installments decimal.Decimal `json:"installment_count"`

	// Derived.
	Dualcred      decimal.Decimal `json:"dualcred_value"`
	Invoice       decimal.Decimal `json:"invoice_value"`
	PctTransacted decimal.Decimal `json:"pct_transacted"`
	PctReleased   decimal.Decimal `json:"pct_released"`

	Partition Partition `json:"partition"`

	// Extras carries unknown passthrough columns, keyed by canonical name.
	Extras map[string]string `json:"extras,omitempty"`
}

// Key is the reconciliation dedup key. It deliberately excludes released
// value, commission, and extra: two records on the same date, beneficiary,
// and transacted amount are treated as the same transaction even when fees
// differ. Legacy collision policy, preserved as-is.
func (r Record) Key() string {
	return r.Date.Format("2006-01-02") + "\x1f" + r.Beneficiary + "\x1f" + r.Transacted.StringFixed(2)
}

// RecordSet is an ordered collection of records plus the ordered list of
// passthrough column names seen during loading.
type RecordSet struct {
	Records   []Record
	ExtraCols []string
}

// NewRecordSet returns an empty record set.
func NewRecordSet() *RecordSet {
	return &RecordSet{}
}

// Len returns the number of records.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Append adds records to the set.
func (s *RecordSet) Append(records ...Record) {
	s.Records = append(s.Records, records...)
}

// AddExtraCol registers a passthrough column, preserving first-seen order.
func (s *RecordSet) AddExtraCol(name string) {
	for _, c := range s.ExtraCols {
		if c == name {
			return
		}
	}
	s.ExtraCols = append(s.ExtraCols, name)
}

// ByPartition groups records by the partition their date's month maps to.
// The stored Partition field is provenance only: a record read from one
// sheet whose date belongs to another month groups under the date's month,
// and the returned records carry the corrected label. Every partition is
// present in the result, empty slices included, so writers can emit
// header-only sheets for months with no activity.
func (s *RecordSet) ByPartition() map[Partition][]Record {
	out := make(map[Partition][]Record, 12)
	for _, p := range Partitions() {
		out[p] = nil
	}
	if s == nil {
		return out
	}
	for _, r := range s.Records {
		p := PartitionOf(r.Date)
		r.Partition = p
		out[p] = append(out[p], r)
	}
	return out
}

// Merge appends another set's records and extra columns.
func (s *RecordSet) Merge(other *RecordSet) {
	if other == nil {
		return
	}
	s.Records = append(s.Records, other.Records...)
	for _, c := range other.ExtraCols {
		s.AddExtraCol(c)
	}
}
