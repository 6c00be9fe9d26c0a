// Package ledger is the normalization, derivation, and reconciliation
// engine. It loads the twelve monthly partitions into a unified record set,
// merges incoming batches without duplication, and drives persistence.
package ledger

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dualcred/ledger-cli/internal/derive"
	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/schema"
	"github.com/dualcred/ledger-cli/internal/workbook"
)

// LoadResult carries the loaded record set plus per-partition diagnostics.
// Recoverable problems (missing store, unreadable sheet, empty partition)
// land in Diagnostics instead of erroring out; callers decide what an empty
// or partial load means for them.
type LoadResult struct {
	Set         *model.RecordSet
	Diagnostics []string
}

// Load reads each of the twelve fixed partitions, canonicalizes headers,
// coerces rows into records tagged with their source partition, and
// recomputes all derived fields. A missing store yields an empty set.
func Load(store *workbook.Store, norm *schema.Normalizer) (*LoadResult, error) {
	res := &LoadResult{Set: model.NewRecordSet()}

	if !store.Exists() {
		res.Diagnostics = append(res.Diagnostics, "store absent, treating as empty ledger")
		zap.L().Info("ledger store absent", zap.String("path", store.Path()))
		return res, nil
	}

	for _, label := range model.Partitions() {
		table, err := store.ReadPartition(label)
		if err != nil {
			if eris.Is(err, workbook.ErrMissing) {
				res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("partition %s: sheet missing, skipped", label))
				continue
			}
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("partition %s: unreadable, skipped: %v", label, err))
			zap.L().Warn("partition unreadable",
				zap.String("partition", string(label)),
				zap.Error(err),
			)
			continue
		}

		table.DropEmptyColumns()
		norm.Normalize(table)
		records := coerceRows(table, label, norm.DefaultAgent(), res.Set)
		if len(records) == 0 {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("partition %s: no records", label))
			continue
		}
		res.Set.Append(records...)
	}

	derive.ApplyAll(res.Set)
	return res, nil
}

// coerceRows converts a normalized table's rows into records. Malformed
// values coerce to the documented defaults; unknown columns ride along as
// passthrough attributes and are registered on the set.
func coerceRows(t *schema.RawTable, label model.Partition, defaultAgent string, set *model.RecordSet) []model.Record {
	type colRef struct {
		name string
		idx  int
	}
	var extras []colRef
	for i, h := range t.Headers {
		if !model.IsKnownColumn(h) {
			extras = append(extras, colRef{name: h, idx: i})
			set.AddExtraCol(h)
		}
	}

	idx := func(name string) int { return t.ColumnIndex(name) }
	dateIdx := idx(model.ColDate)
	benIdx := idx(model.ColBeneficiary)
	agentIdx := idx(model.ColAgent)

	records := make([]model.Record, 0, len(t.Rows))
	for r := range t.Rows {
		rec := model.Record{
			Date:         schema.ParseDate(t.Cell(r, dateIdx)),
			Beneficiary:  strings.TrimSpace(t.Cell(r, benIdx)),
			Agent:        strings.TrimSpace(t.Cell(r, agentIdx)),
			Transacted:   schema.ParseDecimal(t.Cell(r, idx(model.ColTransacted))),
			Released:     schema.ParseDecimal(t.Cell(r, idx(model.ColReleased))),
			InterestRate: schema.ParseDecimal(t.Cell(r, idx(model.ColInterestRate))),
			Commission:   schema.ParseDecimal(t.Cell(r, idx(model.ColCommission))),
			Extra:        schema.ParseDecimal(t.Cell(r, idx(model.ColExtra))),
			PctAgent:     schema.ParseDecimal(t.Cell(r, idx(model.ColPctAgent))),
			Installments: schema.ParseDecimal(t.Cell(r, idx(model.ColInstallments))),
			Partition:    label,
		}
		if rec.Agent == "" {
			rec.Agent = defaultAgent
		}
		if len(extras) > 0 {
			rec.Extras = make(map[string]string, len(extras))
			for _, e := range extras {
				rec.Extras[e.name] = t.Cell(r, e.idx)
			}
		}
		records = append(records, rec)
	}
	return records
}
