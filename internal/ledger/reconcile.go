package ledger

import (
	"sort"
	"strings"

	"github.com/dualcred/ledger-cli/internal/derive"
	"github.com/dualcred/ledger-cli/internal/model"
)

// MergeResult is the outcome of reconciling an incoming batch into the
// existing record set.
type MergeResult struct {
	Set            *model.RecordSet
	Added          int
	Duplicates     int
	Touched        []model.Partition
	NothingToMerge bool
}

// Reconcile merges incoming records into the existing set. Incoming records
// get defaults and a full re-derivation first (derived fields supplied by
// callers are never trusted), every record's partition is reassigned from
// its date's month, and within each partition the concatenation of existing
// then incoming records is deduplicated on (date, beneficiary, transacted
// value) keeping the first occurrence, then sorted by date ascending.
//
// The dedup key deliberately ignores released value, commission, and extra:
// two records differing only in fees collapse to the first one. Preserved
// legacy policy.
func Reconcile(existing, incoming *model.RecordSet, defaultAgent string) *MergeResult {
	if existing == nil {
		existing = model.NewRecordSet()
	}
	if incoming.Len() == 0 {
		return &MergeResult{Set: existing, NothingToMerge: true}
	}

	inc := append([]model.Record(nil), incoming.Records...)
	for i := range inc {
		if inc[i].Date.IsZero() {
			inc[i].Date = model.DefaultDate
		}
		if strings.TrimSpace(inc[i].Agent) == "" {
			inc[i].Agent = defaultAgent
		}
		derive.Apply(&inc[i])
	}

	// Partition assignment always follows the record's date: an incoming
	// correction whose date moved month must move partitions too.
	byPartition := make(map[model.Partition][]model.Record, 12)
	all := make([]model.Record, 0, len(existing.Records)+len(inc))
	all = append(all, existing.Records...)
	all = append(all, inc...)
	for i := range all {
		all[i].Partition = model.PartitionOf(all[i].Date)
		p := all[i].Partition
		byPartition[p] = append(byPartition[p], all[i])
	}

	touched := make(map[model.Partition]bool, len(inc))
	for _, r := range inc {
		touched[model.PartitionOf(r.Date)] = true
	}
	// A stored record whose date belongs to another month changes sheets:
	// both the sheet it leaves and the sheet it lands in must be rewritten,
	// or the old sheet keeps a stale copy.
	for _, r := range existing.Records {
		if p := model.PartitionOf(r.Date); r.Partition != p {
			if r.Partition.Valid() {
				touched[r.Partition] = true
			}
			touched[p] = true
		}
	}

	merged := model.NewRecordSet()
	merged.ExtraCols = append([]string(nil), existing.ExtraCols...)
	for _, c := range incoming.ExtraCols {
		merged.AddExtraCol(c)
	}

	duplicates := 0
	for _, label := range model.Partitions() {
		records := byPartition[label]
		seen := make(map[string]bool, len(records))
		kept := records[:0]
		for _, r := range records {
			key := r.Key()
			if seen[key] {
				duplicates++
				continue
			}
			seen[key] = true
			kept = append(kept, r)
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Date.Before(kept[j].Date)
		})
		merged.Append(kept...)
	}

	result := &MergeResult{
		Set:        merged,
		Added:      merged.Len() - existing.Len(),
		Duplicates: duplicates,
	}
	for _, label := range model.Partitions() {
		if touched[label] {
			result.Touched = append(result.Touched, label)
		}
	}
	return result
}
