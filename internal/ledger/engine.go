package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dualcred/ledger-cli/internal/journal"
	"github.com/dualcred/ledger-cli/internal/model"
	"github.com/dualcred/ledger-cli/internal/schema"
	"github.com/dualcred/ledger-cli/internal/workbook"
)

// Engine ties the pipeline stages together over one store. It owns no
// record-set state between calls: every operation loads, transforms, and
// persists explicitly. Writes are serialized internally; the store has no
// locking of its own.
type Engine struct {
	store   *workbook.Store
	norm    *schema.Normalizer
	journal *journal.Journal

	writeMu sync.Mutex
}

// New returns an engine over the given store. jrnl may be nil.
func New(store *workbook.Store, norm *schema.Normalizer, jrnl *journal.Journal) *Engine {
	return &Engine{store: store, norm: norm, journal: jrnl}
}

// Store returns the underlying workbook store.
func (e *Engine) Store() *workbook.Store {
	return e.store
}

// Bootstrap ensures the store directory and skeleton workbook exist.
func (e *Engine) Bootstrap(ctx context.Context) error {
	err := e.store.Bootstrap()
	e.record(ctx, journal.Op{Kind: journal.KindBootstrap, Err: err})
	return err
}

// Load is the read contract: the full, normalized, derived record set plus
// load diagnostics.
func (e *Engine) Load(ctx context.Context) (*LoadResult, error) {
	start := time.Now()
	res, err := Load(e.store, e.norm)
	op := journal.Op{Kind: journal.KindLoad, Duration: time.Since(start), Err: err}
	if res != nil {
		op.RecordsOut = res.Set.Len()
	}
	e.record(ctx, op)
	return res, err
}

// Submit is the write contract: reconcile a batch of new or changed records
// into the persisted set and update only the touched partitions.
func (e *Engine) Submit(ctx context.Context, batch *model.RecordSet) (*MergeResult, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	start := time.Now()
	loaded, err := Load(e.store, e.norm)
	if err != nil {
		e.record(ctx, journal.Op{Kind: journal.KindMerge, Duration: time.Since(start), Err: err})
		return nil, err
	}

	merge := Reconcile(loaded.Set, batch, e.norm.DefaultAgent())
	if merge.NothingToMerge {
		zap.L().Info("nothing to merge")
		e.record(ctx, journal.Op{Kind: journal.KindMerge, Duration: time.Since(start)})
		return merge, nil
	}

	byPartition := merge.Set.ByPartition()
	for _, label := range merge.Touched {
		if err := e.store.UpdatePartition(label, byPartition[label], merge.Set.ExtraCols); err != nil {
			e.record(ctx, journal.Op{Kind: journal.KindMerge, Duration: time.Since(start), Err: err})
			return nil, err
		}
	}

	zap.L().Info("batch merged",
		zap.Int("incoming", batch.Len()),
		zap.Int("added", merge.Added),
		zap.Int("duplicates", merge.Duplicates),
		zap.Int("partitions", len(merge.Touched)),
	)
	e.record(ctx, journal.Op{
		Kind:       journal.KindMerge,
		RecordsIn:  batch.Len(),
		RecordsOut: merge.Set.Len(),
		Partitions: len(merge.Touched),
		Duration:   time.Since(start),
	})
	return merge, nil
}

// Rebuild regenerates the whole store from its own normalized contents:
// load, re-derive, full atomic rewrite. Used to migrate drifted historical
// partitions onto the current schema.
func (e *Engine) Rebuild(ctx context.Context) (*LoadResult, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	start := time.Now()
	res, err := Load(e.store, e.norm)
	if err == nil {
		err = e.store.Rebuild(res.Set)
	}
	op := journal.Op{Kind: journal.KindRebuild, Duration: time.Since(start), Err: err}
	if res != nil {
		op.RecordsOut = res.Set.Len()
	}
	e.record(ctx, op)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Export serializes an already-filtered record set into workbook bytes with
// the persisted layout, without touching the store.
func (e *Engine) Export(ctx context.Context, set *model.RecordSet) ([]byte, error) {
	start := time.Now()
	data, err := workbook.Export(set)
	e.record(ctx, journal.Op{
		Kind:      journal.KindExport,
		RecordsIn: set.Len(),
		Duration:  time.Since(start),
		Err:       err,
	})
	return data, err
}

// record journals an operation. Journaling is best-effort: a journal failure
// is logged and never fails the ledger operation itself.
func (e *Engine) record(ctx context.Context, op journal.Op) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(ctx, op); err != nil {
		zap.L().Warn("journal write failed", zap.Error(err))
	}
}
