package main

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dualcred/ledger-cli/internal/journal"
	"github.com/dualcred/ledger-cli/internal/ledger"
	"github.com/dualcred/ledger-cli/internal/schema"
	"github.com/dualcred/ledger-cli/internal/workbook"
)

// engineEnv bundles the wired engine and its journal for one command run.
type engineEnv struct {
	Engine  *ledger.Engine
	Journal *journal.Journal
}

// initEngine wires store, normalizer, and journal from config. The journal
// is best-effort: if it cannot be opened the engine runs without it.
func initEngine(ctx context.Context) (*engineEnv, error) {
	store := workbook.NewStore(cfg.Store.Path)

	norm := schema.NewNormalizer(cfg.Ledger.DefaultAgent)
	if cfg.Ledger.SynonymOverlay != "" {
		if err := norm.LoadOverlay(cfg.Ledger.SynonymOverlay); err != nil {
			return nil, err
		}
	}

	var jrnl *journal.Journal
	if cfg.Store.JournalPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.JournalPath), 0o755); err != nil {
			zap.L().Warn("journal directory unavailable", zap.Error(err))
		} else if j, err := journal.Open(cfg.Store.JournalPath); err != nil {
			zap.L().Warn("journal unavailable", zap.Error(err))
		} else if err := j.Migrate(ctx); err != nil {
			zap.L().Warn("journal migration failed", zap.Error(err))
			j.Close()
		} else {
			jrnl = j
		}
	}

	return &engineEnv{
		Engine:  ledger.New(store, norm, jrnl),
		Journal: jrnl,
	}, nil
}

// Close releases the environment's resources.
func (e *engineEnv) Close() {
	if e.Journal != nil {
		e.Journal.Close()
	}
}
