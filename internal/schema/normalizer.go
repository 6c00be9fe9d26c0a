package schema

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/dualcred/ledger-cli/internal/model"
)

// SynonymRule maps a drifted header to its canonical name. Since records the
// schema version that introduced the rule; rules are only ever added, never
// removed, so older partition content keeps resolving.
type SynonymRule struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Since int    `yaml:"since"`
}

// builtinSynonyms is the versioned synonym table accumulated across the
// ledger's schema iterations.
var builtinSynonyms = []SynonymRule{
	{From: "qtd_parcelas", To: model.ColInstallments, Since: 1},
	{From: "comissao_alessandro", To: model.ColCommission, Since: 2},
	{From: "extra_alessandro", To: model.ColExtra, Since: 2},
	{From: "porcentagem_alessandro", To: model.ColPctAgent, Since: 2},
}

// builtinExclusions are columns dropped by policy: legacy settlement,
// withdrawal, and card-machine bookkeeping, plus stored percentage columns
// that are recomputed from raw fields on every load.
var builtinExclusions = []string{
	"acerto_alessandro",
	"acerto_alesandro",
	"retirada_felipe",
	"maquina",
	model.ColPctTrans,
	model.ColPctReleased,
}

// Normalizer canonicalizes a table's headers and reconciles synonyms,
// exclusions, and missing required columns. Normalization never fails.
type Normalizer struct {
	rules        []SynonymRule
	excluded     map[string]bool
	defaultAgent string
}

// NewNormalizer returns a Normalizer carrying the built-in synonym table.
// defaultAgent is injected for rows with no agent column or value.
func NewNormalizer(defaultAgent string) *Normalizer {
	n := &Normalizer{
		rules:        append([]SynonymRule(nil), builtinSynonyms...),
		excluded:     make(map[string]bool),
		defaultAgent: defaultAgent,
	}
	for _, c := range builtinExclusions {
		n.excluded[c] = true
	}
	return n
}

// DefaultAgent returns the fallback agent identity.
func (n *Normalizer) DefaultAgent() string {
	return n.defaultAgent
}

// AddSynonym appends a rule to the synonym table.
func (n *Normalizer) AddSynonym(from, to string, since int) {
	n.rules = append(n.rules, SynonymRule{From: Canonicalize(from), To: to, Since: since})
}

// Exclude adds columns to the drop list.
func (n *Normalizer) Exclude(names ...string) {
	for _, name := range names {
		n.excluded[Canonicalize(name)] = true
	}
}

// overlay is the YAML shape of a synonym overlay file.
type overlay struct {
	Version    int           `yaml:"version"`
	Synonyms   []SynonymRule `yaml:"synonyms"`
	Exclusions []string      `yaml:"exclusions"`
}

// LoadOverlay extends the synonym table from a YAML file. A missing path is
// not an error; a malformed file is.
func (n *Normalizer) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "schema: read overlay %s", path)
	}
	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return eris.Wrapf(err, "schema: parse overlay %s", path)
	}
	for _, r := range o.Synonyms {
		since := r.Since
		if since == 0 {
			since = o.Version
		}
		n.AddSynonym(r.From, r.To, since)
	}
	n.Exclude(o.Exclusions...)
	return nil
}

// Normalize canonicalizes the table in place: headers are canonicalized
// (first occurrence wins on collision), synonym columns are merged into
// their canonical columns, excluded columns are dropped, and required
// columns that are absent are injected with type-appropriate defaults.
// Applying Normalize to an already-normalized table is a no-op.
func (n *Normalizer) Normalize(t *RawTable) {
	for i, h := range t.Headers {
		t.Headers[i] = Canonicalize(h)
	}
	n.dropDuplicates(t)
	n.mergeSynonyms(t)
	n.dropExcluded(t)
	n.injectRequired(t)
}

// dropDuplicates keeps the first occurrence of each canonical header.
func (n *Normalizer) dropDuplicates(t *RawTable) {
	seen := make(map[string]bool, len(t.Headers))
	keep := make([]int, 0, len(t.Headers))
	for i, h := range t.Headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		keep = append(keep, i)
	}
	if len(keep) != len(t.Headers) {
		t.project(keep)
	}
}

// mergeSynonyms folds each drifted column into its canonical column. When
// both exist, the canonical column's values win and the synonym fills gaps;
// otherwise the synonym column is renamed.
func (n *Normalizer) mergeSynonyms(t *RawTable) {
	for _, rule := range n.rules {
		from := t.ColumnIndex(rule.From)
		if from < 0 {
			continue
		}
		to := t.ColumnIndex(rule.To)
		if to < 0 {
			t.Headers[from] = rule.To
			continue
		}
		for r := range t.Rows {
			if t.Cell(r, to) == "" {
				if v := t.Cell(r, from); v != "" {
					for len(t.Rows[r]) <= to {
						t.Rows[r] = append(t.Rows[r], "")
					}
					t.Rows[r][to] = v
				}
			}
		}
		keep := make([]int, 0, len(t.Headers)-1)
		for i := range t.Headers {
			if i != from {
				keep = append(keep, i)
			}
		}
		t.project(keep)
	}
}

func (n *Normalizer) dropExcluded(t *RawTable) {
	keep := make([]int, 0, len(t.Headers))
	for i, h := range t.Headers {
		if !n.excluded[h] {
			keep = append(keep, i)
		}
	}
	if len(keep) != len(t.Headers) {
		t.project(keep)
	}
}

// injectRequired adds any missing required column: empty for the date column
// (the loader substitutes the default date), the fallback agent for the
// agent column, zero for numerics.
func (n *Normalizer) injectRequired(t *RawTable) {
	for _, col := range model.RequiredColumns {
		if t.ColumnIndex(col) >= 0 {
			continue
		}
		switch col {
		case model.ColDate, model.ColBeneficiary:
			t.addColumn(col, "")
		case model.ColAgent:
			t.addColumn(col, n.defaultAgent)
		default:
			t.addColumn(col, "0")
		}
	}
}
