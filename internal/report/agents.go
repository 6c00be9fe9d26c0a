// Package report aggregates the ledger for the agent-analysis views.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dualcred/ledger-cli/internal/model"
)

// Filter narrows a record set by date range and agent. Zero values mean
// "no bound".
type Filter struct {
	From  time.Time
	To    time.Time
	Agent string
}

// Apply returns the records matching the filter, preserving order and the
// set's passthrough columns.
func (f Filter) Apply(set *model.RecordSet) *model.RecordSet {
	out := model.NewRecordSet()
	out.ExtraCols = append([]string(nil), set.ExtraCols...)
	for _, r := range set.Records {
		if !f.From.IsZero() && r.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.Date.After(f.To) {
			continue
		}
		if f.Agent != "" && r.Agent != f.Agent {
			continue
		}
		out.Append(r)
	}
	return out
}

// AgentTotals aggregates one agent's activity.
type AgentTotals struct {
	Agent         string          `json:"agent"`
	Transactions  int             `json:"transactions"`
	Beneficiaries int             `json:"beneficiaries"`
	Transacted    decimal.Decimal `json:"transacted"`
	Released      decimal.Decimal `json:"released"`
	Commission    decimal.Decimal `json:"commission"`
	Extra         decimal.Decimal `json:"extra"`
	Dualcred      decimal.Decimal `json:"dualcred"`
}

// Summary is the consolidated agent report.
type Summary struct {
	Agents  []AgentTotals `json:"agents"`
	Overall AgentTotals   `json:"overall"`
}

// Summarize filters the set and aggregates totals per agent plus an overall
// consolidation, agents sorted by name.
func Summarize(set *model.RecordSet, filter Filter) *Summary {
	filtered := filter.Apply(set)

	perAgent := make(map[string]*AgentTotals)
	beneficiaries := make(map[string]map[string]bool)
	overall := AgentTotals{Agent: "all"}
	allBeneficiaries := make(map[string]bool)

	for _, r := range filtered.Records {
		t, ok := perAgent[r.Agent]
		if !ok {
			t = &AgentTotals{Agent: r.Agent}
			perAgent[r.Agent] = t
			beneficiaries[r.Agent] = make(map[string]bool)
		}
		accumulate(t, r)
		accumulate(&overall, r)
		if r.Beneficiary != "" {
			beneficiaries[r.Agent][r.Beneficiary] = true
			allBeneficiaries[r.Beneficiary] = true
		}
	}

	summary := &Summary{Overall: overall}
	summary.Overall.Beneficiaries = len(allBeneficiaries)
	for agent, t := range perAgent {
		t.Beneficiaries = len(beneficiaries[agent])
		summary.Agents = append(summary.Agents, *t)
	}
	sort.Slice(summary.Agents, func(i, j int) bool {
		return summary.Agents[i].Agent < summary.Agents[j].Agent
	})
	return summary
}

func accumulate(t *AgentTotals, r model.Record) {
	t.Transactions++
	t.Transacted = t.Transacted.Add(r.Transacted)
	t.Released = t.Released.Add(r.Released)
	t.Commission = t.Commission.Add(r.Commission)
	t.Extra = t.Extra.Add(r.Extra)
	t.Dualcred = t.Dualcred.Add(r.Dualcred)
}
