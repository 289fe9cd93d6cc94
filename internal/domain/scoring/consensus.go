package scoring

import (
	"math"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/reconcile"
)

// SubmittedTeamOverall averages the first-seen team rating of each
// submission. Non-positive values mean "not provided" and are left out.
// Returns nil when no submission contributed.
func SubmittedTeamOverall(rows []model.EvaluationRow) *float64 {
	values := make([]float64, 0)
	for _, row := range reconcile.FirstPerSubmission(rows) {
		v := row.TeamOverall
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if m, ok := mean(values); ok {
		return ptr(Round2(m))
	}
	return nil
}

// ComputedTeamOverall gives every player one vote regardless of how often
// they were rated. Returns nil for an empty set.
func ComputedTeamOverall(players []model.PlayerAggregate) *float64 {
	values := make([]float64, len(players))
	for i, p := range players {
		values[i] = p.Overall
	}
	if m, ok := mean(values); ok {
		return ptr(Round2(m))
	}
	return nil
}

// ConsensusDelta is submitted minus computed; nil if either is nil.
func ConsensusDelta(submitted, computed *float64) *float64 {
	if submitted == nil || computed == nil {
		return nil
	}
	return ptr(Round2(*submitted - *computed))
}

// Consensus derives the per-date team figures.
func Consensus(rows []model.EvaluationRow, players []model.PlayerAggregate) model.TeamConsensus {
	submitted := SubmittedTeamOverall(rows)
	computed := ComputedTeamOverall(players)
	return model.TeamConsensus{
		SubmittedTeamOverall: submitted,
		ComputedTeamOverall:  computed,
		ConsensusDelta:       ConsensusDelta(submitted, computed),
	}
}
