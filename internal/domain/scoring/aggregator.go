// Package scoring turns reconciled evaluation rows into per-player and
// per-team figures. Every function here is a pure reduction over its input;
// nothing survives past one call.
package scoring

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/reconcile"
)

// Mode selects the aggregation view.
type Mode int

const (
	// PerDate aggregates rows already filtered to one match date.
	PerDate Mode = iota
	// AllTime aggregates every row and also counts distinct dates.
	AllTime
)

func (m Mode) String() string {
	switch m {
	case PerDate:
		return "per_date"
	case AllTime:
		return "all_time"
	default:
		return "unknown"
	}
}

type accumulator struct {
	sums  [model.DimensionCount]float64
	count int
	dates map[string]struct{}
}

// Aggregate produces one PlayerAggregate per distinct non-empty player name
// in rows, sorted by name. A player rated twice under one submission id
// counts once. selfRows must cover the same scope as rows; they are
// reconciled first-seen before averaging. ctx only carries the span.
func Aggregate(
	ctx context.Context,
	rows []model.EvaluationRow,
	selfRows []model.SelfAssessmentRow,
	mode Mode,
	opts ...Option,
) []model.PlayerAggregate {
	o := apply(opts)
	_, span := otel.Tracer("scoring").Start(ctx, "scoring.Aggregate",
		trace.WithAttributes(
			attribute.String("mode", mode.String()),
			attribute.Int("rows", len(rows)),
			attribute.Int("self_rows", len(selfRows)),
		))
	defer span.End()

	rated, repeated := reconcile.FirstRatings(rows)

	acc := make(map[string]*accumulator)
	skipped := 0
	for _, row := range rated {
		if row.Player == "" {
			skipped++
			continue
		}
		a, ok := acc[row.Player]
		if !ok {
			a = &accumulator{}
			if mode == AllTime {
				a.dates = make(map[string]struct{})
			}
			acc[row.Player] = a
		}
		for i, v := range row.Dimensions() {
			a.sums[i] += v
		}
		a.count++
		if a.dates != nil && row.MatchDate != "" {
			a.dates[row.MatchDate] = struct{}{}
		}
	}

	selfScores, dropped := selfScoresByPlayer(selfRows)

	out := make([]model.PlayerAggregate, 0, len(acc))
	for name, a := range acc {
		p := model.PlayerAggregate{Player: name, SampleCount: a.count}
		if a.dates != nil {
			p.DistinctDateCount = len(a.dates)
		}
		var means [model.DimensionCount]float64
		for i, sum := range a.sums {
			means[i] = Round2(sum / float64(a.count))
		}
		p.Technique = means[0]
		p.Positioning = means[1]
		p.Engagement = means[2]
		p.Focus = means[3]
		p.Teamplay = means[4]
		p.PositionMetric = means[5]
		p.Overall = Overall(means)

		if avg, ok := mean(selfScores[name]); ok {
			p.SelfAverage = ptr(Round2(avg))
			p.SelfVsOthersDelta = ptr(Round2(*p.SelfAverage - p.Overall))
		}
		out = append(out, p)
	}

	sortByName(out, o.locale)

	span.SetAttributes(
		attribute.Int("players", len(out)),
		attribute.Int("rows_skipped", skipped),
		attribute.Int("rating_duplicates", repeated),
		attribute.Int("self_duplicates", dropped),
	)
	return out
}

// Overall is the rounded mean of already rounded dimension means, so it can
// be reproduced from the published figures.
func Overall(means [model.DimensionCount]float64) float64 {
	var sum float64
	for _, m := range means {
		sum += m
	}
	return Round2(sum / model.DimensionCount)
}

func selfScoresByPlayer(rows []model.SelfAssessmentRow) (map[string][]float64, int) {
	first, dropped := reconcile.FirstSelfAssessments(rows)
	scores := make(map[string][]float64)
	for _, row := range first {
		if row.SelfPlayer == "" {
			continue
		}
		scores[row.SelfPlayer] = append(scores[row.SelfPlayer], row.SelfScore)
	}
	return scores, dropped
}

// RankByOverall returns a copy of players ordered by overall descending,
// falling back to name order.
func RankByOverall(players []model.PlayerAggregate, opts ...Option) []model.PlayerAggregate {
	o := apply(opts)
	c := collate.New(o.locale)
	out := make([]model.PlayerAggregate, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		return nameLess(c, out[i].Player, out[j].Player)
	})
	return out
}

// SortNames orders names the same way Aggregate orders players.
func SortNames(names []string, opts ...Option) {
	o := apply(opts)
	c := collate.New(o.locale)
	sort.SliceStable(names, func(i, j int) bool {
		return nameLess(c, names[i], names[j])
	})
}

// A Collator keeps internal buffers, so each call builds its own.
func sortByName(players []model.PlayerAggregate, tag language.Tag) {
	c := collate.New(tag)
	sort.SliceStable(players, func(i, j int) bool {
		return nameLess(c, players[i].Player, players[j].Player)
	})
}

func nameLess(c *collate.Collator, a, b string) bool {
	if d := c.CompareString(a, b); d != 0 {
		return d < 0
	}
	return a < b
}
