package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/okian/squadrate/internal/adapters/rowstore"
	"github.com/okian/squadrate/internal/domain/comments"
	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/reconcile"
	"github.com/okian/squadrate/internal/domain/scoring"
	"github.com/okian/squadrate/internal/domain/types"
	"github.com/okian/squadrate/pkg/logger"
	"github.com/okian/squadrate/pkg/metrics"
)

var tracer = otel.Tracer("service")

// DateSummary builds the per-date view for date (YYYY-MM-DD as stored).
func (s *Service) DateSummary(ctx context.Context, date string) (types.DateSummary, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return types.DateSummary{}, ErrMissingDate
	}
	if err := s.ready(); err != nil {
		return types.DateSummary{}, err
	}

	ctx, span := tracer.Start(ctx, "Service.DateSummary", trace.WithAttributes(attribute.String("date", date)))
	defer span.End()
	start := time.Now()

	evals, selfs, err := s.fetchBoth(ctx)
	if err != nil {
		s.fail(ctx, span, "date summary", err)
		return types.DateSummary{}, err
	}

	evals = onDate(evals, func(r model.EvaluationRow) string { return r.MatchDate }, date)
	selfs = onDate(selfs, func(r model.SelfAssessmentRow) string { return r.MatchDate }, date)
	selfs = s.reconcileSelf(selfs)
	s.countSkipped(evals)

	players := scoring.Aggregate(ctx, evals, selfs, scoring.PerDate, scoring.WithLocale(s.locale))
	team := scoring.Consensus(evals, players)
	notes := comments.Curate(evals, selfs,
		comments.WithDismissiveTokens(s.dismissive...),
		comments.WithUnknownAuthor(s.unknownAuthor),
	)
	metrics.RecordCommentsFiltered(comments.Dropped(evals, notes))

	out := types.DateSummary{
		Date:                 date,
		TotalSubmissions:     countSubmissions(evals),
		SubmittedTeamOverall: team.SubmittedTeamOverall,
		ComputedTeamOverall:  team.ComputedTeamOverall,
		ConsensusDelta:       team.ConsensusDelta,
		Players:              make([]types.DatePlayerRow, len(players)),
		Comments:             notes,
	}
	for i, p := range players {
		out.Players[i] = types.NewDatePlayerRow(p)
	}

	s.dateSummaries.Add(1)
	metrics.RecordSummary("date", len(players), float64(time.Since(start).Milliseconds()))
	span.SetAttributes(
		attribute.Int("players", len(players)),
		attribute.Int("submissions", out.TotalSubmissions),
	)
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// AllTimeSummary aggregates every row of both tables.
func (s *Service) AllTimeSummary(ctx context.Context) (types.AllTimeSummary, error) {
	if err := s.ready(); err != nil {
		return types.AllTimeSummary{}, err
	}

	ctx, span := tracer.Start(ctx, "Service.AllTimeSummary")
	defer span.End()
	start := time.Now()

	evals, selfs, err := s.fetchBoth(ctx)
	if err != nil {
		s.fail(ctx, span, "all-time summary", err)
		return types.AllTimeSummary{}, err
	}
	selfs = s.reconcileSelf(selfs)
	s.countSkipped(evals)

	players := scoring.Aggregate(ctx, evals, selfs, scoring.AllTime, scoring.WithLocale(s.locale))
	out := types.AllTimeSummary{Players: make([]types.AllTimePlayerRow, len(players))}
	for i, p := range players {
		out.Players[i] = types.NewAllTimePlayerRow(p)
	}

	s.allTimeSummaries.Add(1)
	metrics.RecordSummary("all_time", len(players), float64(time.Since(start).Milliseconds()))
	span.SetAttributes(attribute.Int("players", len(players)))
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// Dates lists the distinct match dates of the Evaluations table, most
// recent first.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Service.Dates")
	defer span.End()

	raws, err := rowstore.FetchAll(ctx, s.store, s.evalTable)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFetch, err)
		s.fail(ctx, span, "dates", err)
		return nil, err
	}

	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, r := range model.EvaluationsFromRaw(raws) {
		if r.MatchDate == "" {
			continue
		}
		if _, ok := seen[r.MatchDate]; ok {
			continue
		}
		seen[r.MatchDate] = struct{}{}
		dates = append(dates, r.MatchDate)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	span.SetAttributes(attribute.Int("dates", len(dates)))
	return dates, nil
}

// fetchBoth pulls both tables concurrently. A failure on one side cancels
// the other and nothing is returned.
func (s *Service) fetchBoth(ctx context.Context) ([]model.EvaluationRow, []model.SelfAssessmentRow, error) {
	var (
		evals []model.EvaluationRow
		selfs []model.SelfAssessmentRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raws, err := rowstore.FetchAll(gctx, s.store, s.evalTable)
		if err != nil {
			return err
		}
		evals = model.EvaluationsFromRaw(raws)
		return nil
	})
	g.Go(func() error {
		raws, err := rowstore.FetchAll(gctx, s.store, s.selfTable)
		if err != nil {
			return err
		}
		selfs = model.SelfAssessmentsFromRaw(raws)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return evals, selfs, nil
}

func (s *Service) reconcileSelf(rows []model.SelfAssessmentRow) []model.SelfAssessmentRow {
	first, dropped := reconcile.FirstSelfAssessments(rows)
	metrics.RecordDuplicatesDropped("self_assessment", dropped)
	return first
}

func (s *Service) countSkipped(rows []model.EvaluationRow) {
	n := 0
	for _, r := range rows {
		if r.Player == "" {
			n++
		}
	}
	metrics.RecordRowsSkipped(s.evalTable, n)
}

func (s *Service) fail(ctx context.Context, span trace.Span, what string, err error) {
	s.failures.Add(1)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metrics.RecordErrorByComponent("service", "fetch")
	s.logger.Error(ctx, what+" failed", logger.Error(err))
}

func onDate[T any](rows []T, dateOf func(T) string, date string) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if dateOf(r) == date {
			out = append(out, r)
		}
	}
	return out
}

// countSubmissions counts distinct non-empty submission ids.
func countSubmissions(rows []model.EvaluationRow) int {
	ids := make(map[string]struct{})
	for _, r := range rows {
		if r.SubmissionID != "" {
			ids[r.SubmissionID] = struct{}{}
		}
	}
	return len(ids)
}
