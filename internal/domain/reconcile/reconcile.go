// Package reconcile collapses "one per submission" values that the row store
// may hold more than once. The policy is first-seen wins: duplicates come from
// client retries of the same logical submission, never from edits.
package reconcile

import (
	"github.com/okian/squadrate/internal/domain/model"
)

// keySeparator cannot appear in either half of a composite key produced by
// the form (identifiers and roster names).
const keySeparator = "::"

// Reconciler records which submission keys were already taken.
type Reconciler interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(key string) bool

	// Dropped is the number of SeenAndRecord calls that returned true.
	Dropped() int

	Size() int
}

// firstSeen is a single-invocation key set. It is not safe for concurrent use
// and must not outlive the computation that created it.
type firstSeen struct {
	seen    map[string]struct{}
	dropped int
}

// New returns an empty Reconciler.
func New(opts ...Option) Reconciler {
	r := &firstSeen{}
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	r.seen = make(map[string]struct{}, cfg.capacity)
	return r
}

func (r *firstSeen) SeenAndRecord(key string) bool {
	if _, ok := r.seen[key]; ok {
		r.dropped++
		return true
	}
	r.seen[key] = struct{}{}
	return false
}

func (r *firstSeen) Dropped() int { return r.dropped }

func (r *firstSeen) Size() int { return len(r.seen) }

// SubmissionKey keys submission-level fields carried on evaluation rows.
func SubmissionKey(submissionID string) string {
	return submissionID
}

// SelfKey keys self-assessments by submission and author.
func SelfKey(submissionID, selfPlayer string) string {
	return submissionID + keySeparator + selfPlayer
}

// RatingKey keys one reviewer's rating of one player.
func RatingKey(submissionID, player string) string {
	return submissionID + keySeparator + player
}

// FirstRatings drops repeated ratings of the same player within one
// submission. Rows without a submission id are always kept since there is
// nothing to reconcile them against.
func FirstRatings(rows []model.EvaluationRow) ([]model.EvaluationRow, int) {
	r := New(WithCapacity(len(rows)))
	out := make([]model.EvaluationRow, 0, len(rows))
	for _, row := range rows {
		if row.SubmissionID != "" && r.SeenAndRecord(RatingKey(row.SubmissionID, row.Player)) {
			continue
		}
		out = append(out, row)
	}
	return out, r.Dropped()
}

// FirstSelfAssessments keeps the first self-assessment per
// (submissionId, selfPlayer), preserving input order.
func FirstSelfAssessments(rows []model.SelfAssessmentRow) ([]model.SelfAssessmentRow, int) {
	r := New(WithCapacity(len(rows)))
	out := make([]model.SelfAssessmentRow, 0, len(rows))
	for _, row := range rows {
		if r.SeenAndRecord(SelfKey(row.SubmissionID, row.SelfPlayer)) {
			continue
		}
		out = append(out, row)
	}
	return out, r.Dropped()
}

// FirstPerSubmission keeps the first evaluation row of every submission in
// first-encounter order. Rows without a submission id cannot be reconciled
// and are left out.
func FirstPerSubmission(rows []model.EvaluationRow) []model.EvaluationRow {
	r := New(WithCapacity(len(rows)))
	out := make([]model.EvaluationRow, 0)
	for _, row := range rows {
		if row.SubmissionID == "" {
			continue
		}
		if r.SeenAndRecord(SubmissionKey(row.SubmissionID)) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// SelfAuthors maps each submission id to the author of its first
// self-assessment.
func SelfAuthors(rows []model.SelfAssessmentRow) map[string]string {
	authors := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.SubmissionID == "" || row.SelfPlayer == "" {
			continue
		}
		if _, ok := authors[row.SubmissionID]; !ok {
			authors[row.SubmissionID] = row.SelfPlayer
		}
	}
	return authors
}
