// Package comments picks the free-text notes worth showing for a match date.
package comments

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/reconcile"
)

// Defaults.
const (
	DefaultUnknownAuthor = "—"
)

// DefaultDismissiveTokens are rote "nothing to add" answers.
var DefaultDismissiveTokens = []string{"не", "no"}

// Option configures Curate.
type Option func(*options)

type options struct {
	tokens        []string
	unknownAuthor string
}

// WithDismissiveTokens replaces the notes that are never surfaced.
func WithDismissiveTokens(tokens ...string) Option {
	return func(o *options) {
		o.tokens = append([]string(nil), tokens...)
	}
}

// WithUnknownAuthor sets the author of notes whose submission has no
// self-assessment.
func WithUnknownAuthor(author string) Option {
	return func(o *options) {
		if author != "" {
			o.unknownAuthor = author
		}
	}
}

// Curate returns at most one note per submission, in the order submissions
// first appear in rows. A note is left out when it trims to empty or when it
// equals a dismissive token ignoring case; a token inside a longer note does
// not count.
func Curate(rows []model.EvaluationRow, selfRows []model.SelfAssessmentRow, opts ...Option) []model.CommentEntry {
	o := options{tokens: DefaultDismissiveTokens, unknownAuthor: DefaultUnknownAuthor}
	for _, opt := range opts {
		opt(&o)
	}

	fold := cases.Fold()
	dismissive := make(map[string]struct{}, len(o.tokens))
	for _, t := range o.tokens {
		if t = strings.TrimSpace(t); t != "" {
			dismissive[fold.String(t)] = struct{}{}
		}
	}

	authors := reconcile.SelfAuthors(selfRows)
	out := make([]model.CommentEntry, 0)
	for _, row := range reconcile.FirstPerSubmission(rows) {
		note := strings.TrimSpace(row.Notes)
		if note == "" {
			continue
		}
		if _, ok := dismissive[fold.String(note)]; ok {
			continue
		}
		author, ok := authors[row.SubmissionID]
		if !ok {
			author = o.unknownAuthor
		}
		out = append(out, model.CommentEntry{Author: author, Note: note})
	}
	return out
}

// Dropped counts submissions whose note Curate left out.
func Dropped(rows []model.EvaluationRow, curated []model.CommentEntry) int {
	return len(reconcile.FirstPerSubmission(rows)) - len(curated)
}
