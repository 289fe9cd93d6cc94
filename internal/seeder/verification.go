package seeder

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/squadrate/internal/domain/types"
)

// ErrMismatch reports a summary that does not account for the submissions.
var ErrMismatch = errors.New("summary mismatch")

// Verify checks that the difference between two summaries of the same date
// is exactly what subs added.
func Verify(before, after Summary, subs []types.Submission) error {
	var problems []string

	if got := after.TotalSubmissions - before.TotalSubmissions; got != len(subs) {
		problems = append(problems, fmt.Sprintf("total_submissions grew by %d, want %d", got, len(subs)))
	}

	prev := counts(before.Rows)
	now := counts(after.Rows)
	want := ExpectedCounts(subs)
	players := make([]string, 0, len(want))
	for p := range want {
		players = append(players, p)
	}
	sort.Strings(players)
	for _, p := range players {
		if got := now[p] - prev[p]; got != want[p] {
			problems = append(problems, fmt.Sprintf("%s: count grew by %d, want %d", p, got, want[p]))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMismatch, strings.Join(problems, "; "))
	}
	return nil
}

func counts(rows []types.DatePlayerRow) map[string]int {
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Player] = r.Count
	}
	return out
}
