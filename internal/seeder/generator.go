package seeder

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/squadrate/internal/domain/types"
)

// Ratings are given in half steps between 1 and 5.
const (
	minRating  = 1.0
	ratingStep = 0.5
	ratingSpan = 9 // 1.0, 1.5, ... 5.0
)

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func randomRating() float64 {
	return minRating + float64(randomInt(ratingSpan))*ratingStep
}

// Generate builds n submissions for date. Reviewers take turns through the
// roster; each rates every other player and assesses themself.
func Generate(n int, date string, roster Roster) []types.Submission {
	out := make([]types.Submission, n)
	for i := range out {
		out[i] = generateOne(date, roster.Players[i%len(roster.Players)], roster)
	}
	return out
}

func generateOne(date, reviewer string, roster Roster) types.Submission {
	id := uuid.New().String()
	team := randomRating()
	note := ""
	if len(roster.Notes) > 0 {
		note = roster.Notes[randomInt(len(roster.Notes))]
	}

	sub := types.Submission{
		EvalRows: make([]types.EvalRowInput, 0, len(roster.Players)-1),
		SelfRow: &types.SelfRowInput{
			SubmissionID: id,
			MatchDate:    date,
			SelfPlayer:   reviewer,
			SelfScore:    randomRating(),
		},
	}
	for _, p := range roster.Players {
		if p == reviewer {
			continue
		}
		sub.EvalRows = append(sub.EvalRows, types.EvalRowInput{
			SubmissionID:   id,
			MatchDate:      date,
			Player:         p,
			Technique:      randomRating(),
			Positioning:    randomRating(),
			Engagement:     randomRating(),
			Focus:          randomRating(),
			Teamplay:       randomRating(),
			PositionMetric: randomRating(),
			TeamOverall:    team,
			Notes:          note,
		})
	}
	return sub
}

// ExpectedCounts returns how many rating rows each player receives.
func ExpectedCounts(subs []types.Submission) map[string]int {
	counts := make(map[string]int)
	for _, s := range subs {
		for _, r := range s.EvalRows {
			counts[r.Player]++
		}
	}
	return counts
}
