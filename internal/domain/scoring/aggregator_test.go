package scoring_test

import (
	"context"
	"testing"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func rating(sub, date, player string, dims [6]float64, team float64) model.EvaluationRow {
	return model.EvaluationRow{
		SubmissionID:   sub,
		MatchDate:      date,
		Player:         player,
		Technique:      dims[0],
		Positioning:    dims[1],
		Engagement:     dims[2],
		Focus:          dims[3],
		Teamplay:       dims[4],
		PositionMetric: dims[5],
		TeamOverall:    team,
	}
}

func flat(v float64) [6]float64 { return [6]float64{v, v, v, v, v, v} }

func names(players []model.PlayerAggregate) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Player
	}
	return out
}

func TestAggregate_MatchScenario(t *testing.T) {
	Convey("Given two submissions rating the same player on one date", t, func() {
		ctx := context.Background()
		rows := []model.EvaluationRow{
			rating("A", "2024-05-01", "X", flat(4), 4),
			rating("B", "2024-05-01", "X", flat(5), 5),
		}
		self := []model.SelfAssessmentRow{
			{SubmissionID: "A", MatchDate: "2024-05-01", SelfPlayer: "X", SelfScore: 3.5},
			{SubmissionID: "B", MatchDate: "2024-05-01", SelfPlayer: "Y", SelfScore: 4},
		}

		Convey("When aggregating per date", func() {
			players := scoring.Aggregate(ctx, rows, self, scoring.PerDate)
			team := scoring.Consensus(rows, players)

			Convey("Then the player figures match", func() {
				So(len(players), ShouldEqual, 1)
				x := players[0]
				So(x.Player, ShouldEqual, "X")
				So(x.SampleCount, ShouldEqual, 2)
				for _, m := range x.Means() {
					So(m, ShouldEqual, 4.5)
				}
				So(x.Overall, ShouldEqual, 4.5)
				So(*x.SelfAverage, ShouldEqual, 3.5)
				So(*x.SelfVsOthersDelta, ShouldEqual, -1.0)
			})

			Convey("And the team figures match", func() {
				So(*team.SubmittedTeamOverall, ShouldEqual, 4.5)
				So(*team.ComputedTeamOverall, ShouldEqual, 4.5)
				So(*team.ConsensusDelta, ShouldEqual, 0.0)
			})
		})
	})
}

func TestAggregate_Overall(t *testing.T) {
	Convey("Given ratings whose means need rounding", t, func() {
		rows := []model.EvaluationRow{
			rating("s1", "d", "P", [6]float64{1, 2, 3, 4, 5, 3}, 0),
			rating("s2", "d", "P", [6]float64{2, 2, 3, 5, 4, 4}, 0),
			rating("s3", "d", "P", [6]float64{3, 3, 3, 3, 3, 3}, 0),
		}

		Convey("When aggregating", func() {
			p := scoring.Aggregate(context.Background(), rows, nil, scoring.PerDate)[0]

			Convey("Then every mean is rounded to two decimals", func() {
				So(p.Technique, ShouldAlmostEqual, 2, 1e-9)
				So(p.Positioning, ShouldAlmostEqual, 2.33, 1e-9)
				So(p.PositionMetric, ShouldAlmostEqual, 3.33, 1e-9)
			})

			Convey("And overall is reproducible from the published means", func() {
				So(p.Overall, ShouldEqual, scoring.Overall(p.Means()))
				So(p.Overall, ShouldAlmostEqual, 3.11, 1e-9)
			})
		})
	})
}

func TestAggregate_SelfAssessments(t *testing.T) {
	Convey("Given players with and without self-assessments", t, func() {
		rows := []model.EvaluationRow{
			rating("s1", "d", "X", flat(4), 0),
			rating("s1", "d", "Y", flat(3), 0),
			rating("s2", "d", "X", flat(4), 0),
		}
		self := []model.SelfAssessmentRow{
			{SubmissionID: "s1", SelfPlayer: "X", SelfScore: 5},
			{SubmissionID: "s1", SelfPlayer: "X", SelfScore: 1},
			{SubmissionID: "s9", SelfPlayer: "X", SelfScore: 4},
			{SubmissionID: "s2", SelfPlayer: "Z", SelfScore: 2},
		}

		Convey("When aggregating", func() {
			players := scoring.Aggregate(context.Background(), rows, self, scoring.PerDate)

			Convey("Then only rated players appear", func() {
				So(names(players), ShouldResemble, []string{"X", "Y"})
			})

			Convey("And a retried self-assessment counts once", func() {
				x := players[0]
				So(*x.SelfAverage, ShouldEqual, 4.5)
				So(*x.SelfVsOthersDelta, ShouldEqual, 0.5)
			})

			Convey("And a player who never self-assessed has nil figures", func() {
				y := players[1]
				So(y.SelfAverage, ShouldBeNil)
				So(y.SelfVsOthersDelta, ShouldBeNil)
			})
		})
	})
}

func TestAggregate_Tolerance(t *testing.T) {
	Convey("Given rows with a missing player", t, func() {
		rows := []model.EvaluationRow{
			rating("s1", "d", "", flat(5), 0),
			rating("s1", "d", "X", [6]float64{4, 0, 4, 4, 4, 4}, 0),
		}

		Convey("Then the row is skipped and a missing rating counts as zero", func() {
			players := scoring.Aggregate(context.Background(), rows, nil, scoring.PerDate)
			So(len(players), ShouldEqual, 1)
			So(players[0].Positioning, ShouldEqual, 0)
			So(players[0].Overall, ShouldAlmostEqual, 3.33, 1e-9)
		})
	})

	Convey("Given no rows at all", t, func() {
		players := scoring.Aggregate(context.Background(), nil, nil, scoring.AllTime)

		Convey("Then the result is empty, not nil-dereferencing", func() {
			So(players, ShouldBeEmpty)
			So(scoring.ComputedTeamOverall(players), ShouldBeNil)
		})
	})
}

func TestAggregate_Duplicates(t *testing.T) {
	Convey("Given a date with a retried submission", t, func() {
		ctx := context.Background()
		base := []model.EvaluationRow{
			rating("A", "d", "X", flat(4), 4),
			rating("A", "d", "Y", flat(2), 4),
			rating("B", "d", "X", flat(5), 3),
		}
		dup := append(append([]model.EvaluationRow{}, base...), base[0], base[1])

		Convey("When the stored rows repeat a submission id", func() {
			clean := scoring.Aggregate(ctx, base, nil, scoring.PerDate)
			noisy := scoring.Aggregate(ctx, dup, nil, scoring.PerDate)

			Convey("Then the aggregates are unchanged", func() {
				So(noisy, ShouldResemble, clean)
				So(scoring.Consensus(dup, noisy), ShouldResemble, scoring.Consensus(base, clean))
			})
		})

		Convey("When a copy arrives under a new submission id", func() {
			extra := rating("C", "d", "X", flat(4), 4)
			players := scoring.Aggregate(ctx, append(base, extra), nil, scoring.PerDate)

			Convey("Then it counts as another sample", func() {
				So(players[0].SampleCount, ShouldEqual, 3)
			})
		})
	})
}

func TestAggregate_AllTime(t *testing.T) {
	Convey("Given ratings across several dates", t, func() {
		rows := []model.EvaluationRow{
			rating("s1", "2024-05-01", "X", flat(4), 0),
			rating("s2", "2024-05-01", "X", flat(4), 0),
			rating("s3", "2024-05-08", "X", flat(2), 0),
			rating("s4", "", "X", flat(2), 0),
			rating("s3", "2024-05-08", "Y", flat(3), 0),
		}

		Convey("When aggregating all time", func() {
			players := scoring.Aggregate(context.Background(), rows, nil, scoring.AllTime)

			Convey("Then dates are counted distinctly and means use all rows", func() {
				x := players[0]
				So(x.DistinctDateCount, ShouldEqual, 2)
				So(x.SampleCount, ShouldEqual, 4)
				So(x.Overall, ShouldEqual, 3)
				So(players[1].DistinctDateCount, ShouldEqual, 1)
			})
		})

		Convey("When aggregating per date", func() {
			players := scoring.Aggregate(context.Background(), rows, nil, scoring.PerDate)

			Convey("Then no date count is reported", func() {
				So(players[0].DistinctDateCount, ShouldEqual, 0)
			})
		})
	})
}

func TestAggregate_NameOrder(t *testing.T) {
	Convey("Given Cyrillic player names", t, func() {
		var rows []model.EvaluationRow
		for i, n := range []string{"Явор", "Васил", "борис", "Александър"} {
			rows = append(rows, rating(string(rune('a'+i)), "d", n, flat(3), 0))
		}

		Convey("When aggregating with the default locale", func() {
			players := scoring.Aggregate(context.Background(), rows, nil, scoring.PerDate)

			Convey("Then names follow alphabetical, not byte, order", func() {
				So(names(players), ShouldResemble, []string{"Александър", "борис", "Васил", "Явор"})
			})
		})
	})

	Convey("Given Latin names and an English locale", t, func() {
		list := []string{"Zoe", "adam", "Boris"}
		scoring.SortNames(list, scoring.WithLocale("en"))

		Convey("Then case does not dominate the order", func() {
			So(list, ShouldResemble, []string{"adam", "Boris", "Zoe"})
		})
	})
}

func TestRankByOverall(t *testing.T) {
	Convey("Given name-ordered aggregates", t, func() {
		players := []model.PlayerAggregate{
			{Player: "Ana", Overall: 3.5},
			{Player: "Bob", Overall: 4.25},
			{Player: "Cid", Overall: 3.5},
			{Player: "Dan", Overall: 4.9},
		}

		Convey("When ranking", func() {
			ranked := scoring.RankByOverall(players, scoring.WithLocale("en"))

			Convey("Then overall descends and ties keep name order", func() {
				So(names(ranked), ShouldResemble, []string{"Dan", "Bob", "Ana", "Cid"})
			})

			Convey("And the input is untouched", func() {
				So(names(players), ShouldResemble, []string{"Ana", "Bob", "Cid", "Dan"})
			})
		})
	})
}
