package scoring_test

import (
	"testing"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/okian/squadrate/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func f(v float64) *float64 { return &v }

func TestSubmittedTeamOverall(t *testing.T) {
	Convey("Given team ratings carried on evaluation rows", t, func() {
		rows := []model.EvaluationRow{
			{SubmissionID: "s1", Player: "A", TeamOverall: 4},
			{SubmissionID: "s1", Player: "B", TeamOverall: 2},
			{SubmissionID: "s2", Player: "A", TeamOverall: 5},
			{SubmissionID: "s3", Player: "A", TeamOverall: 0},
			{SubmissionID: "s4", Player: "A", TeamOverall: -1},
			{SubmissionID: "", Player: "A", TeamOverall: 1},
		}

		Convey("Then one first-seen positive value per submission is averaged", func() {
			So(*scoring.SubmittedTeamOverall(rows), ShouldEqual, 4.5)
		})
	})

	Convey("Given no usable team ratings", t, func() {
		rows := []model.EvaluationRow{
			{SubmissionID: "s1", Player: "A"},
			{SubmissionID: "s2", Player: "A", TeamOverall: -3},
		}

		Convey("Then the figure is nil rather than zero", func() {
			So(scoring.SubmittedTeamOverall(rows), ShouldBeNil)
			So(scoring.SubmittedTeamOverall(nil), ShouldBeNil)
		})
	})
}

func TestComputedTeamOverall(t *testing.T) {
	Convey("Given players rated a different number of times", t, func() {
		players := []model.PlayerAggregate{
			{Player: "A", SampleCount: 10, Overall: 4},
			{Player: "B", SampleCount: 1, Overall: 3},
			{Player: "C", SampleCount: 2, Overall: 3.33},
		}

		Convey("Then each player has one vote", func() {
			So(*scoring.ComputedTeamOverall(players), ShouldAlmostEqual, 3.44, 1e-9)
		})
	})
}

func TestConsensusDelta(t *testing.T) {
	Convey("Given consensus operands", t, func() {
		Convey("Then nil propagates from either side", func() {
			So(scoring.ConsensusDelta(nil, f(4)), ShouldBeNil)
			So(scoring.ConsensusDelta(f(4), nil), ShouldBeNil)
			So(scoring.ConsensusDelta(nil, nil), ShouldBeNil)
		})

		Convey("Then present operands give the rounded difference", func() {
			So(*scoring.ConsensusDelta(f(4.57), f(4.2)), ShouldAlmostEqual, 0.37, 1e-9)
			So(*scoring.ConsensusDelta(f(3), f(3.5)), ShouldEqual, -0.5)
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(scoring.Round2(0.125), ShouldAlmostEqual, 0.13, 1e-9)
		So(scoring.Round2(-0.125), ShouldAlmostEqual, -0.13, 1e-9)
		So(scoring.Round2(-2.5), ShouldEqual, -2.5)
		So(scoring.Round2(-0.001), ShouldEqual, 0)
		So(scoring.Round2(4.125), ShouldAlmostEqual, 4.13, 1e-9)
	})
}
