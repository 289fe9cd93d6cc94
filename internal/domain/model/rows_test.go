package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/squadrate/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestEvaluationFromRaw(t *testing.T) {
	convey.Convey("Given raw evaluation rows from the store", t, func() {
		convey.Convey("When every field is well typed", func() {
			row := model.EvaluationFromRaw(map[string]any{
				"id":              float64(17),
				"submissionId":    "sub-1",
				"match_date":      "2024-05-01",
				"player":          " Миро ",
				"technique":       float64(4),
				"positioning":     float64(3),
				"engagement":      float64(5),
				"focus":           float64(2),
				"teamplay":        float64(1),
				"position_metric": float64(4.5),
				"team_overall":    float64(4),
				"notes":           "  добър мач  ",
			})

			convey.Convey("Then it should map onto the record", func() {
				convey.So(row.SubmissionID, convey.ShouldEqual, "sub-1")
				convey.So(row.MatchDate, convey.ShouldEqual, "2024-05-01")
				convey.So(row.Player, convey.ShouldEqual, "Миро")
				convey.So(row.Dimensions(), convey.ShouldResemble, [6]float64{4, 3, 5, 2, 1, 4.5})
				convey.So(row.TeamOverall, convey.ShouldEqual, 4)
				convey.So(row.Notes, convey.ShouldEqual, "  добър мач  ")
			})
		})

		convey.Convey("When ratings arrive as decimal strings and select options", func() {
			row := model.EvaluationFromRaw(map[string]any{
				"technique":       "4.50",
				"positioning":     map[string]any{"id": float64(3), "value": "3"},
				"engagement":      json.Number("2.25"),
				"focus":           "n/a",
				"teamplay":        nil,
				"position_metric": math.NaN(),
				"team_overall":    true,
			})

			convey.Convey("Then numbers are coerced and garbage becomes zero", func() {
				convey.So(row.Technique, convey.ShouldEqual, 4.5)
				convey.So(row.Positioning, convey.ShouldEqual, 3)
				convey.So(row.Engagement, convey.ShouldEqual, 2.25)
				convey.So(row.Focus, convey.ShouldEqual, 0)
				convey.So(row.Teamplay, convey.ShouldEqual, 0)
				convey.So(row.PositionMetric, convey.ShouldEqual, 0)
				convey.So(row.TeamOverall, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When key fields are missing", func() {
			row := model.EvaluationFromRaw(map[string]any{})

			convey.Convey("Then they default to empty strings", func() {
				convey.So(row.SubmissionID, convey.ShouldEqual, "")
				convey.So(row.MatchDate, convey.ShouldEqual, "")
				convey.So(row.Player, convey.ShouldEqual, "")
				convey.So(row.Notes, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When a numeric submission id is stored", func() {
			row := model.EvaluationFromRaw(map[string]any{"submissionId": float64(1715000000)})

			convey.Convey("Then it is rendered without exponent", func() {
				convey.So(row.SubmissionID, convey.ShouldEqual, "1715000000")
			})
		})
	})
}

func TestSelfAssessmentFromRaw(t *testing.T) {
	convey.Convey("Given a raw self-assessment row", t, func() {
		row := model.SelfAssessmentFromRaw(map[string]any{
			"submissionId": "sub-9",
			"match_date":   "2024-05-01",
			"self_player":  "Тони",
			"self_score":   "3.5",
		})

		convey.Convey("Then it should be coerced", func() {
			convey.So(row, convey.ShouldResemble, model.SelfAssessmentRow{
				SubmissionID: "sub-9",
				MatchDate:    "2024-05-01",
				SelfPlayer:   "Тони",
				SelfScore:    3.5,
			})
		})

		convey.Convey("And ToRaw should round-trip through the coercion step", func() {
			convey.So(model.SelfAssessmentFromRaw(row.ToRaw()), convey.ShouldResemble, row)
		})
	})
}

func TestCollectionsFromRaw(t *testing.T) {
	convey.Convey("Given a fetched collection", t, func() {
		raws := []map[string]any{
			{"player": "A", "submissionId": "1"},
			{"player": "B", "submissionId": "2"},
		}

		convey.Convey("Then order is preserved", func() {
			rows := model.EvaluationsFromRaw(raws)
			convey.So(len(rows), convey.ShouldEqual, 2)
			convey.So(rows[0].Player, convey.ShouldEqual, "A")
			convey.So(rows[1].Player, convey.ShouldEqual, "B")
			convey.So(len(model.SelfAssessmentsFromRaw(nil)), convey.ShouldEqual, 0)
		})
	})
}
