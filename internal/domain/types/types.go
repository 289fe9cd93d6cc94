// Package types contains the read and write shapes exchanged with callers.
package types

import "github.com/okian/squadrate/internal/domain/model"

// DatePlayerRow is a player line in the per-date summary.
type DatePlayerRow struct {
	Player            string   `json:"player"`
	Count             int      `json:"count"`
	Technique         float64  `json:"technique"`
	Positioning       float64  `json:"positioning"`
	Engagement        float64  `json:"engagement"`
	Focus             float64  `json:"focus"`
	Teamplay          float64  `json:"teamplay"`
	PositionMetric    float64  `json:"position_metric"`
	Overall           float64  `json:"overall"`
	SelfAvg           *float64 `json:"self_avg"`
	DeltaSelfVsOthers *float64 `json:"delta_self_vs_others"`
}

// AllTimePlayerRow is a player line in the all-time summary.
type AllTimePlayerRow struct {
	Player            string   `json:"player"`
	DatesCount        int      `json:"dates_count"`
	Technique         float64  `json:"technique"`
	Positioning       float64  `json:"positioning"`
	Engagement        float64  `json:"engagement"`
	Focus             float64  `json:"focus"`
	Teamplay          float64  `json:"teamplay"`
	PositionMetric    float64  `json:"position_metric"`
	Overall           float64  `json:"overall"`
	SelfAvg           *float64 `json:"self_avg"`
	DeltaSelfVsOthers *float64 `json:"delta_self_vs_others"`
}

// DateSummary is the per-date view.
type DateSummary struct {
	Date                 string               `json:"date"`
	TotalSubmissions     int                  `json:"total_submissions"`
	SubmittedTeamOverall *float64             `json:"submitted_team_overall"`
	ComputedTeamOverall  *float64             `json:"computed_team_overall"`
	ConsensusDelta       *float64             `json:"consensus_delta"`
	Players              []DatePlayerRow      `json:"rows"`
	Comments             []model.CommentEntry `json:"comments"`
}

// AllTimeSummary is the lifetime view.
type AllTimeSummary struct {
	Players []AllTimePlayerRow `json:"rows"`
}

// Submission is one reviewer's complete form response as written by the
// submission pathway.
type Submission struct {
	EvalRows []EvalRowInput `json:"evalRows"`
	SelfRow  *SelfRowInput  `json:"selfRow"`
}

// EvalRowInput mirrors an Evaluations row on the wire.
type EvalRowInput struct {
	SubmissionID   string  `json:"submissionId"`
	MatchDate      string  `json:"match_date"`
	Player         string  `json:"player"`
	Technique      float64 `json:"technique"`
	Positioning    float64 `json:"positioning"`
	Engagement     float64 `json:"engagement"`
	Focus          float64 `json:"focus"`
	Teamplay       float64 `json:"teamplay"`
	PositionMetric float64 `json:"position_metric"`
	TeamOverall    float64 `json:"team_overall"`
	Notes          string  `json:"notes"`
}

// SelfRowInput mirrors a SelfAssessments row on the wire.
type SelfRowInput struct {
	SubmissionID string  `json:"submissionId"`
	MatchDate    string  `json:"match_date"`
	SelfPlayer   string  `json:"self_player"`
	SelfScore    float64 `json:"self_score"`
}

// NewDatePlayerRow converts a per-date aggregate to its wire shape.
func NewDatePlayerRow(p model.PlayerAggregate) DatePlayerRow {
	return DatePlayerRow{
		Player:            p.Player,
		Count:             p.SampleCount,
		Technique:         p.Technique,
		Positioning:       p.Positioning,
		Engagement:        p.Engagement,
		Focus:             p.Focus,
		Teamplay:          p.Teamplay,
		PositionMetric:    p.PositionMetric,
		Overall:           p.Overall,
		SelfAvg:           p.SelfAverage,
		DeltaSelfVsOthers: p.SelfVsOthersDelta,
	}
}

// NewAllTimePlayerRow converts an all-time aggregate to its wire shape.
func NewAllTimePlayerRow(p model.PlayerAggregate) AllTimePlayerRow {
	return AllTimePlayerRow{
		Player:            p.Player,
		DatesCount:        p.DistinctDateCount,
		Technique:         p.Technique,
		Positioning:       p.Positioning,
		Engagement:        p.Engagement,
		Focus:             p.Focus,
		Teamplay:          p.Teamplay,
		PositionMetric:    p.PositionMetric,
		Overall:           p.Overall,
		SelfAvg:           p.SelfAverage,
		DeltaSelfVsOthers: p.SelfVsOthersDelta,
	}
}

// Model converts the wire row to the domain record.
func (in EvalRowInput) Model() model.EvaluationRow {
	return model.EvaluationRow{
		SubmissionID:   in.SubmissionID,
		MatchDate:      in.MatchDate,
		Player:         in.Player,
		Technique:      in.Technique,
		Positioning:    in.Positioning,
		Engagement:     in.Engagement,
		Focus:          in.Focus,
		Teamplay:       in.Teamplay,
		PositionMetric: in.PositionMetric,
		TeamOverall:    in.TeamOverall,
		Notes:          in.Notes,
	}
}

// Model converts the wire row to the domain record.
func (in SelfRowInput) Model() model.SelfAssessmentRow {
	return model.SelfAssessmentRow{
		SubmissionID: in.SubmissionID,
		MatchDate:    in.MatchDate,
		SelfPlayer:   in.SelfPlayer,
		SelfScore:    in.SelfScore,
	}
}
