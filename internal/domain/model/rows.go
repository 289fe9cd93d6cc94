// Package model contains domain records passed between layers.
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Field names as stored in the row store (Baserow "user field names").
const (
	FieldSubmissionID   = "submissionId"
	FieldMatchDate      = "match_date"
	FieldPlayer         = "player"
	FieldTechnique      = "technique"
	FieldPositioning    = "positioning"
	FieldEngagement     = "engagement"
	FieldFocus          = "focus"
	FieldTeamplay       = "teamplay"
	FieldPositionMetric = "position_metric"
	FieldTeamOverall    = "team_overall"
	FieldNotes          = "notes"
	FieldSelfPlayer     = "self_player"
	FieldSelfScore      = "self_score"
)

// DimensionCount is the number of rated performance facets.
const DimensionCount = 6

// DimensionFields lists the rating fields in canonical order.
var DimensionFields = [DimensionCount]string{
	FieldTechnique,
	FieldPositioning,
	FieldEngagement,
	FieldFocus,
	FieldTeamplay,
	FieldPositionMetric,
}

// EvaluationRow is one reviewer's scoring of one player for one match.
// TeamOverall and Notes are submission-level values duplicated on every
// row of the submission.
type EvaluationRow struct {
	SubmissionID   string
	MatchDate      string
	Player         string
	Technique      float64
	Positioning    float64
	Engagement     float64
	Focus          float64
	Teamplay       float64
	PositionMetric float64
	TeamOverall    float64
	Notes          string
}

// Dimensions returns the six ratings in DimensionFields order.
func (r EvaluationRow) Dimensions() [DimensionCount]float64 {
	return [DimensionCount]float64{
		r.Technique,
		r.Positioning,
		r.Engagement,
		r.Focus,
		r.Teamplay,
		r.PositionMetric,
	}
}

// ToRaw renders the row with store field names.
func (r EvaluationRow) ToRaw() map[string]any {
	return map[string]any{
		FieldSubmissionID:   r.SubmissionID,
		FieldMatchDate:      r.MatchDate,
		FieldPlayer:         r.Player,
		FieldTechnique:      r.Technique,
		FieldPositioning:    r.Positioning,
		FieldEngagement:     r.Engagement,
		FieldFocus:          r.Focus,
		FieldTeamplay:       r.Teamplay,
		FieldPositionMetric: r.PositionMetric,
		FieldTeamOverall:    r.TeamOverall,
		FieldNotes:          r.Notes,
	}
}

// SelfAssessmentRow is one reviewer's rating of their own performance.
type SelfAssessmentRow struct {
	SubmissionID string
	MatchDate    string
	SelfPlayer   string
	SelfScore    float64
}

// ToRaw renders the row with store field names.
func (r SelfAssessmentRow) ToRaw() map[string]any {
	return map[string]any{
		FieldSubmissionID: r.SubmissionID,
		FieldMatchDate:    r.MatchDate,
		FieldSelfPlayer:   r.SelfPlayer,
		FieldSelfScore:    r.SelfScore,
	}
}

// EvaluationFromRaw coerces a raw store row. Missing or non-numeric ratings
// become 0 and missing strings become "".
func EvaluationFromRaw(raw map[string]any) EvaluationRow {
	return EvaluationRow{
		SubmissionID:   coerceString(raw[FieldSubmissionID]),
		MatchDate:      coerceString(raw[FieldMatchDate]),
		Player:         coerceString(raw[FieldPlayer]),
		Technique:      coerceNumber(raw[FieldTechnique]),
		Positioning:    coerceNumber(raw[FieldPositioning]),
		Engagement:     coerceNumber(raw[FieldEngagement]),
		Focus:          coerceNumber(raw[FieldFocus]),
		Teamplay:       coerceNumber(raw[FieldTeamplay]),
		PositionMetric: coerceNumber(raw[FieldPositionMetric]),
		TeamOverall:    coerceNumber(raw[FieldTeamOverall]),
		// Notes keep inner whitespace; the curator trims.
		Notes: coerceText(raw[FieldNotes]),
	}
}

// SelfAssessmentFromRaw coerces a raw self-assessment row.
func SelfAssessmentFromRaw(raw map[string]any) SelfAssessmentRow {
	return SelfAssessmentRow{
		SubmissionID: coerceString(raw[FieldSubmissionID]),
		MatchDate:    coerceString(raw[FieldMatchDate]),
		SelfPlayer:   coerceString(raw[FieldSelfPlayer]),
		SelfScore:    coerceNumber(raw[FieldSelfScore]),
	}
}

// EvaluationsFromRaw coerces a fetched collection, preserving order.
func EvaluationsFromRaw(raws []map[string]any) []EvaluationRow {
	out := make([]EvaluationRow, len(raws))
	for i, r := range raws {
		out[i] = EvaluationFromRaw(r)
	}
	return out
}

// SelfAssessmentsFromRaw coerces a fetched collection, preserving order.
func SelfAssessmentsFromRaw(raws []map[string]any) []SelfAssessmentRow {
	out := make([]SelfAssessmentRow, len(raws))
	for i, r := range raws {
		out[i] = SelfAssessmentFromRaw(r)
	}
	return out
}

// coerceNumber maps anything that is not a finite number to 0.
func coerceNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		p, err := n.Float64()
		if err != nil {
			return 0
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = p
	case map[string]any:
		// Single-select fields arrive as {"id": 1, "value": "4"}.
		return coerceNumber(n["value"])
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceString(v any) string {
	return strings.TrimSpace(coerceText(v))
}

func coerceText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case map[string]any:
		return coerceText(s["value"])
	default:
		return ""
	}
}
