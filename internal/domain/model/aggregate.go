package model

// PlayerAggregate is one player's summary within a view. SampleCount is the
// number of contributing evaluation rows; DistinctDateCount is only filled in
// the all-time view. SelfAverage and SelfVsOthersDelta are nil when the
// player has no self-assessment in scope.
type PlayerAggregate struct {
	Player            string
	SampleCount       int
	DistinctDateCount int

	Technique      float64
	Positioning    float64
	Engagement     float64
	Focus          float64
	Teamplay       float64
	PositionMetric float64

	Overall           float64
	SelfAverage       *float64
	SelfVsOthersDelta *float64
}

// Means returns the six dimension means in DimensionFields order.
func (p PlayerAggregate) Means() [DimensionCount]float64 {
	return [DimensionCount]float64{
		p.Technique,
		p.Positioning,
		p.Engagement,
		p.Focus,
		p.Teamplay,
		p.PositionMetric,
	}
}

// TeamConsensus compares the survey-reported team figure with the one
// computed from player overalls for a single date.
type TeamConsensus struct {
	SubmittedTeamOverall *float64
	ComputedTeamOverall  *float64
	ConsensusDelta       *float64
}

// CommentEntry is one curated free-text note.
type CommentEntry struct {
	Author string `json:"author"`
	Note   string `json:"note"`
}
