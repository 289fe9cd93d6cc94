// Package seeder posts synthetic form responses to a running service and
// checks that the per-date summary accounts for them.
package seeder

import (
	"time"

	"github.com/okian/squadrate/internal/domain/types"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Date        string        // Match date the submissions belong to
	Submissions int           // Number of form responses to generate
	Workers     int           // Number of concurrent submitters
	Timeout     time.Duration // HTTP request timeout
	RosterFile  string        // Optional YAML roster
	OutputFile  string        // Optional JSON dump of generated submissions
	Verbose     bool          // Log every submission
}

// Stats holds run statistics.
type Stats struct {
	Generated int
	Submitted int
	Failed    int
	RowsSent  int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Summary is the subset of GET /api/summary the verifier reads.
type Summary struct {
	OK               bool                  `json:"ok"`
	Error            string                `json:"error"`
	TotalSubmissions int                   `json:"total_submissions"`
	Rows             []types.DatePlayerRow `json:"rows"`
}

type submitResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Inserted int    `json:"inserted"`
}
