// Package progress drives the simulated analysis pipeline progress: an
// ordered list of named stages advanced on a timer. No work happens at stage
// boundaries; the runner exists to feed progress updates to clients.
package progress

import "time"

// Stage is one named phase of the simulated pipeline with a fixed nominal
// duration.
type Stage struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// DefaultStages is the stage list shown during an upload-and-analyze run. The
// labels are presentation copy; none of the named techniques run anywhere.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "Parsing resume", Duration: 2 * time.Second},
		{Name: "Extracting skills", Duration: 3 * time.Second},
		{Name: "Analyzing job market", Duration: 3 * time.Second},
		{Name: "Scoring skill gaps", Duration: 2 * time.Second},
		{Name: "Matching courses", Duration: 2 * time.Second},
		{Name: "Generating report", Duration: 1 * time.Second},
	}
}

// TotalDuration returns the sum of all stage durations.
func TotalDuration(stages []Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += s.Duration
	}
	return total
}

// stageAt maps an elapsed duration onto the stage active at that point.
// Returns the last stage once elapsed passes the total.
func stageAt(stages []Stage, elapsed time.Duration) int {
	var cumulative time.Duration
	for i, s := range stages {
		cumulative += s.Duration
		if elapsed < cumulative {
			return i
		}
	}
	return len(stages) - 1
}
