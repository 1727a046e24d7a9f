package check

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Report is the immutable snapshot produced by a completed scan
type Report struct {
	id        string
	timestamp time.Time
	osVersion string
	benchmark string
	results   []*Result
	score     float64
}

// NewReport builds a report from ordered results and computes its score
func NewReport(timestamp time.Time, osVersion, benchmark string, results []*Result) *Report {
	owned := make([]*Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			owned = append(owned, r)
		}
	}
	return &Report{
		id:        uuid.NewString(),
		timestamp: timestamp,
		osVersion: osVersion,
		benchmark: benchmark,
		results:   owned,
		score:     Score(owned),
	}
}

// Reconstruct creates a report from previously exported data. The score is
// taken as recorded.
func Reconstruct(id string, timestamp time.Time, osVersion, benchmark string, results []*Result, score float64) *Report {
	owned := make([]*Result, len(results))
	copy(owned, results)
	return &Report{
		id:        id,
		timestamp: timestamp,
		osVersion: osVersion,
		benchmark: benchmark,
		results:   owned,
		score:     score,
	}
}

func (r *Report) ID() string           { return r.id }
func (r *Report) Timestamp() time.Time { return r.timestamp }
func (r *Report) OSVersion() string    { return r.osVersion }
func (r *Report) Benchmark() string    { return r.benchmark }
func (r *Report) Score() float64       { return r.score }
func (r *Report) Band() Band           { return ScoreBand(r.score) }

// Results returns the results in registry order
func (r *Report) Results() []*Result {
	out := make([]*Result, len(r.results))
	copy(out, r.results)
	return out
}

// Result finds the result for a check id
func (r *Report) Result(checkID string) (*Result, bool) {
	for _, res := range r.results {
		if res.CheckID() == checkID {
			return res, true
		}
	}
	return nil, false
}

// Derived counts

func (r *Report) Passed() int   { return r.count(StatusPass) }
func (r *Report) Failed() int   { return r.count(StatusFail) }
func (r *Report) Warnings() int { return r.count(StatusWarning) }
func (r *Report) Unknown() int  { return r.count(StatusUnknown) }
func (r *Report) Total() int    { return len(r.results) }

func (r *Report) count(status Status) int {
	n := 0
	for _, res := range r.results {
		if res.Status() == status {
			n++
		}
	}
	return n
}

// Grouped returns results bucketed by category, categories in first-seen
// order and results in registry order within each bucket.
func (r *Report) Grouped() []CategoryGroup {
	index := make(map[Category]int)
	var groups []CategoryGroup
	for _, res := range r.results {
		i, ok := index[res.Category()]
		if !ok {
			i = len(groups)
			index[res.Category()] = i
			groups = append(groups, CategoryGroup{Category: res.Category()})
		}
		groups[i].Results = append(groups[i].Results, res)
	}
	return groups
}

// CategoryGroup is one category section of a report
type CategoryGroup struct {
	Category Category
	Results  []*Result
}

// Summary holds the derived counts of a report
type Summary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
	Unknown  int `json:"unknown"`
	Total    int `json:"total"`
}

// Summary computes the derived counts
func (r *Report) Summary() Summary {
	return Summary{
		Passed:   r.Passed(),
		Warnings: r.Warnings(),
		Failed:   r.Failed(),
		Unknown:  r.Unknown(),
		Total:    r.Total(),
	}
}

type reportJSON struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	OSVersion    string    `json:"os_version"`
	Benchmark    string    `json:"benchmark,omitempty"`
	OverallScore float64   `json:"overall_score"`
	Summary      *Summary  `json:"summary,omitempty"`
	Checks       []*Result `json:"checks"`
}

// MarshalJSON encodes the report with its computed summary
func (r *Report) MarshalJSON() ([]byte, error) {
	summary := r.Summary()
	return json.Marshal(reportJSON{
		ID:           r.id,
		Timestamp:    r.timestamp.UTC(),
		OSVersion:    r.osVersion,
		Benchmark:    r.benchmark,
		OverallScore: r.score,
		Summary:      &summary,
		Checks:       r.results,
	})
}

// UnmarshalJSON restores a report. The recorded summary is ignored since
// counts are derived from the results.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw reportJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = *Reconstruct(raw.ID, raw.Timestamp, raw.OSVersion, raw.Benchmark, raw.Checks, raw.OverallScore)
	return nil
}
