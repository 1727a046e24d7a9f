package check

import consts "github.com/khanhnv2901/seca-host/internal/shared/constants"

// Score computes the severity-weighted compliance score in [0,100].
// Each result weighs its severity; Pass earns the full weight, Warning half
// of it rounded down, Fail and Unknown nothing. An empty set scores 0.
func Score(results []*Result) float64 {
	var points, weight int
	for _, r := range results {
		if r == nil {
			continue
		}
		points += r.Points()
		weight += r.Severity()
	}
	if weight == 0 {
		return 0
	}
	return float64(points) / float64(weight) * 100
}

// Band is the color band a score falls into
type Band string

const (
	BandGreen Band = "green"
	BandAmber Band = "amber"
	BandRed   Band = "red"
)

// ScoreBand maps a score onto its band: >=80 green, >=50 amber, else red
func ScoreBand(score float64) Band {
	switch {
	case score >= consts.ScoreGreenThreshold:
		return BandGreen
	case score >= consts.ScoreAmberThreshold:
		return BandAmber
	default:
		return BandRed
	}
}

// Color returns the hex color used when rendering the band
func (b Band) Color() string {
	switch b {
	case BandGreen:
		return "#00CC44"
	case BandAmber:
		return "#FF9900"
	default:
		return "#CC0000"
	}
}
