package scan

import "github.com/khanhnv2901/seca-host/internal/domain/check"

// Change is a status transition of one check between two reports
type Change struct {
	CheckID string       `json:"check_id"`
	Name    string       `json:"name"`
	From    check.Status `json:"from"`
	To      check.Status `json:"to"`
}

// Regressed reports whether the check got worse
func (c Change) Regressed() bool {
	return c.To.Rank() < c.From.Rank()
}

// Compare lists checks whose status differs between prev and curr, in the
// order of curr. Checks missing from prev are not reported.
func Compare(prev, curr *check.Report) []Change {
	if prev == nil || curr == nil {
		return nil
	}
	var changes []Change
	for _, res := range curr.Results() {
		old, ok := prev.Result(res.CheckID())
		if !ok || old.Status() == res.Status() {
			continue
		}
		changes = append(changes, Change{
			CheckID: res.CheckID(),
			Name:    res.Name(),
			From:    old.Status(),
			To:      res.Status(),
		})
	}
	return changes
}
