package report

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
)

var csvHeader = []string{"Category", "Check Name", "Status", "Severity", "Remediation"}

// CSV renders one row per check. Fields with commas or quotes are quoted and
// embedded quotes doubled.
func CSV(r *check.Report) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, res := range r.Results() {
		remediation := res.Remediation()
		if strings.TrimSpace(remediation) == "" {
			remediation = "N/A"
		}
		row := []string{
			string(res.Category()),
			res.Name(),
			string(res.Status()),
			strconv.Itoa(res.Severity()),
			remediation,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
