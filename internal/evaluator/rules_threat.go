package evaluator

import (
	"context"
	"fmt"
	"time"

	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
)

const cmdXProtectMeta = "stat -f %Sm /var/db/XProtect.meta.plist 2>/dev/null"

// statLayout is the BSD stat default modification time format
const statLayout = "Jan _2 15:04:05 2006"

// Malware protection
var threatRules = map[string]Rule{
	"xprotect_signatures":   signatureAgeRule,
	"persistence_monitored": fixed(warning("Requires MDM or endpoint protection for monitoring")),
}

// signatureAgeRule passes while the XProtect definitions are younger than
// the freshness window.
func signatureAgeRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdXProtectMeta)
	updated, err := time.ParseInLocation(statLayout, out.Stdout, time.Local)
	if err != nil {
		return warning(detailsOr(out, "Unable to determine signature age"))
	}

	age := p.Now().Sub(updated)
	days := int(age / (24 * time.Hour))
	details := fmt.Sprintf("Last update: %d days ago", days)
	if age < consts.SignatureFreshnessWindow {
		return pass(details)
	}
	return warning(details)
}
