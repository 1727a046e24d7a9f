package evaluator

import (
	"context"
	"fmt"
	"strings"
)

const (
	cmdAskForPassword      = "defaults read com.apple.screensaver askForPassword 2>/dev/null || echo '0'"
	cmdAskForPasswordDelay = "defaults read com.apple.screensaver askForPasswordDelay 2>/dev/null || echo '0'"
	cmdGuestEnabled        = "defaults read /Library/Preferences/com.apple.loginwindow GuestEnabled 2>/dev/null || echo '1'"
	cmdAdminMembers        = "dscl . -read /Groups/admin GroupMembership 2>/dev/null"
	cmdTouchIDHardware     = "system_profiler SPiBridgeDataType 2>/dev/null | grep -i 'touch'"
	cmdGatekeeper          = "spctl --status 2>&1"
	cmdMRT                 = "ls /System/Library/CoreServices/MalwareRemovalTool.app 2>/dev/null"
)

// Authentication and application execution controls
var accessRules = map[string]Rule{
	"password_required_immediately": passwordAfterSleepRule,
	"no_shared_admin":               sharedAdminRule,
	"guest_account_disabled":        guestAccountRule,
	"touch_id_enabled":              touchIDRule,
	"gatekeeper_enabled":            containsRule(cmdGatekeeper, "assessments enabled", "Unable to check"),
	"notarized_apps_only":           fixed(warning("Enable via MDM for enforcement")),
	"xprotect_enabled":              fixed(pass("XProtect is built-in and cannot be disabled")),
	"mrt_enabled":                   mrtRule,
}

// passwordAfterSleepRule requires the lock and a zero delay. The lock
// without an immediate prompt earns a Warning.
func passwordAfterSleepRule(ctx context.Context, p Probe) Outcome {
	enabled := p.Shell(ctx, cmdAskForPassword).Stdout == "1"
	delay := p.Shell(ctx, cmdAskForPasswordDelay)
	immediate := delay.Stdout == "0" || (delay.Stdout == "" && delay.Succeeded())

	details := fmt.Sprintf("Lock enabled: %s • Immediate: %s", mark(enabled), mark(immediate))
	switch {
	case enabled && immediate:
		return pass(details)
	case enabled:
		return warning(details)
	default:
		return fail(details)
	}
}

func guestAccountRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdGuestEnabled)
	value := strings.ToLower(out.Stdout)
	if value == "0" || strings.Contains(value, "disabled") {
		return pass(detailsOr(out, "Guest account disabled"))
	}
	return fail(detailsOr(out, "Guest account may be enabled"))
}

// sharedAdminRule warns when more than one human account is in the admin
// group. root is not counted.
func sharedAdminRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdAdminMembers)
	if out.Stdout == "" {
		return warning(detailsOr(out, "Unable to read admin group"))
	}

	var admins []string
	for _, field := range strings.Fields(strings.TrimPrefix(out.Stdout, "GroupMembership:")) {
		if field != "root" {
			admins = append(admins, field)
		}
	}
	details := fmt.Sprintf("Admin accounts: %d", len(admins))
	if len(admins) > 0 {
		details += " (" + strings.Join(admins, ", ") + ")"
	}
	if len(admins) > 1 {
		return warning(details)
	}
	return pass(details)
}

func touchIDRule(ctx context.Context, p Probe) Outcome {
	if p.Shell(ctx, cmdTouchIDHardware).Stdout != "" {
		return pass("Touch ID hardware available")
	}
	return warning("Touch ID not available on this Mac")
}

func mrtRule(ctx context.Context, p Probe) Outcome {
	if p.Shell(ctx, cmdMRT).Stdout != "" {
		return pass("MRT available")
	}
	return warning("MRT not found")
}
