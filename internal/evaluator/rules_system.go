package evaluator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	cmdOSVersion        = "sw_vers -productVersion"
	cmdSoftwareUpdates  = "softwareupdate -l 2>/dev/null | grep -i 'macOS' | head -1"
	cmdAutoCheck        = "defaults read /Library/Preferences/com.apple.SoftwareUpdate AutomaticCheckEnabled 2>/dev/null || echo '0'"
	cmdScheduleFreq     = "defaults read /Library/Preferences/com.apple.SoftwareUpdate ScheduleFrequency 2>/dev/null || echo '0'"
	cmdCPUBrand         = "sysctl -n machdep.cpu.brand_string 2>/dev/null"
	cmdFirmwarePassword = "firmwarepasswd -check 2>/dev/null || echo 'unavailable'"
	cmdSecureBoot       = "system_profiler SPSecureBootStatus 2>/dev/null || echo 'unknown'"
	cmdSIP              = "csrutil status 2>&1"
	cmdSystemVolume     = "system_profiler SPSoftwareDataType | grep -i 'System Volume'"
)

// OS & firmware hardening and system integrity
var systemRules = map[string]Rule{
	"os_latest_version":     latestOSRule,
	"auto_security_updates": autoUpdatesRule,
	"firmware_password":     firmwarePasswordRule,
	"secure_boot":           secureBootRule,
	"sip_enabled":           containsRule(cmdSIP, "enabled", "Unable to check"),
	"signed_system_volume":  signedVolumeRule,
}

func latestOSRule(ctx context.Context, p Probe) Outcome {
	current := p.Shell(ctx, cmdOSVersion)
	updates := p.Shell(ctx, cmdSoftwareUpdates)
	if updates.TimedOut() {
		return unknown(fmt.Sprintf("Current: %s • Software Update did not respond", detailsOr(current, "unknown")))
	}
	if updates.Stdout == "" && updates.ExitCode != 0 {
		return unknown(fmt.Sprintf("Current: %s • Software Update unavailable", detailsOr(current, "unknown")))
	}

	hasUpdates := updates.Stdout != "" && !strings.Contains(updates.Stdout, "No new")
	offered := ""
	if hasUpdates {
		newer, version, ok := offersNewerVersion(current.Stdout, updates.Stdout)
		if ok {
			hasUpdates = newer
			offered = version
		}
	}

	details := fmt.Sprintf("Current: %s • Updates available: %t", detailsOr(current, "unknown"), hasUpdates)
	if hasUpdates {
		if offered != "" {
			details += " (macOS " + offered + ")"
		}
		return warning(details)
	}
	return pass(details)
}

var offeredVersionPattern = regexp.MustCompile(`macOS[^\d]*(\d+(?:\.\d+){0,2})`)

// offersNewerVersion compares the version named in a softwareupdate line
// with the installed one. ok is false when either cannot be parsed.
func offersNewerVersion(current, updates string) (newer bool, offered string, ok bool) {
	m := offeredVersionPattern.FindStringSubmatch(updates)
	if m == nil {
		return false, "", false
	}
	installed, err := semver.NewVersion(strings.TrimSpace(current))
	if err != nil {
		return false, "", false
	}
	available, err := semver.NewVersion(m[1])
	if err != nil {
		return false, "", false
	}
	return available.GreaterThan(installed), m[1], true
}

// autoUpdatesRule needs both the automatic check and the install schedule.
// The check alone earns a Warning.
func autoUpdatesRule(ctx context.Context, p Probe) Outcome {
	autoCheck := p.Shell(ctx, cmdAutoCheck).Stdout == "1"
	scheduled := p.Shell(ctx, cmdScheduleFreq).Stdout == "7"

	details := fmt.Sprintf("Automatic Check: %s • Scheduled Install: %s", mark(autoCheck), mark(scheduled))
	switch {
	case autoCheck && scheduled:
		return pass(details)
	case autoCheck:
		return warning(details)
	default:
		return fail(details)
	}
}

func firmwarePasswordRule(ctx context.Context, p Probe) Outcome {
	if detectHardware(ctx, p) == HardwareAppleSilicon {
		return pass("Apple Silicon: Check Secure Boot instead")
	}
	out := p.Shell(ctx, cmdFirmwarePassword)
	if strings.Contains(strings.ToLower(out.Stdout), "password enabled: yes") {
		return pass("Firmware password is enabled")
	}
	return fail("Firmware password not set")
}

func secureBootRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdSecureBoot)
	details := detailsOr(out, "Unable to determine")
	switch {
	case strings.Contains(out.Stdout, "Full Security"):
		return pass(details)
	case strings.Contains(out.Stdout, "unknown"):
		return unknown(details)
	default:
		return warning(details)
	}
}

func signedVolumeRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdSystemVolume)
	if out.Stdout != "" {
		return pass("System volume is cryptographically signed")
	}
	return warning("Unable to verify")
}

// Hardware is the host's processor class
type Hardware string

const (
	HardwareAppleSilicon Hardware = "apple_silicon"
	HardwareIntel        Hardware = "intel"
	HardwareUnknown      Hardware = "unknown"
)

func detectHardware(ctx context.Context, p Probe) Hardware {
	brand := strings.ToLower(p.Shell(ctx, cmdCPUBrand).Stdout)
	switch {
	case strings.HasPrefix(brand, "apple"):
		return HardwareAppleSilicon
	case strings.Contains(brand, "intel"):
		return HardwareIntel
	default:
		return HardwareUnknown
	}
}
