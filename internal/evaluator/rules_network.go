package evaluator

import (
	"context"
	"fmt"
	"strings"
)

const (
	cmdFirewallState = "defaults read /Library/Preferences/com.apple.alf globalstate 2>/dev/null || echo '0'"
	cmdStealthMode   = "defaults read /Library/Preferences/com.apple.alf stealthenabled 2>/dev/null || echo '0'"
	cmdBluetooth     = "defaults read /Library/Preferences/com.apple.Bluetooth ControllerPowerState 2>/dev/null || echo '0'"
	cmdDNSServers    = "scutil --dns 2>/dev/null | grep 'nameserver\\['"
)

// secureResolvers are filtering or encrypted DNS providers
var secureResolvers = []string{"1.1.1.1", "9.9.9.9", "208.67.222.222"}

var networkRules = map[string]Rule{
	"firewall_enabled":     firewallRule,
	"stealth_mode_enabled": stealthModeRule,
	"bluetooth_restricted": bluetoothRule,
	"dns_secure":           dnsRule,
}

// firewallOn reports whether the application firewall globalstate is 1
func firewallOn(value string) bool {
	return value == "1"
}

func firewallRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdFirewallState)
	details := detailsOr(out, "Not enabled")
	if firewallOn(out.Stdout) {
		return pass(details)
	}
	return fail(details)
}

func stealthModeRule(ctx context.Context, p Probe) Outcome {
	enabled := firewallOn(p.Shell(ctx, cmdFirewallState).Stdout)
	stealth := p.Shell(ctx, cmdStealthMode).Stdout == "1"

	state := "Disabled"
	if stealth {
		state = "Enabled"
	}
	details := "Stealth Mode: " + state
	if !enabled {
		details += " • Firewall off"
	}
	if enabled && stealth {
		return pass(details)
	}
	return warning(details)
}

func bluetoothRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdBluetooth)
	return pass("Bluetooth status: " + detailsOr(out, "unknown"))
}

func dnsRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdDNSServers)
	servers := parseNameservers(out.Stdout)
	if len(servers) == 0 {
		return warning(detailsOr(out, "No DNS servers found"))
	}

	details := fmt.Sprintf("DNS Servers: %s", strings.Join(servers, ", "))
	for _, server := range servers {
		for _, resolver := range secureResolvers {
			if server == resolver {
				return pass(details)
			}
		}
	}
	return warning(details)
}

// parseNameservers extracts unique addresses from "nameserver[0] : x" lines
func parseNameservers(output string) []string {
	seen := make(map[string]bool)
	var servers []string
	for _, line := range strings.Split(output, "\n") {
		_, addr, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		addr = strings.TrimSpace(addr)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		servers = append(servers, addr)
	}
	return servers
}
