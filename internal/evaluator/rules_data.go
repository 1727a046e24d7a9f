package evaluator

import (
	"context"
	"strings"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
)

const (
	cmdFileVault       = "fdesetup status 2>&1"
	cmdFileVaultEscrow = "fdesetup status 2>/dev/null || echo 'Permission Denied'"
)

// Disk and data protection
var dataRules = map[string]Rule{
	"filevault_enabled":         fileVaultRule,
	"recovery_key_escrowed":     escrowRule,
	"external_drives_encrypted": fixed(warning("Manual review recommended for external drives")),
}

// fileVaultRule downgrades to Warning when fdesetup itself fails, since
// that usually means the status could not be read without privileges.
func fileVaultRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdFileVault)
	o := Outcome{
		Details:           detailsOr(out, "Requires elevation"),
		RequiresElevation: true,
	}
	switch {
	case !out.Succeeded():
		o.Status = check.StatusWarning
	case strings.Contains(out.Stdout, "On"):
		o.Status = check.StatusPass
	default:
		o.Status = check.StatusFail
	}
	return o
}

func escrowRule(ctx context.Context, p Probe) Outcome {
	out := p.Shell(ctx, cmdFileVaultEscrow)
	var o Outcome
	switch {
	case strings.Contains(out.Stdout, "Recovery Key escrowed"):
		o = pass("Recovery Key Status: Escrowed")
	case strings.Contains(out.Stdout, "Personal Recovery Key"):
		o = warning("Recovery Key Status: Personal Key")
	default:
		o = warning("Recovery Key Status: Unknown")
	}
	o.RequiresElevation = true
	return o
}
