package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/registry"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"gopkg.in/yaml.v3"
)

func TestChecksListTable(t *testing.T) {
	output, err := executeCommand(t, "checks", "list")
	if err != nil {
		t.Fatalf("checks list failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "SEVERITY") {
		t.Fatalf("expected header row, got %q", lines[0])
	}
	want := fmt.Sprintf("%d checks", registry.Default().Len())
	if lines[len(lines)-1] != want {
		t.Fatalf("expected trailer %q, got %q", want, lines[len(lines)-1])
	}
	if !strings.Contains(output, "firewall_enabled") {
		t.Fatalf("expected firewall_enabled in table, got:\n%s", output)
	}
}

func TestChecksListJSON(t *testing.T) {
	output, err := executeCommand(t, "checks", "list", "-o", "json")
	if err != nil {
		t.Fatalf("checks list failed: %v", err)
	}

	var defs []check.Definition
	if err := json.Unmarshal([]byte(output), &defs); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, output)
	}
	if len(defs) != registry.Default().Len() {
		t.Fatalf("expected %d definitions, got %d", registry.Default().Len(), len(defs))
	}
	if defs[0].ID != registry.Default().All()[0].ID {
		t.Fatalf("expected scan order, first id %q", defs[0].ID)
	}
}

func TestChecksListYAMLByCategory(t *testing.T) {
	output, err := executeCommand(t, "checks", "list", "--category", "network security", "-o", "yaml")
	if err != nil {
		t.Fatalf("checks list failed: %v", err)
	}

	var defs []check.Definition
	if err := yaml.Unmarshal([]byte(output), &defs); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, output)
	}
	if len(defs) == 0 {
		t.Fatal("expected network checks")
	}
	for _, def := range defs {
		if def.Category != check.CategoryNetworkSecurity {
			t.Fatalf("unexpected category %q for %s", def.Category, def.ID)
		}
	}
}

func TestChecksListRejectsBadInput(t *testing.T) {
	_, err := executeCommand(t, "checks", "list", "--category", "Cooking")
	if !errors.Is(err, sharedErrors.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	_, err = executeCommand(t, "checks", "list", "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported output") {
		t.Fatalf("expected unsupported output error, got %v", err)
	}
}

func TestChecksShow(t *testing.T) {
	output, err := executeCommand(t, "checks", "show", "firewall_enabled")
	if err != nil {
		t.Fatalf("checks show failed: %v", err)
	}
	for _, want := range []string{
		"Firewall Enabled",
		"ID:          firewall_enabled",
		"Category:    Network Security",
		"Severity:    4/5",
		"Implemented: yes",
		"Remediation: System Settings → Network → Firewall",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestChecksShowNotFound(t *testing.T) {
	_, err := executeCommand(t, "checks", "show", "nope")
	var notFound *CheckNotFoundError
	if !errors.As(err, &notFound) || notFound.ID != "nope" {
		t.Fatalf("expected CheckNotFoundError for nope, got %v", err)
	}
}

func TestChecksShowRequiresOneArg(t *testing.T) {
	if _, err := executeCommand(t, "checks", "show"); err == nil {
		t.Fatal("expected argument error")
	}
}
