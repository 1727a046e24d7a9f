package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/khanhnv2901/seca-host/internal/registry"
)

func TestInfoCommand(t *testing.T) {
	home := resetCommandState(t)

	output, err := runRoot(t, "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	reg := registry.Default()
	for _, want := range []string{
		"Platform:          " + runtime.GOOS + "/" + runtime.GOARCH,
		"Data Directory:     " + filepath.Join(home, "data"),
		"Reports Directory:  " + filepath.Join(home, "data", "reports") + " ✗ (not created yet)",
		"✗ (using defaults)",
		fmt.Sprintf("Checks:       %d in %d categories", reg.Len(), len(reg.Categories())),
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestInfoCommandReportsExistingDirs(t *testing.T) {
	home := resetCommandState(t)
	if err := os.MkdirAll(filepath.Join(home, "data", "reports"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	output, err := runRoot(t, "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(output, "✓ (exists)") {
		t.Fatalf("expected existing reports dir, got:\n%s", output)
	}
}
