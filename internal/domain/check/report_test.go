package check

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

func sampleReport() *Report {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	defs := []Definition{
		{ID: "sip_enabled", Name: "System Integrity Protection", Category: CategoryOSHardening, Severity: 5, Remediation: "csrutil enable", APIs: []string{"csrutil"}},
		{ID: "filevault_enabled", Name: "FileVault Enabled", Category: CategoryDiskProtection, Severity: 4},
		{ID: "guest_account_disabled", Name: "Guest Account Disabled", Category: CategoryAuthentication, Severity: 3},
		{ID: "firmware_password", Name: "Firmware Password", Category: CategoryOSHardening, Severity: 2},
	}
	statuses := []Status{StatusPass, StatusWarning, StatusFail, StatusUnknown}
	results := make([]*Result, len(defs))
	for i, def := range defs {
		results[i] = NewResult(def, statuses[i], "details "+def.ID, ts, def.ID == "filevault_enabled")
	}
	return NewReport(ts, "14.4.1", "CIS", results)
}

func TestReportCounts(t *testing.T) {
	r := sampleReport()

	got := r.Summary()
	want := Summary{Passed: 1, Warnings: 1, Failed: 1, Unknown: 1, Total: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if r.ID() == "" {
		t.Fatal("expected report id")
	}
	// (5 + 2 + 0 + 0) / 14
	if want := 700.0 / 14.0; r.Score() != want {
		t.Fatalf("expected score %v, got %v", want, r.Score())
	}
}

func TestReportResultsAreCopied(t *testing.T) {
	r := sampleReport()
	results := r.Results()
	results[0] = nil

	if r.Results()[0] == nil {
		t.Fatal("mutating the returned slice must not affect the report")
	}
}

func TestReportGroupedPreservesOrder(t *testing.T) {
	groups := sampleReport().Grouped()

	var got []string
	for _, g := range groups {
		ids := make([]string, 0, len(g.Results))
		for _, res := range g.Results {
			ids = append(ids, res.CheckID())
		}
		got = append(got, string(g.Category)+":"+strings.Join(ids, ","))
	}
	want := []string{
		"OS & Firmware Hardening:sip_enabled,firmware_password",
		"Disk & Data Protection:filevault_enabled",
		"User Authentication & Access Control:guest_account_disabled",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestReportJSONRoundTrip(t *testing.T) {
	original := sampleReport()

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"timestamp":"2024-03-01T12:30:00Z"`) {
		t.Fatalf("expected ISO-8601 timestamp in %s", data)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID() != original.ID() || decoded.Score() != original.Score() {
		t.Fatalf("header mismatch: %s/%v vs %s/%v", decoded.ID(), decoded.Score(), original.ID(), original.Score())
	}
	if decoded.Total() != original.Total() {
		t.Fatalf("expected %d results, got %d", original.Total(), decoded.Total())
	}
	res, ok := decoded.Result("filevault_enabled")
	if !ok || !res.RequiresElevation() || res.Status() != StatusWarning {
		t.Fatalf("filevault result not restored: %+v", res)
	}
}

func TestNewResultNormalizesInvalidStatus(t *testing.T) {
	res := NewResult(Definition{ID: "x", Severity: 1}, Status("bogus"), "", time.Now(), false)
	if res.Status() != StatusUnknown {
		t.Fatalf("expected unknown, got %s", res.Status())
	}
}

func TestNewResultSnapshotsDefinition(t *testing.T) {
	def := Definition{ID: "x", Severity: 1, APIs: []string{"csrutil"}}
	res := NewResult(def, StatusPass, "", time.Now(), false)
	def.APIs[0] = "changed"

	if res.Definition().APIs[0] != "csrutil" {
		t.Fatal("result must hold its own copy of the definition")
	}
}

func TestDefinitionValidate(t *testing.T) {
	valid := Definition{ID: "sip_enabled", Name: "SIP", Category: CategoryOSHardening, Severity: 5}

	tests := []struct {
		name   string
		mutate func(*Definition)
		want   error
	}{
		{name: "valid", mutate: func(*Definition) {}, want: nil},
		{name: "empty id", mutate: func(d *Definition) { d.ID = " " }, want: sharedErrors.ErrEmptyCheckID},
		{name: "severity too low", mutate: func(d *Definition) { d.Severity = 0 }, want: sharedErrors.ErrInvalidSeverity},
		{name: "severity too high", mutate: func(d *Definition) { d.Severity = 6 }, want: sharedErrors.ErrInvalidSeverity},
		{name: "unknown category", mutate: func(d *Definition) { d.Category = "Other" }, want: sharedErrors.ErrUnknownCategory},
		{name: "missing name", mutate: func(d *Definition) { d.Name = "" }, want: sharedErrors.ErrInvalidDefinition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid
			tt.mutate(&def)
			err := def.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("network security")
	if err != nil || c != CategoryNetworkSecurity {
		t.Fatalf("expected network security, got %q (%v)", c, err)
	}
	if _, err := ParseCategory("nope"); !errors.Is(err, sharedErrors.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if len(Categories()) != 10 {
		t.Fatalf("expected ten categories, got %d", len(Categories()))
	}
}
