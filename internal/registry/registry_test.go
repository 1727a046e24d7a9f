package registry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/khanhnv2901/seca-host/internal/domain/check"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	r, err := New(DefaultCatalog())
	if err != nil {
		t.Fatalf("built-in catalogue rejected: %v", err)
	}
	if r.Len() != 31 {
		t.Fatalf("expected 31 checks, got %d", r.Len())
	}

	seen := make(map[string]bool)
	for _, def := range r.All() {
		if seen[def.ID] {
			t.Fatalf("duplicate id %s", def.ID)
		}
		seen[def.ID] = true
		if def.Severity < check.MinSeverity || def.Severity > check.MaxSeverity {
			t.Errorf("%s: severity %d out of range", def.ID, def.Severity)
		}
		if def.Description == "" || def.Hint == "" {
			t.Errorf("%s: missing description or hint", def.ID)
		}
		if len(def.APIs) == 0 {
			t.Errorf("%s: no apis listed", def.ID)
		}
	}
}

func TestAllPreservesOrder(t *testing.T) {
	r := Default()

	all := r.All()
	if all[0].ID != "os_latest_version" {
		t.Fatalf("expected os_latest_version first, got %s", all[0].ID)
	}
	if last := all[len(all)-1]; last.ID != "audit_enabled" {
		t.Fatalf("expected audit_enabled last, got %s", last.ID)
	}

	again := r.All()
	if diff := cmp.Diff(all, again); diff != "" {
		t.Fatalf("order changed between calls:\n%s", diff)
	}
}

func TestAllReturnsCopies(t *testing.T) {
	r := Default()

	all := r.All()
	all[0].Name = "mutated"
	all[0].APIs[0] = "mutated"

	def, err := r.ByID(all[0].ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if def.Name == "mutated" || def.APIs[0] == "mutated" {
		t.Fatal("registry state leaked through All()")
	}
}

func TestByID(t *testing.T) {
	r := Default()

	def, err := r.ByID("sip_enabled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Severity != 5 || def.Category != check.CategoryOSHardening {
		t.Fatalf("unexpected definition: %+v", def)
	}

	_, err = r.ByID("no_such_check")
	if !errors.Is(err, sharedErrors.ErrCheckNotFound) {
		t.Fatalf("expected ErrCheckNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "no_such_check" {
		t.Fatalf("expected NotFoundError carrying the id, got %v", err)
	}
}

func TestNewRejectsInvalidCatalogue(t *testing.T) {
	base := check.Definition{ID: "a", Name: "A", Category: check.CategoryNetworkSecurity, Severity: 3}

	tests := []struct {
		name string
		defs []check.Definition
		want error
	}{
		{name: "duplicate id", defs: []check.Definition{base, base}, want: sharedErrors.ErrDuplicateCheckID},
		{name: "bad severity", defs: []check.Definition{{ID: "b", Name: "B", Category: check.CategoryNetworkSecurity, Severity: 9}}, want: sharedErrors.ErrInvalidSeverity},
		{name: "bad category", defs: []check.Definition{{ID: "c", Name: "C", Category: "Elsewhere", Severity: 1}}, want: sharedErrors.ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.defs); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Default().Categories()
	if len(cats) != 9 {
		t.Fatalf("expected 9 populated categories, got %d: %v", len(cats), cats)
	}
	if cats[0] != check.CategoryOSHardening || cats[8] != check.CategoryLoggingAuditing {
		t.Fatalf("unexpected category order: %v", cats)
	}
	for _, c := range cats {
		if c == check.CategoryCompliance {
			t.Fatal("compliance has no checks in the built-in catalogue")
		}
	}
	if n := len(Default().InCategory(check.CategoryNetworkSecurity)); n != 4 {
		t.Fatalf("expected 4 network checks, got %d", n)
	}
}

func TestFilter(t *testing.T) {
	r := Default()

	sub, err := r.Filter([]string{"gatekeeper_enabled", "sip_enabled"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	var ids []string
	for _, def := range sub.All() {
		ids = append(ids, def.ID)
	}
	if diff := cmp.Diff([]string{"sip_enabled", "gatekeeper_enabled"}, ids); diff != "" {
		t.Fatalf("filter must keep canonical order (-want +got):\n%s", diff)
	}

	if _, err := r.Filter([]string{"sip_enabled", "bogus"}); !errors.Is(err, sharedErrors.ErrCheckNotFound) {
		t.Fatalf("expected ErrCheckNotFound, got %v", err)
	}

	same, err := r.Filter(nil)
	if err != nil || same.Len() != r.Len() {
		t.Fatalf("empty filter must return the full registry")
	}
}
