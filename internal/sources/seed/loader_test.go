package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
	"github.com/MrSnakeDoc/statuspage/internal/store/memory"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create seed file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Setenv("SEED_DB_DESC", "Primary database")
	path := writeSeed(t, `
services:
  - name: API
    description: Public REST API
  - name: Database
    description: ${SEED_DB_DESC}
    status: major outage
`)

	f, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Services) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(f.Services))
	}
	if f.Services[1].Description != "Primary database" {
		t.Errorf("env not expanded: %q", f.Services[1].Description)
	}

	fields, err := f.Fields()
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	if fields[0].Status != nil {
		t.Errorf("omitted status should stay unset")
	}
	if *fields[1].Status != domain.StatusMajorOutage {
		t.Errorf("status = %q", *fields[1].Status)
	}
}

func TestLoaderLoad_Errors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load(); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeSeed(t, "services: [unterminated")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestFields_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"blank name", Entry{Name: " "}},
		{"unknown status", Entry{Name: "API", Status: "Sleeping"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Services: []Entry{{Name: "OK"}, tt.entry}}
			if _, err := f.Fields(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	f := &File{Services: []Entry{
		{Name: "API"},
		{Name: "CDN", Status: "Degraded Performance"},
	}}

	n, err := Apply(ctx, st, f, logger.Nop())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if n != 2 || st.Count() != 2 {
		t.Fatalf("expected 2 services, got n=%d count=%d", n, st.Count())
	}

	list, _ := st.List(ctx)
	for _, svc := range list {
		if svc.Name == "API" && svc.Status != domain.StatusOperational {
			t.Errorf("default status not applied: %q", svc.Status)
		}
	}

	// A second run must not duplicate anything.
	n, err = Apply(ctx, st, f, logger.Nop())
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	if n != 0 || st.Count() != 2 {
		t.Errorf("seed re-applied: n=%d count=%d", n, st.Count())
	}
}
