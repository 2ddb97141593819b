package terminology

import (
	"context"
	"testing"
)

func TestService_SearchCID10_RequiresQuery(t *testing.T) {
	svc := NewService(newTestStore(t))

	if _, err := svc.SearchCID10(context.Background(), "", 10); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestService_SearchCID10_DefaultsLimit(t *testing.T) {
	svc := NewService(newTestStore(t))

	results, err := svc.SearchCID10(context.Background(), "cefaleia", 0)
	if err != nil {
		t.Fatalf("SearchCID10: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results with defaulted limit")
	}
}

func TestService_LookupCID10(t *testing.T) {
	svc := NewService(newTestStore(t))

	entry, err := svc.LookupCID10(context.Background(), "R51")
	if err != nil {
		t.Fatalf("LookupCID10: %v", err)
	}
	if entry.Display != "Cefaleia" {
		t.Errorf("display = %s, want Cefaleia", entry.Display)
	}

	if _, err := svc.LookupCID10(context.Background(), "X00"); err == nil {
		t.Error("expected error for unknown code")
	}
	if _, err := svc.LookupCID10(context.Background(), ""); err == nil {
		t.Error("expected error for empty code")
	}
}

func TestService_LookupDCB(t *testing.T) {
	svc := NewService(newTestStore(t))

	entry, err := svc.LookupDCB(context.Background(), "Dipirona")
	if err != nil {
		t.Fatalf("LookupDCB: %v", err)
	}
	if entry.DCB != "03105" {
		t.Errorf("dcb = %s, want 03105", entry.DCB)
	}

	if _, err := svc.LookupDCB(context.Background(), "Nada"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestService_SearchTUSS(t *testing.T) {
	svc := NewService(newTestStore(t))

	results, err := svc.SearchTUSS(context.Background(), "consulta medica", 10)
	if err != nil {
		t.Fatalf("SearchTUSS: %v", err)
	}
	if len(results) == 0 || results[0].Entry.Code != "10101012" {
		t.Fatalf("expected consulta procedure first, got %+v", results)
	}
}

func TestService_LookupTUSS(t *testing.T) {
	svc := NewService(newTestStore(t))

	entry, err := svc.LookupTUSS(context.Background(), "40304361")
	if err != nil {
		t.Fatalf("LookupTUSS: %v", err)
	}
	if entry.Table != "22" {
		t.Errorf("table = %s, want 22", entry.Table)
	}

	if _, err := svc.LookupTUSS(context.Background(), "12345678"); err == nil {
		t.Error("expected error for unknown code")
	}
}
