package terminology

import (
	"context"
	"fmt"
)

// Service provides catalog search and lookup operations over the
// read-only store. Searches are pure: no I/O, no locking, no state.
type Service struct {
	store *Store
}

// NewService creates a new terminology service.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying catalog store for collaborating domains.
func (s *Service) Store() *Store { return s.store }

// SearchCID10 searches diagnosis codes by free text.
func (s *Service) SearchCID10(_ context.Context, query string, limit int) ([]CID10Match, error) {
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.SearchCID10(query, limit), nil
}

// LookupCID10 looks up a single diagnosis code.
func (s *Service) LookupCID10(_ context.Context, code string) (CID10Code, error) {
	if code == "" {
		return CID10Code{}, fmt.Errorf("code is required")
	}
	entry, ok := s.store.GetCID10(code)
	if !ok {
		return CID10Code{}, fmt.Errorf("code not found in CID-10: %s", code)
	}
	return entry, nil
}

// SearchDCB searches drug names by free text.
func (s *Service) SearchDCB(_ context.Context, query string, limit int) ([]DCBMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.SearchDCB(query, limit), nil
}

// LookupDCB looks up a single drug by canonical name.
func (s *Service) LookupDCB(_ context.Context, name string) (DCBDrug, error) {
	if name == "" {
		return DCBDrug{}, fmt.Errorf("name is required")
	}
	entry, ok := s.store.GetDCB(name)
	if !ok {
		return DCBDrug{}, fmt.Errorf("name not found in DCB: %s", name)
	}
	return entry, nil
}

// SearchTUSS searches procedure codes by free text.
func (s *Service) SearchTUSS(_ context.Context, query string, limit int) ([]TUSSMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.SearchTUSS(query, limit), nil
}

// LookupTUSS looks up a single procedure code.
func (s *Service) LookupTUSS(_ context.Context, code string) (TUSSProcedure, error) {
	if code == "" {
		return TUSSProcedure{}, fmt.Errorf("code is required")
	}
	entry, ok := s.store.GetTUSS(code)
	if !ok {
		return TUSSProcedure{}, fmt.Errorf("code not found in TUSS: %s", code)
	}
	return entry, nil
}
