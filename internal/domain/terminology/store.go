package terminology

import (
	"fmt"

	"github.com/clindoc/clindoc/internal/platform/fuzzy"
)

// Store holds the loaded catalogs and their fuzzy indexes. It is built
// once at startup and read-only afterwards, so any number of concurrent
// callers may search and look up without coordination.
type Store struct {
	diagnoses  []CID10Code
	drugs      []DCBDrug
	procedures []TUSSProcedure

	cid10ByCode map[string]int
	drugByName  map[string]int
	drugByDCB   map[string]int
	tussByCode  map[string]int

	cid10Index *fuzzy.Index
	dcbIndex   *fuzzy.Index
	tussIndex  *fuzzy.Index
}

// NewStore validates the catalogs and builds one fuzzy index per
// catalog. Malformed reference data (empty codes or labels, duplicate
// codes inside one catalog) is a fatal initialization error: the
// catalogs are foundational state with no fallback.
func NewStore(catalogs Catalogs) (*Store, error) {
	return NewStoreWithOptions(catalogs, fuzzy.DefaultOptions())
}

// NewStoreWithOptions is NewStore with explicit engine tuning.
func NewStoreWithOptions(catalogs Catalogs, opts fuzzy.Options) (*Store, error) {
	s := &Store{
		diagnoses:   catalogs.Diagnoses,
		drugs:       catalogs.Drugs,
		procedures:  catalogs.Procedures,
		cid10ByCode: make(map[string]int, len(catalogs.Diagnoses)),
		drugByName:  make(map[string]int, len(catalogs.Drugs)),
		drugByDCB:   make(map[string]int, len(catalogs.Drugs)),
		tussByCode:  make(map[string]int, len(catalogs.Procedures)),
	}

	weights := fuzzy.DefaultFieldWeights()

	cid10Entries := make([]fuzzy.Entry, len(s.diagnoses))
	for i, d := range s.diagnoses {
		if d.Code == "" || d.Display == "" {
			return nil, fmt.Errorf("cid10 entry %d: code and display are required", i)
		}
		if _, dup := s.cid10ByCode[d.Code]; dup {
			return nil, fmt.Errorf("cid10 entry %d: duplicate code %q", i, d.Code)
		}
		s.cid10ByCode[d.Code] = i
		cid10Entries[i] = fuzzy.Entry{Code: d.Code, Label: d.Display}
	}

	dcbEntries := make([]fuzzy.Entry, len(s.drugs))
	for i, d := range s.drugs {
		if d.Name == "" || d.DCB == "" {
			return nil, fmt.Errorf("dcb entry %d: name and dcb are required", i)
		}
		if _, dup := s.drugByName[d.Name]; dup {
			return nil, fmt.Errorf("dcb entry %d: duplicate name %q", i, d.Name)
		}
		if _, dup := s.drugByDCB[d.DCB]; dup {
			return nil, fmt.Errorf("dcb entry %d: duplicate dcb %q", i, d.DCB)
		}
		s.drugByName[d.Name] = i
		s.drugByDCB[d.DCB] = i
		dcbEntries[i] = fuzzy.Entry{Code: d.DCB, Label: d.Name, Aliases: d.Synonyms}
	}

	tussEntries := make([]fuzzy.Entry, len(s.procedures))
	for i, p := range s.procedures {
		if p.Code == "" || p.Description == "" {
			return nil, fmt.Errorf("tuss entry %d: code and description are required", i)
		}
		if _, dup := s.tussByCode[p.Code]; dup {
			return nil, fmt.Errorf("tuss entry %d: duplicate code %q", i, p.Code)
		}
		s.tussByCode[p.Code] = i
		tussEntries[i] = fuzzy.Entry{Code: p.Code, Label: p.Description, Aliases: p.Synonyms}
	}

	s.cid10Index = fuzzy.BuildIndex(cid10Entries, weights, opts)
	s.dcbIndex = fuzzy.BuildIndex(dcbEntries, weights, opts)
	s.tussIndex = fuzzy.BuildIndex(tussEntries, weights, opts)

	return s, nil
}

// Counts reports how many entries each catalog holds.
func (s *Store) Counts() (diagnoses, drugs, procedures int) {
	return len(s.diagnoses), len(s.drugs), len(s.procedures)
}

// SearchCID10 returns ranked diagnosis candidates for a free-text query.
func (s *Store) SearchCID10(query string, limit int) []CID10Match {
	candidates := s.cid10Index.Search(query, limit)
	results := make([]CID10Match, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, CID10Match{
			Entry: s.diagnoses[s.cid10ByCode[c.Entry.Code]],
			Score: c.Score,
		})
	}
	return results
}

// SearchDCB returns ranked drug candidates for a free-text query.
func (s *Store) SearchDCB(query string, limit int) []DCBMatch {
	candidates := s.dcbIndex.Search(query, limit)
	results := make([]DCBMatch, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, DCBMatch{
			Entry: s.drugs[s.drugByDCB[c.Entry.Code]],
			Score: c.Score,
		})
	}
	return results
}

// SearchTUSS returns ranked procedure candidates for a free-text query.
func (s *Store) SearchTUSS(query string, limit int) []TUSSMatch {
	candidates := s.tussIndex.Search(query, limit)
	results := make([]TUSSMatch, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, TUSSMatch{
			Entry: s.procedures[s.tussByCode[c.Entry.Code]],
			Score: c.Score,
		})
	}
	return results
}

// GetCID10 looks up a diagnosis by exact code.
func (s *Store) GetCID10(code string) (CID10Code, bool) {
	i, ok := s.cid10ByCode[code]
	if !ok {
		return CID10Code{}, false
	}
	return s.diagnoses[i], true
}

// GetDCB looks up a drug by its canonical name.
func (s *Store) GetDCB(name string) (DCBDrug, bool) {
	i, ok := s.drugByName[name]
	if !ok {
		return DCBDrug{}, false
	}
	return s.drugs[i], true
}

// GetTUSS looks up a procedure by exact code.
func (s *Store) GetTUSS(code string) (TUSSProcedure, bool) {
	i, ok := s.tussByCode[code]
	if !ok {
		return TUSSProcedure{}, false
	}
	return s.procedures[i], true
}
