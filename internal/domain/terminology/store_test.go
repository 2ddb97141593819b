package terminology

import (
	"strings"
	"testing"
)

func testCatalogs() Catalogs {
	return Catalogs{
		Diagnoses: []CID10Code{
			{Code: "R51", Display: "Cefaleia", Category: "Sintomas e sinais"},
			{Code: "J45.9", Display: "Asma não especificada", Category: "Doenças do aparelho respiratório"},
			{Code: "I10", Display: "Hipertensão essencial (primária)", Category: "Doenças do aparelho circulatório"},
		},
		Drugs: []DCBDrug{
			{Name: "Dipirona", DCB: "03105", Synonyms: []string{"Novalgina", "Metamizol"}},
			{Name: "Amoxicilina", DCB: "00660", Synonyms: []string{"Amoxil"}},
		},
		Procedures: []TUSSProcedure{
			{Code: "40304361", Description: "Hemograma com contagem de plaquetas ou frações", Table: "22", Synonyms: []string{"Hemograma", "Hemograma completo"}},
			{Code: "10101012", Description: "Consulta em consultório", Table: "22", Synonyms: []string{"Consulta médica"}},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(testCatalogs())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestNewStore_Counts(t *testing.T) {
	store := newTestStore(t)

	diagnoses, drugs, procedures := store.Counts()
	if diagnoses != 3 || drugs != 2 || procedures != 2 {
		t.Errorf("Counts() = (%d, %d, %d), want (3, 2, 2)", diagnoses, drugs, procedures)
	}
}

func TestNewStore_RejectsEmptyCode(t *testing.T) {
	catalogs := testCatalogs()
	catalogs.Diagnoses = append(catalogs.Diagnoses, CID10Code{Code: "", Display: "Sem código"})

	if _, err := NewStore(catalogs); err == nil {
		t.Fatal("expected error for CID-10 entry without code")
	}
}

func TestNewStore_RejectsEmptyDisplay(t *testing.T) {
	catalogs := testCatalogs()
	catalogs.Procedures = append(catalogs.Procedures, TUSSProcedure{Code: "99999999", Description: ""})

	if _, err := NewStore(catalogs); err == nil {
		t.Fatal("expected error for TUSS entry without description")
	}
}

func TestNewStore_RejectsDuplicateCodes(t *testing.T) {
	catalogs := testCatalogs()
	catalogs.Diagnoses = append(catalogs.Diagnoses, CID10Code{Code: "R51", Display: "Cefaleia duplicada"})

	_, err := NewStore(catalogs)
	if err == nil {
		t.Fatal("expected error for duplicate CID-10 code")
	}
	if !strings.Contains(err.Error(), "R51") {
		t.Errorf("error should name the duplicate code, got: %v", err)
	}
}

func TestNewStore_RejectsDuplicateDrugNames(t *testing.T) {
	catalogs := testCatalogs()
	catalogs.Drugs = append(catalogs.Drugs, DCBDrug{Name: "Dipirona", DCB: "99999"})

	if _, err := NewStore(catalogs); err == nil {
		t.Fatal("expected error for duplicate DCB name")
	}
}

func TestStore_SearchCID10(t *testing.T) {
	store := newTestStore(t)

	matches := store.SearchCID10("cefaleia", 5)
	if len(matches) == 0 {
		t.Fatal("expected at least one match for 'cefaleia'")
	}
	if matches[0].Entry.Code != "R51" {
		t.Errorf("top match = %s, want R51", matches[0].Entry.Code)
	}
	if matches[0].Score < 0.9 {
		t.Errorf("exact label match score = %.3f, want >= 0.9", matches[0].Score)
	}
}

func TestStore_SearchDCB_Synonym(t *testing.T) {
	store := newTestStore(t)

	matches := store.SearchDCB("novalgina", 5)
	if len(matches) == 0 {
		t.Fatal("expected a match for synonym 'novalgina'")
	}
	if matches[0].Entry.Name != "Dipirona" {
		t.Errorf("top match = %s, want canonical name Dipirona", matches[0].Entry.Name)
	}
}

func TestStore_SearchTUSS(t *testing.T) {
	store := newTestStore(t)

	matches := store.SearchTUSS("hemograma", 5)
	if len(matches) == 0 {
		t.Fatal("expected a match for 'hemograma'")
	}
	if matches[0].Entry.Code != "40304361" {
		t.Errorf("top match = %s, want 40304361", matches[0].Entry.Code)
	}
}

func TestStore_Lookups(t *testing.T) {
	store := newTestStore(t)

	if entry, ok := store.GetCID10("I10"); !ok || entry.Display != "Hipertensão essencial (primária)" {
		t.Errorf("GetCID10(I10) = (%v, %v)", entry, ok)
	}
	if _, ok := store.GetCID10("Z99"); ok {
		t.Error("GetCID10(Z99) should miss")
	}

	if entry, ok := store.GetDCB("Amoxicilina"); !ok || entry.DCB != "00660" {
		t.Errorf("GetDCB(Amoxicilina) = (%v, %v)", entry, ok)
	}
	if _, ok := store.GetDCB("Inexistente"); ok {
		t.Error("GetDCB(Inexistente) should miss")
	}

	if entry, ok := store.GetTUSS("10101012"); !ok || entry.Description != "Consulta em consultório" {
		t.Errorf("GetTUSS(10101012) = (%v, %v)", entry, ok)
	}
	if _, ok := store.GetTUSS("00000000"); ok {
		t.Error("GetTUSS(00000000) should miss")
	}
}

func TestStore_SearchIsDeterministic(t *testing.T) {
	store := newTestStore(t)

	first := store.SearchCID10("asma", 5)
	for i := 0; i < 10; i++ {
		again := store.SearchCID10("asma", 5)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d results, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].Entry.Code != first[j].Entry.Code || again[j].Score != first[j].Score {
				t.Fatalf("run %d result %d differs: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}
