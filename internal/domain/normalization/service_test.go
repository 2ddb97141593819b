package normalization

import (
	"context"
	"testing"

	"github.com/clindoc/clindoc/internal/domain/terminology"
)

func newTestStore(t *testing.T) *terminology.Store {
	t.Helper()
	store, err := terminology.NewStore(terminology.Catalogs{
		Diagnoses: []terminology.CID10Code{
			{Code: "R51", Display: "Cefaleia"},
			{Code: "J45.9", Display: "Asma não especificada"},
			{Code: "I10", Display: "Hipertensão essencial (primária)"},
			{Code: "E11.9", Display: "Diabetes mellitus não-insulino-dependente sem complicações"},
		},
		Drugs: []terminology.DCBDrug{
			{Name: "Amoxicilina", DCB: "00660", Synonyms: []string{"Amoxil"}},
			{Name: "Dipirona", DCB: "03105", Synonyms: []string{"Novalgina"}},
		},
		Procedures: []terminology.TUSSProcedure{
			{Code: "40304361", Description: "Hemograma com contagem de plaquetas ou frações", Table: "22", Synonyms: []string{"Hemograma"}},
			{Code: "10101012", Description: "Consulta em consultório", Table: "22"},
		},
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newTestStore(t), 0)
}

func TestNormalizeDrug_ExactName(t *testing.T) {
	svc := newTestService(t)

	got := svc.NormalizeDrug(context.Background(), "Amoxicilina")
	if !got.Matched() {
		t.Fatal("expected a match for exact drug name")
	}
	if *got.NormalizedCode != "Amoxicilina" {
		t.Errorf("code = %s, want Amoxicilina", *got.NormalizedCode)
	}
	if *got.Confidence < 0.9 {
		t.Errorf("confidence = %.2f, want >= 0.9", *got.Confidence)
	}
	if got.Kind != KindDrug || got.RawText != "Amoxicilina" {
		t.Errorf("kind/raw = %s/%s", got.Kind, got.RawText)
	}
}

func TestNormalizeDiagnosis_NoCorrespondence(t *testing.T) {
	svc := newTestService(t)

	got := svc.NormalizeDiagnosis(context.Background(), "dor de cabeça leve com fotofobia ocasional")
	if got.RawText != "dor de cabeça leve com fotofobia ocasional" {
		t.Errorf("raw text not preserved: %s", got.RawText)
	}
	// Both-or-neither: an unmatched suggestion carries no partial fields.
	if got.NormalizedCode != nil && got.NormalizedLabel == nil {
		t.Error("code set without label")
	}
	if got.NormalizedCode == nil && (got.NormalizedLabel != nil || got.Confidence != nil) {
		t.Error("label or confidence set without code")
	}
}

func TestNormalizeDiagnosis_AccentAndCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	upper := svc.NormalizeDiagnosis(context.Background(), "CEFALEIA")
	accented := svc.NormalizeDiagnosis(context.Background(), "cefaléia")

	if !upper.Matched() || !accented.Matched() {
		t.Fatal("expected both variants to match")
	}
	if *upper.NormalizedCode != "R51" || *accented.NormalizedCode != "R51" {
		t.Errorf("codes = %s / %s, want R51", *upper.NormalizedCode, *accented.NormalizedCode)
	}
	if *upper.Confidence != *accented.Confidence {
		t.Errorf("variants scored differently: %.2f vs %.2f", *upper.Confidence, *accented.Confidence)
	}
}

func TestNormalizeAll_SkipsBlanksAndPreservesOrder(t *testing.T) {
	svc := newTestService(t)

	batch := MentionBatch{
		Diagnoses:   []string{"asma", "", "  ", "hipertensão"},
		Medications: []string{"dipirona"},
	}
	got := svc.NormalizeAll(context.Background(), batch)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].RawText != "asma" || got[0].Kind != KindDiagnosis {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].RawText != "hipertensão" || got[1].Kind != KindDiagnosis {
		t.Errorf("second = %+v", got[1])
	}
	if got[2].RawText != "dipirona" || got[2].Kind != KindDrug {
		t.Errorf("third = %+v", got[2])
	}
}

func TestNormalizeAll_Idempotent(t *testing.T) {
	svc := newTestService(t)
	batch := MentionBatch{Diagnoses: []string{"cefaleia", "asma"}, Medications: []string{"novalgina"}}

	first := svc.NormalizeAll(context.Background(), batch)
	second := svc.NormalizeAll(context.Background(), batch)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.RawText != b.RawText || a.Matched() != b.Matched() {
			t.Fatalf("run differs at %d: %+v vs %+v", i, a, b)
		}
		if a.Matched() && (*a.NormalizedCode != *b.NormalizedCode || *a.Confidence != *b.Confidence) {
			t.Fatalf("matched fields differ at %d", i)
		}
	}
}

func TestMatchProcedures_PartialPhrase(t *testing.T) {
	svc := newTestService(t)

	got := svc.MatchProcedures(context.Background(), []DetectedProcedure{
		{Name: "Hemograma completo", Quantity: 1},
	})

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Code != "40304361" {
		t.Errorf("code = %s, want 40304361", got[0].Code)
	}
	if got[0].MatchConfidence <= 0.3 {
		t.Errorf("confidence = %.2f, want > 0.3", got[0].MatchConfidence)
	}
}

func TestMatchProcedures_UnknownBecomesPlaceholder(t *testing.T) {
	svc := newTestService(t)

	got := svc.MatchProcedures(context.Background(), []DetectedProcedure{
		{Name: "Exame XYZ-Inexistente"},
	})

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	p := got[0]
	if p.Code != "" {
		t.Errorf("code = %q, want empty", p.Code)
	}
	if p.Description != "Exame XYZ-Inexistente" {
		t.Errorf("description = %s, want original name", p.Description)
	}
	if p.Table != terminology.DefaultTUSSTable {
		t.Errorf("table = %s, want %s", p.Table, terminology.DefaultTUSSTable)
	}
	if p.MatchConfidence != 0 {
		t.Errorf("confidence = %.2f, want 0", p.MatchConfidence)
	}
	if p.Quantity != 1 {
		t.Errorf("quantity = %d, want defaulted 1", p.Quantity)
	}
}

func TestMatchProcedures_QuantityPreserved(t *testing.T) {
	svc := newTestService(t)

	got := svc.MatchProcedures(context.Background(), []DetectedProcedure{
		{Name: "Hemograma", Quantity: 3},
	})
	if len(got) != 1 || got[0].Quantity != 3 {
		t.Fatalf("got %+v, want quantity 3", got)
	}
}

func TestMatchProcedures_SkipsBlankNames(t *testing.T) {
	svc := newTestService(t)

	got := svc.MatchProcedures(context.Background(), []DetectedProcedure{
		{Name: "   "},
		{Name: ""},
		{Name: "Hemograma"},
	})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

// Every emitted entry must either carry a confident code or be an
// explicit empty-code placeholder; a coded entry at or below the
// threshold never survives.
func TestMatchProcedures_ThresholdInvariant(t *testing.T) {
	svc := NewService(newTestStore(t), 0.3)

	detected := []DetectedProcedure{
		{Name: "Hemograma completo"},
		{Name: "Consulta em consultório"},
		{Name: "procedimento totalmente desconhecido"},
		{Name: "Exame XYZ-Inexistente"},
	}
	got := svc.MatchProcedures(context.Background(), detected)

	for _, p := range got {
		if p.Code != "" && p.MatchConfidence <= 0.3 {
			t.Errorf("coded entry with confidence %.2f <= 0.3: %+v", p.MatchConfidence, p)
		}
		if p.Code == "" && p.MatchConfidence != 0 {
			t.Errorf("placeholder with non-zero confidence: %+v", p)
		}
		if p.Quantity < 1 {
			t.Errorf("quantity below 1: %+v", p)
		}
	}
}

func TestNewService_DefaultsThreshold(t *testing.T) {
	svc := NewService(newTestStore(t), -1)
	if svc.tussMinConfidence != DefaultTUSSMinConfidence {
		t.Errorf("threshold = %.2f, want default %.2f", svc.tussMinConfidence, DefaultTUSSMinConfidence)
	}
}
