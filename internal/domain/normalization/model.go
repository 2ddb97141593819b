package normalization

// SuggestionKind identifies the catalog a mention was normalized
// against, in the persisted wire form.
type SuggestionKind string

const (
	// KindDiagnosis marks a suggestion resolved against CID-10.
	KindDiagnosis SuggestionKind = "CID"
	// KindDrug marks a suggestion resolved against the DCB list.
	KindDrug SuggestionKind = "DCB"
)

// NormalizationSuggestion is the unit returned to callers and
// persisted by the consuming application. NormalizedCode,
// NormalizedLabel and Confidence are present together or absent
// together: absence is the "no correspondence found" outcome, which is
// still surfaced so the clinician can dismiss it.
type NormalizationSuggestion struct {
	Kind            SuggestionKind `json:"kind"`
	RawText         string         `json:"raw_text"`
	NormalizedCode  *string        `json:"normalized_code,omitempty"`
	NormalizedLabel *string        `json:"normalized_label,omitempty"`
	Confidence      *float64       `json:"confidence,omitempty"`
}

// Matched reports whether the suggestion carries a resolved code.
func (s NormalizationSuggestion) Matched() bool {
	return s.NormalizedCode != nil
}

// MentionBatch is the input contract with the LLM-response parser:
// raw mention strings extracted from a transcript or SOAP note.
type MentionBatch struct {
	Diagnoses   []string `json:"diagnoses"`
	Medications []string `json:"medications"`
}

// DetectedProcedure is one procedure detected by the upstream
// actionable-item step, with its claim metadata.
type DetectedProcedure struct {
	Name       string `json:"name"`
	Urgency    string `json:"urgency,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	SourceText string `json:"source_text,omitempty"`
}

// TussProcedureMatch is an insurance-claim line item produced from a
// detected procedure. Entries either carry a confidently matched code
// or an empty code with the original text, never a weak coded guess:
// a wrong procedure code on a claim form is worse than a blank one.
type TussProcedureMatch struct {
	Code            string  `json:"code"`
	Description     string  `json:"description"`
	Table           string  `json:"table"`
	Quantity        int     `json:"quantity"`
	MatchConfidence float64 `json:"match_confidence"`
}
