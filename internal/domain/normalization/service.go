package normalization

import (
	"context"
	"math"
	"strings"

	"github.com/clindoc/clindoc/internal/domain/terminology"
)

// DefaultTUSSMinConfidence is the acceptance threshold for putting a
// matched procedure code on a claim line. An empirical tuning constant,
// overridable through configuration.
const DefaultTUSSMinConfidence = 0.3

// Service turns raw clinical mentions into normalization suggestions
// and detected procedures into TISS claim line items. All operations
// read only the immutable catalog store; they are pure and safe for
// concurrent use.
type Service struct {
	store             *terminology.Store
	tussMinConfidence float64
}

// NewService creates a normalization service. A non-positive threshold
// falls back to the default.
func NewService(store *terminology.Store, tussMinConfidence float64) *Service {
	if tussMinConfidence <= 0 {
		tussMinConfidence = DefaultTUSSMinConfidence
	}
	return &Service{store: store, tussMinConfidence: tussMinConfidence}
}

// NormalizeDiagnosis resolves one diagnosis mention against CID-10.
// The single best candidate is always surfaced, however weak: for
// diagnoses the cost of silently dropping a real finding outweighs a
// low-confidence guess the clinician dismisses in one click.
func (s *Service) NormalizeDiagnosis(_ context.Context, rawText string) NormalizationSuggestion {
	suggestion := NormalizationSuggestion{Kind: KindDiagnosis, RawText: rawText}
	matches := s.store.SearchCID10(rawText, 1)
	if len(matches) == 0 {
		return suggestion
	}
	code := matches[0].Entry.Code
	label := matches[0].Entry.Display
	confidence := roundConfidence(matches[0].Score)
	suggestion.NormalizedCode = &code
	suggestion.NormalizedLabel = &label
	suggestion.Confidence = &confidence
	return suggestion
}

// NormalizeDrug resolves one medication mention against the DCB list,
// with the same always-surface policy as diagnoses.
func (s *Service) NormalizeDrug(_ context.Context, rawText string) NormalizationSuggestion {
	suggestion := NormalizationSuggestion{Kind: KindDrug, RawText: rawText}
	matches := s.store.SearchDCB(rawText, 1)
	if len(matches) == 0 {
		return suggestion
	}
	code := matches[0].Entry.Name
	label := matches[0].Entry.DCB
	confidence := roundConfidence(matches[0].Score)
	suggestion.NormalizedCode = &code
	suggestion.NormalizedLabel = &label
	suggestion.Confidence = &confidence
	return suggestion
}

// NormalizeAll batch-normalizes freshly extracted mentions. Blank
// mention strings produce no suggestion; output follows input order
// with diagnoses preceding medications. No deduplication happens here,
// the persistence layer owns that policy.
func (s *Service) NormalizeAll(ctx context.Context, batch MentionBatch) []NormalizationSuggestion {
	suggestions := make([]NormalizationSuggestion, 0, len(batch.Diagnoses)+len(batch.Medications))
	for _, mention := range batch.Diagnoses {
		if strings.TrimSpace(mention) == "" {
			continue
		}
		suggestions = append(suggestions, s.NormalizeDiagnosis(ctx, mention))
	}
	for _, mention := range batch.Medications {
		if strings.TrimSpace(mention) == "" {
			continue
		}
		suggestions = append(suggestions, s.NormalizeDrug(ctx, mention))
	}
	return suggestions
}

// MatchProcedures resolves detected procedures into TISS claim line
// items. Unlike diagnoses and drugs, a weak coded match is suppressed
// entirely; only confident codes or explicit needs-manual-entry
// placeholders survive.
func (s *Service) MatchProcedures(_ context.Context, detected []DetectedProcedure) []TussProcedureMatch {
	results := make([]TussProcedureMatch, 0, len(detected))
	for _, d := range detected {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}

		quantity := d.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		matches := s.store.SearchTUSS(d.Name, 1)
		if len(matches) == 0 || roundConfidence(matches[0].Score) < s.tussMinConfidence {
			// Retained with an empty code so a human can fill it in.
			results = append(results, TussProcedureMatch{
				Code:            "",
				Description:     d.Name,
				Table:           terminology.DefaultTUSSTable,
				Quantity:        quantity,
				MatchConfidence: 0,
			})
			continue
		}

		entry := matches[0].Entry
		confidence := roundConfidence(matches[0].Score)
		if confidence <= s.tussMinConfidence {
			// Coded but not confident enough for a claim form: dropped.
			continue
		}

		table := entry.Table
		if table == "" {
			table = terminology.DefaultTUSSTable
		}
		results = append(results, TussProcedureMatch{
			Code:            entry.Code,
			Description:     entry.Description,
			Table:           table,
			Quantity:        quantity,
			MatchConfidence: confidence,
		})
	}
	return results
}

// roundConfidence rounds a raw match score to the two decimals carried
// in the persisted form.
func roundConfidence(score float64) float64 {
	return math.Round(score*100) / 100
}
